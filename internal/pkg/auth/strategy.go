package auth

import "time"

// Strategy issues and verifies session tokens for authenticated users.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options carries tunables shared by token strategies.
type Options struct {
	TTL time.Duration
}
