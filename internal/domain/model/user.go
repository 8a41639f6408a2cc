package model

import "time"

// User represents a registered marketplace account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	TotalSpent   int64
	CreatedAt    time.Time
}
