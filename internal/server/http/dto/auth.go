package dto

// AuthRequest carries credentials for registration and login.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
