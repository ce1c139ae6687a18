package dto

import "time"

type SignupRequest struct {
	Email                string `json:"email" form:"email"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" form:"password"`
}

// SessionFormResponse describes the login form for clients that render one.
type SessionFormResponse struct {
	Fields     []string `json:"fields"`
	LoginPath  string   `json:"login_path"`
	SignupPath string   `json:"signup_path"`
}
