package handler

import "time"

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Company  string `json:"company"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}

// AuthUserResponse describes the authenticated account
type AuthUserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// LogoutResponse confirms a logout
type LogoutResponse struct {
	Message string `json:"message"`
}
