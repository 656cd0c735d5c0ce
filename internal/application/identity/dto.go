package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Email    string
	Company  string
	Password string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains the result of a successful registration or login
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo contains basic user information returned with a token
type UserInfo struct {
	ID        uuid.UUID
	Email     string
	Company   string
	CreatedAt time.Time
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration // remaining validity, bounds the blacklist entry
}
