package identity

import (
	"context"
	"strings"

	"github.com/mystore/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// User is an account whose id doubles as the owner id for every entity
// the account creates. There are no roles; ownership is the entire
// authorization model.
type User struct {
	shared.BaseEntity
	Email        string `gorm:"not null;uniqueIndex"`
	Company      string
	PasswordHash string `gorm:"not null"`
}

// TableName overrides the GORM table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(email, company, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Company:      company,
		PasswordHash: string(hash),
	}, nil
}

// VerifyPassword checks a candidate password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}
