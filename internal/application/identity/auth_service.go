package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mystore/backend/internal/domain/identity"
	"github.com/mystore/backend/internal/domain/shared"
	"github.com/mystore/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login and logout. A registered user's
// id becomes the owner id every other service scopes its data by.
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new account and logs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	user, err := identity.NewUser(input.Email, input.Company, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Warn("Registration with taken email", zap.String("email", user.Email))
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueToken(user)
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueToken(user)
}

// Logout revokes the presented token by blacklisting its JTI for the
// remainder of its validity
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" || input.TokenTTL <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to blacklist token",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResult, error) {
	issued, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:  user.ID,
		Email:   user.Email,
		Company: user.Company,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	return &AuthResult{
		AccessToken: issued.AccessToken,
		ExpiresAt:   issued.ExpiresAt,
		TokenType:   issued.TokenType,
		User: UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			Company:   user.Company,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
