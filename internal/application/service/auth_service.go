package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/sangkips/stockroom-api/pkg/logger"
	"github.com/sangkips/stockroom-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	revoked    repository.TokenRevocationStore
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	revoked repository.TokenRevocationStore,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		revoked:    revoked,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input. Role must match the account's role.
type LoginInput struct {
	Username string
	Password string
	Role     enum.Role
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	Redirect    string
}

// Login authenticates a user and issues an access token. Unknown users,
// wrong passwords and role mismatches share one error.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	var c fieldCheck
	c.check(strings.TrimSpace(input.Username) != "", "username", "username is required")
	c.check(input.Password != "", "password", "password is required")
	c.check(input.Role.IsValid(), "role", "role must be one of admin, manager, cashier")
	if err := c.err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) || user.Role != input.Role {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn(ctx, "failed to record last login", "user_id", user.ID, "error", err)
	}

	return &LoginOutput{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.AccessTokenExpiry().Seconds()),
		Redirect:    user.Role.HomePath(),
	}, nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	ttl := claims.ExpiresIn()
	if ttl <= 0 || claims.TokenID() == "" {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.TokenID(), ttl)
}

// GetCurrentUser retrieves the current authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes a user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	var c fieldCheck
	c.check(input.CurrentPassword != "", "current_password", "current_password is required")
	c.check(len(input.NewPassword) >= 8, "new_password", "new_password must be at least 8 characters")
	if err := c.err(); err != nil {
		return err
	}

	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewFieldError("current_password", "current_password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, fullName string) error {
	if username == "" || password == "" {
		return nil
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	logger.Info(ctx, "creating bootstrap admin", "username", username)
	return s.userRepo.Create(ctx, &entity.User{
		Username: username,
		FullName: fullName,
		Password: hashedPassword,
		Role:     enum.RoleAdmin,
		IsActive: true,
	})
}
