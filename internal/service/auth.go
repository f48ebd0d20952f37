package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alexandra151/LibrarySystem/internal/auth"
	"github.com/Alexandra151/LibrarySystem/internal/domain"
	domainerrors "github.com/Alexandra151/LibrarySystem/internal/errors"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

// AuthService handles user authentication and token verification.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the access token and the authenticated user's
// public data.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Username    string    `json:"username"`
	Roles       []string  `json:"roles"`
}

// Login authenticates a user by username and password and issues an
// access token. Unknown usernames and wrong passwords produce the same
// error so the response does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Warn("failed login attempt", "username", user.Username)
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokenService.AccessTokenDuration()),
		Username:    user.Username,
		Roles:       user.RoleStrings(),
	}, nil
}

// VerifyAccessToken validates an access token and returns its claims.
func (s *AuthService) VerifyAccessToken(token string) (*auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}

// RegisterUser creates a user account with the given roles. Used by the
// seeding tool; there is no self-service registration endpoint.
func (s *AuthService) RegisterUser(ctx context.Context, username, password string, roles []domain.Role) (*domain.User, error) {
	for _, r := range roles {
		if !r.IsValid() {
			return nil, domainerrors.Validationf("unknown role %q", r)
		}
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, domainerrors.Validation("invalid password").WithCause(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		Roles:        roles,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("username %q is taken", username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username, "roles", user.RoleStrings())
	return user, nil
}
