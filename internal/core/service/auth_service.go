package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nabin-web/startrace/internal/core/domain"
	"github.com/Nabin-web/startrace/internal/core/ports"
)

// AuthService implements signup, login, and token-based authentication.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Signup creates a new account with the user role. Duplicate usernames
// surface as domain.ErrUserExists.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
// An unknown username and a wrong password are indistinguishable to the
// caller: both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user.Username, user.Role)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.Username, user.Role)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, user, nil
}

// Authenticate resolves an access token into a live user. Tokens for
// deleted accounts stay verifiable until expiry, so the storage lookup is
// what finally decides whether the subject is still real.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	subject, _, err := s.tokens.ValidateAccess(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByUsername(ctx, subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}
