package ports

import (
	"context"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

// TokenPair carries both credentials issued at login. The refresh token is
// part of the wire contract even though no exchange endpoint exists yet.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	// Authenticate resolves an access token into a live user. Any decode,
	// expiry, type, or lookup failure yields domain.ErrInvalidToken.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}
