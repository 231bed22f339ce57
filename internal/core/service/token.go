package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// tokenClaims is the signed claim set: subject (username), role, and the
// token kind. Tokens are stateless and carry no unique id, so they cannot
// be revoked before expiry.
type tokenClaims struct {
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed access and refresh tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess returns a short-lived token authorizing API calls.
func (s *TokenService) IssueAccess(subject, role string) (string, error) {
	return s.sign(subject, role, tokenTypeAccess, s.accessTTL)
}

// IssueRefresh returns a longer-lived token of kind refresh. Validation of
// access-gated operations rejects it; it exists for a future exchange flow.
func (s *TokenService) IssueRefresh(subject, role string) (string, error) {
	return s.sign(subject, role, tokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) sign(subject, role, kind string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Role:      role,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ValidateAccess verifies signature and expiry and returns the subject and
// role claims. Every failure mode — bad signature, wrong algorithm, expiry,
// missing subject, refresh-type token — collapses to domain.ErrInvalidToken.
func (s *TokenService) ValidateAccess(raw string) (subject, role string, err error) {
	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.TokenType != tokenTypeAccess {
		return "", "", domain.ErrInvalidToken
	}
	return claims.Subject, claims.Role, nil
}
