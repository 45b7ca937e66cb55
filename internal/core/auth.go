// Package core - Core Business Logic
// Protocol-agnostic services behind the HTTP layer.
//
// Authentication: tokens are issued externally; this service only validates
// them (signature, issuer, audience) and resolves the subject to a user,
// provisioning the user row lazily on first sight.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"vidhub/internal/repository"
	"vidhub/pkg/models"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongIssuer    = errors.New("token issuer mismatch")
	ErrWrongAudience  = errors.New("token audience mismatch")
	ErrMissingSubject = errors.New("token has no subject")
)

// AuthService validates bearer tokens and resolves the authenticated user
type AuthService interface {
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	issuer   string
	audience string
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo repository.UserRepository, secret, issuer, audience string) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// Authenticate verifies a bearer token and returns its user, creating the
// user record on the subject's first authenticated request. Every request
// is authenticated independently; there is no session state.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, models.NewUnauthorized("invalid token", err)
	}
	if !token.Valid {
		return nil, models.NewUnauthorized("invalid token", ErrInvalidToken)
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, models.NewUnauthorized("invalid token", ErrWrongIssuer)
	}
	if !claims.VerifyAudience(s.audience, true) {
		return nil, models.NewUnauthorized("invalid token", ErrWrongAudience)
	}
	if claims.Subject == "" {
		return nil, models.NewUnauthorized("invalid token", ErrMissingSubject)
	}

	user, err := s.userRepo.FindOrCreateBySub(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
