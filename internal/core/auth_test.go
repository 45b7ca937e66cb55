package core

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidhub/pkg/models"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "https://issuer.test/"
	testAudience = "vidhub-api"
)

func signToken(t *testing.T, secret, issuer, audience, sub string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthFixture() (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	return NewAuthService(userRepo, testSecret, testIssuer, testAudience), userRepo
}

func TestAuthenticateCreatesUserLazily(t *testing.T) {
	svc, userRepo := newAuthFixture()
	token := signToken(t, testSecret, testIssuer, testAudience, "auth0|abc123", time.Hour)

	user, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc123", user.Sub)
	assert.Len(t, userRepo.users, 1)

	// same subject resolves to the same user
	again, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, userRepo.users, 1)
}

func TestAuthenticateRejectsBadSignature(t *testing.T) {
	svc, _ := newAuthFixture()
	token := signToken(t, "wrong-secret", testIssuer, testAudience, "sub", time.Hour)

	_, err := svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, 401, models.StatusOf(err))
}

func TestAuthenticateRejectsWrongIssuer(t *testing.T) {
	svc, _ := newAuthFixture()
	token := signToken(t, testSecret, "https://evil.test/", testAudience, "sub", time.Hour)

	_, err := svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, 401, models.StatusOf(err))
}

func TestAuthenticateRejectsWrongAudience(t *testing.T) {
	svc, _ := newAuthFixture()
	token := signToken(t, testSecret, testIssuer, "other-api", "sub", time.Hour)

	_, err := svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, 401, models.StatusOf(err))
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	svc, _ := newAuthFixture()
	token := signToken(t, testSecret, testIssuer, testAudience, "sub", -time.Minute)

	_, err := svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, 401, models.StatusOf(err))
}

func TestAuthenticateRejectsMissingSubject(t *testing.T) {
	svc, _ := newAuthFixture()
	token := signToken(t, testSecret, testIssuer, testAudience, "", time.Hour)

	_, err := svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, 401, models.StatusOf(err))
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, 401, models.StatusOf(err))
}
