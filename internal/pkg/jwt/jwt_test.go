package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-secret", "1h", 30*time.Second)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "soon", 0)
	assert.Error(t, err)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newService(t)

	tokenString, expiresAt, err := svc.GenerateAccessToken(user.User{
		ID:    "USR-001",
		Name:  "John Doe",
		Email: "john@company.com",
		Role:  user.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	m, err := token.AsMap(context.Background())
	require.NoError(t, err)

	claims, err := ParseClaims(m, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "USR-001", Name: "John Doe", Email: "john@company.com", Role: user.RoleAdmin}, claims)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := newService(t)

	tokenString, expiresIn, err := svc.GenerateSSEToken("USR-002")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "USR-002", userID)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := newService(t)

	access, _, err := svc.GenerateAccessToken(user.User{ID: "USR-001", Role: user.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateSSEToken_Garbage(t *testing.T) {
	svc := newService(t)

	_, err := svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}
