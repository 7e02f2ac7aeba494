package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TypeAccess = "access"
	TypeSSE    = "sse"

	sseTTL = 5 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string
	Name   string
	Email  string
	Role   user.Role
}

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessExpiration time.Duration
	tokenAuth        *jwtauth.JWTAuth
	now              func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService builds an HS256 signer/verifier. skew relaxes exp and nbf
// checks for clients with drifting clocks.
func NewJWTService(secretKey string, accessExpiration string, skew time.Duration) (*JWTService, error) {
	exp, err := time.ParseDuration(accessExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessExpiration: exp,
		tokenAuth:        jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(skew)),
		now:              time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"role":    string(u.Role),
		"type":    TypeAccess,
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken issues a short-lived token for EventSource clients,
// which cannot send an Authorization header.
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TypeSSE,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(sseTTL.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	claims, err := ParseClaims(token.PrivateClaims(), TypeSSE)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// ParseClaims reads the identity out of a decoded claim map and checks the
// token type.
func ParseClaims(m map[string]interface{}, wantType string) (Claims, error) {
	tokenType, _ := m["type"].(string)
	if tokenType != wantType {
		return Claims{}, fmt.Errorf("%w: expected %s token", ErrInvalidToken, wantType)
	}

	userID, ok := m["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}

	c := Claims{UserID: userID}
	c.Name, _ = m["name"].(string)
	c.Email, _ = m["email"].(string)
	if role, ok := m["role"].(string); ok {
		c.Role = user.Role(role)
	}
	return c, nil
}

var _ Service = (*JWTService)(nil)
