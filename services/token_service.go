package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	apperrors "github.com/shoppyglobe/shoppyglobe-api/errors"
)

// TokenService creates and validates the signed identity tokens used by the
// auth guard. Tokens are stateless: verification consults nothing beyond the
// token itself, the shared secret and the clock.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secret),
		ttl:       ttl,
	}
}

// Issue creates a signed token embedding the user id and an expiry ttl after
// issuance.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify parses and validates a token string and returns the embedded user id.
// It fails on a bad signature, a malformed token, or an expired one.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", apperrors.New(http.StatusForbidden, "invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.New(http.StatusForbidden, "invalid token claims", nil)
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", apperrors.New(http.StatusForbidden, "invalid token claims", nil)
	}
	return sub, nil
}
