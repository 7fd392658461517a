package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenAuth signs and verifies bearer tokens. The token's only custom claim
// is the user identifier; the token itself is the sole proof of identity and
// no state is kept server-side beyond the signing key.
type TokenAuth struct {
	auth   *jwtauth.JWTAuth
	expiry time.Duration
}

func NewTokenAuth(key []byte, expiry time.Duration) *TokenAuth {
	return &TokenAuth{
		auth:   jwtauth.New("HS256", key, nil),
		expiry: expiry,
	}
}

// JWTAuth exposes the underlying verifier for the router middleware.
func (t *TokenAuth) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

func (t *TokenAuth) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(t.expiry).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// GetUserIDFromClaims extracts the authenticated subject from decoded claims.
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
