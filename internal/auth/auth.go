package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Credential failure kinds. Any of these rejects the connection
// attempt before it touches the registry.
var (
	ErrMissingCredential = errors.New("auth: credential missing")
	ErrInvalidCredential = errors.New("auth: credential invalid")
	ErrExpiredCredential = errors.New("auth: credential expired")
)

// Authenticator verifies connection credentials. It is stateless: the
// only input besides the token itself is the shared signing secret.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Verify checks the token's signature and expiry and returns the user
// identity it carries. The identity is read from the "id" claim, the
// same claim the token service writes at login.
func (a *Authenticator) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingCredential
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredCredential
		}
		return "", ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidCredential
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidCredential
	}
	return userID, nil
}

// Sign issues a token for the given user identity. The gateway never
// issues tokens in production (the login service does); this exists
// for local runs and tests.
func (a *Authenticator) Sign(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
		"iss": "chatwave-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}
