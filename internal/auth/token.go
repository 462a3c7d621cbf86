package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long issued access tokens stay valid.
const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer mints and verifies HS256 access tokens carrying the user ID.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue signs a token for the given user.
func (t *TokenIssuer) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses a token and returns the user ID it carries.
func (t *TokenIssuer) Verify(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// JSON numbers decode as float64.
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}

	return int64(id), nil
}
