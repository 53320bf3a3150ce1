package session

import (
	"errors"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("session token is missing")
	ErrMalformed    = errors.New("session token cannot be decoded")
	ErrExpired      = errors.New("session token has expired")
	ErrNoUser       = errors.New("session token carries no user id")
)

// WellFormed reports whether token has the three dot-separated segments of a JWT.
func WellFormed(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	for _, p := range parts {
		if p == "" {
			return false
		}
	}

	return true
}

// Decode reads the claims without checking the signature. Only the
// backend holds the signing key.
func Decode(token string) (*models.Claims, error) {

	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &models.Claims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrMalformed
	}

	return claims, nil
}

// Expired compares the exp claim against now at second precision. A token
// without exp never expires.
func Expired(claims *models.Claims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Unix() < now.Unix()
}

// Validate decodes token and returns the user id it was issued for.
func Validate(token string, now time.Time) (string, error) {

	claims, err := Decode(token)
	if err != nil {
		return "", err
	}

	if Expired(claims, now) {
		return "", ErrExpired
	}

	if claims.UserID == "" {
		return "", ErrNoUser
	}

	return claims.UserID, nil
}
