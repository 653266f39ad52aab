// Package auth implements the credential and session primitives: bcrypt
// password hashing and HS256 session tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/heloise-dot/Kaziflow/internal/common"
	"github.com/heloise-dot/Kaziflow/internal/server/models"
)

// Claims carries the registered claims plus the account role. The
// subject is the account email.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateToken issues a signed session token for the given account
// identity, valid for validityDuration from now.
func GenerateToken(email string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Role: string(role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a session token and returns the subject email and
// role. Every failure mode (garbage input, bad signature, expiry,
// missing or unknown claims) collapses into common.ErrInvalidToken so
// callers cannot tell which check failed.
func ParseToken(tokenString string, secretKey []byte) (string, models.Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", "", common.ErrInvalidToken
	}

	role, ok := models.ParseRole(claims.Role)
	if !ok {
		return "", "", common.ErrInvalidToken
	}

	return claims.Subject, role, nil
}
