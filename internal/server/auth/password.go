package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the largest accepted password, in bytes. bcrypt
// only hashes the first 72 bytes of input; longer passwords are rejected
// outright rather than silently truncated.
const MaxPasswordLength = 72

// ErrPasswordTooLong is returned by HashPassword when the plaintext
// exceeds MaxPasswordLength bytes.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword derives a salted, one-way credential from a plaintext
// password. Two calls on the same plaintext produce different encoded
// values; use VerifyPassword to compare.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored
// credential. Malformed credentials verify as false, never panic.
func VerifyPassword(plaintext, credential string) bool {
	if len(plaintext) > MaxPasswordLength {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
