package auth

import (
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/apperr"
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares password against a stored bcrypt hash. An
// empty hash (OAuth-only account) never matches.
func CheckPassword(password, hash string) error {
	if hash == "" {
		return apperr.InvalidCredentials("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return apperr.InvalidCredentials("invalid credentials").WithCause(err)
	}
	return nil
}
