package admin

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// HashToken creates a bcrypt hash of a static admin token for ADMIN_TOKEN_HASH.
func HashToken(token string) (string, error) {
	if token == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "token cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "token is too long")
		}
		return "", fmt.Errorf("could not hash token: %w", err)
	}
	return string(hashed), nil
}

// VerifyToken checks a plaintext static token against its bcrypt hash.
func VerifyToken(token, hash string) error {
	if hash == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "static admin token disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid admin token")
		}
		return fmt.Errorf("could not verify token: %w", err)
	}
	return nil
}
