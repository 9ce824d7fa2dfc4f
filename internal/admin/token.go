package admin

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "sulfurwatch/pkg/domain-errors"
)

const tokenIssuer = "sulfurwatch"

// TokenValidator issues and validates HS256 bearer tokens whose subject is
// the caller identity.
type TokenValidator struct {
	signingKey []byte
}

func NewTokenValidator(signingKey string) *TokenValidator {
	return &TokenValidator{signingKey: []byte(signingKey)}
}

// Issue signs a token for subject valid for ttl.
func (v *TokenValidator) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "subject is required")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	})
	return token.SignedString(v.signingKey)
}

// Validate returns the subject of a valid token.
func (v *TokenValidator) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return claims.Subject, nil
}
