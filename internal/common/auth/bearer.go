// internal/common/auth/bearer.go
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"vibe-planner/internal/common/errors"
)

// BearerVerifier validates the static bearer token presented on inbound
// tool-invocation requests. The token is configured once at startup.
type BearerVerifier struct {
	token string
}

// NewBearerVerifier creates a verifier for the configured service token.
func NewBearerVerifier(token string) *BearerVerifier {
	return &BearerVerifier{token: token}
}

// ExtractToken pulls the bearer token out of the Authorization header.
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.NewAuthenticationError("missing Authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.NewAuthenticationError("Authorization header must use the Bearer scheme")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", errors.NewAuthenticationError("empty bearer token")
	}

	return token, nil
}

// Verify compares a presented token against the configured one.
// Comparison is constant time to avoid leaking the token through timing.
func (v *BearerVerifier) Verify(token string) error {
	if subtle.ConstantTimeCompare([]byte(v.token), []byte(token)) != 1 {
		return errors.NewAuthenticationError("invalid bearer token")
	}
	return nil
}

// VerifyRequest extracts and verifies the token on an inbound request.
func (v *BearerVerifier) VerifyRequest(r *http.Request) error {
	token, err := ExtractToken(r)
	if err != nil {
		return err
	}
	return v.Verify(token)
}
