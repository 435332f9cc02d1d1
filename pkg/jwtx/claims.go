package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the login/refresh flow.
// These provide sensible security defaults but can be overridden per-service.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenKind tags a token with the context it was minted for. Access and
// refresh tokens share one claim schema, so without the kind claim a token
// minted for one endpoint could be replayed against the other.
type TokenKind string

const (
	// TokenKindAccess marks tokens presented on protected requests.
	TokenKindAccess TokenKind = "access"

	// TokenKindRefresh marks tokens exchanged for a new access token.
	TokenKindRefresh TokenKind = "refresh"
)

var (
	ErrExpired      = errors.New("jwtx: token expired")
	ErrKindMismatch = errors.New("jwtx: token kind mismatch")
)

// Claims is the payload carried by every signed token. Keeping changes
// additive preserves compatibility with tokens already in the wild.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user.
	Username string `json:"username,omitempty"`

	// Kind is "access" or "refresh". Verification paths reject tokens of
	// the wrong kind.
	Kind TokenKind `json:"kind,omitempty"`
}

// NewClaims builds minimally-correct claims stamped at now. Times are
// truncated to whole seconds so iat/exp serialize as exact epoch seconds.
func NewClaims(
	subject, username string,
	kind TokenKind,
	ttl time.Duration,
	now time.Time,
) Claims {
	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
		Kind:     kind,
	}
}

// ValidateExpiry ensures the token hasn't expired. The boundary is strict:
// a token whose exp equals the current second is already expired. No leeway.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	return nil
}

// ValidateKind checks the kind claim against the expected value.
func (c *Claims) ValidateKind(expected TokenKind) error {
	if c.Kind != expected {
		return ErrKindMismatch
	}

	return nil
}
