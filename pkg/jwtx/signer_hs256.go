package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the minimum HMAC secret length. Anything shorter than
// the HS256 output size weakens the MAC, so construction refuses it.
const MinSecretBytes = 32

// ErrSecretTooShort reports a missing or undersized signing secret.
var ErrSecretTooShort = errors.New("jwtx: secret must be at least 32 bytes")

// HS256Signer signs claims with HMAC-SHA256 over a shared secret.
type HS256Signer struct {
	secret []byte
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}

	// Copy so later mutation of the caller's slice can't change the key.
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Signer{secret: key}, nil
}

// Alg returns the JWA name of the signing algorithm.
func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign produces a compact serialized token for the given claims. Signing is
// deterministic for fixed claims and secret, pure, and safe for concurrent use.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
