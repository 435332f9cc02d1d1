package jwtx

import "errors"

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
)

// NewVerifierHS256 creates a verifier for tokens signed with the same
// shared secret. Only HS256 is accepted; "none" and any other algorithm
// fail with ErrInvalidSig.
func NewVerifierHS256(secret []byte) (Verifier, error) {
	return newHS256Verifier(secret)
}
