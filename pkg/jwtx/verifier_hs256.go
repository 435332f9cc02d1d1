package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates tokens signed using HS256 with a shared secret.
type HS256Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func newHS256Verifier(secret []byte) (*HS256Verifier, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Verifier{
		secret: key,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Verify validates the token string and returns its parsed Claims.
//
// Failures collapse into the package sentinels so callers can branch on the
// distinction that matters: ErrExpired means a well-signed token past its
// exp, everything else means the token cannot be trusted at all.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	token, err := v.parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			// Includes algorithm confusion: any alg outside the allow
			// list (HS384, RS256, "none", ...) lands here.
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, ErrInvalidSig
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	// The parser already rejected exp strictly in the past; re-check with
	// our strict boundary so exp == now is expired too.
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
