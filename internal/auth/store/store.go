// Package store abstracts credential lookup behind a single capability so
// the auth service never learns how identities are kept. The bundled memory
// driver holds a fixed set of users; a database-backed driver can be
// substituted without touching the service.
package store

import (
	"context"
	"errors"

	"github.com/tealsec/authd/internal/auth/domain"
)

// ErrNoMatch reports that the username/password pair did not resolve to an
// identity. Unknown username and wrong password are deliberately
// indistinguishable.
var ErrNoMatch = errors.New("store: no matching credentials")

// CredentialStore resolves a credential pair to an identity in a single
// synchronous lookup-and-compare.
type CredentialStore interface {
	Authenticate(ctx context.Context, username, password string) (domain.User, error)
}
