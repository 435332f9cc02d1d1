// Package memory is the in-memory credential store driver. Users are
// registered at construction time and never change afterwards, which keeps
// reads lock-cheap and the driver safe for concurrent request handling.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/tealsec/authd/internal/auth/domain"
	"github.com/tealsec/authd/internal/auth/store"
	"github.com/tealsec/authd/pkg/cryptox"
)

type record struct {
	user         domain.User
	passwordHash string
}

// Store keeps credentials in memory, passwords as argon2id hashes.
type Store struct {
	mu    sync.RWMutex
	users map[string]record
}

// NewStore returns an empty credential store.
func NewStore() *Store {
	return &Store{users: make(map[string]record)}
}

// AddUser registers a user with the given plaintext password. The password
// is hashed before it is kept. Duplicate usernames are rejected.
func (s *Store) AddUser(user domain.User, password string) error {
	if user.ID == "" || user.Username == "" {
		return errors.New("memory: user id and username are required")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return errors.New("memory: username already registered")
	}

	s.users[user.Username] = record{user: user, passwordHash: hash}
	return nil
}

// Authenticate resolves a credential pair to an identity. Any miss, whether
// the username is unknown or the password wrong, reports store.ErrNoMatch.
func (s *Store) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	s.mu.RLock()
	rec, ok := s.users[username]
	s.mu.RUnlock()

	if !ok {
		// Burn a hash comparison anyway so unknown usernames take as
		// long as wrong passwords.
		_ = cryptox.VerifyPassword(password, unknownUserHash)
		return domain.User{}, store.ErrNoMatch
	}

	if err := cryptox.VerifyPassword(password, rec.passwordHash); err != nil {
		return domain.User{}, store.ErrNoMatch
	}

	return rec.user, nil
}

// unknownUserHash is a throwaway argon2id hash compared against when the
// username does not exist, to equalize timing.
var unknownUserHash = func() string {
	h, err := cryptox.HashPassword("decoy")
	if err != nil {
		panic(err)
	}
	return h
}()
