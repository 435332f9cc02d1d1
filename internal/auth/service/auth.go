// Package service holds the token lifecycle engine: credential check and
// token-pair issuance on login, access-token re-issuance on refresh, and
// access-token verification for request gating.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tealsec/authd/internal/auth/domain"
	"github.com/tealsec/authd/internal/auth/store"
	"github.com/tealsec/authd/pkg/jwtx"
	"github.com/tealsec/authd/pkg/slogx"
)

// The closed error set callers branch on. ErrTokenExpired is deliberately
// distinct from ErrInvalidToken: an expired access token is worth a refresh
// attempt, an invalid one is not.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// AuthService orchestrates the token lifecycle. It owns the TTL policy and
// the signing secret (through its signer/verifier); it carries no other
// state, so every method is safe for concurrent use.
type AuthService struct {
	Issuer   *TokenIssuer
	Verifier jwtx.Verifier
	Store    store.CredentialStore
}

// NewAuthService wires the engine from a shared secret and a credential
// store. It fails fast with jwtx.ErrSecretTooShort when the secret is
// missing or under 32 bytes; that is a fatal startup condition, not a
// per-request error.
func NewAuthService(
	secret []byte,
	st store.CredentialStore,
	accessTTL, refreshTTL time.Duration,
) (*AuthService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	verifier, err := jwtx.NewVerifierHS256(secret)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	return &AuthService{
		Issuer: &TokenIssuer{
			Signer:     signer,
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
		Verifier: verifier,
		Store:    st,
	}, nil
}

// Login validates credentials and mints the token pair.
//
// The failure message is uniform for unknown usernames and wrong passwords
// so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Both fields are required before we touch the store.
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	// 2. Single synchronous lookup-and-compare.
	user, err := s.Store.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, store.ErrNoMatch) {
			l.Info("login rejected", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Mint both tokens for the matched identity. No partial success:
	// either the caller gets the complete pair or an error.
	accessToken, err := s.Issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.Issuer.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh verifies a refresh token and re-issues a fresh access token
// carrying the same subject and username. The identity comes from the
// token's own claims, not a store lookup.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrInvalidToken
	}

	claims, err := s.verify(refreshToken, jwtx.TokenKindRefresh)
	if err != nil {
		return "", err
	}

	return s.Issuer.IssueAccessToken(domain.User{
		ID:       claims.Subject,
		Username: claims.Username,
	})
}

// VerifyAccessToken validates a bearer token for request gating and returns
// its claims.
func (s *AuthService) VerifyAccessToken(token string) (jwtx.Claims, error) {
	if token == "" {
		return jwtx.Claims{}, ErrInvalidToken
	}

	return s.verify(token, jwtx.TokenKindAccess)
}

// verify runs signature/expiry verification, enforces the token kind, and
// collapses failures into the service error set while keeping the jwtx
// cause in the chain for adapters that match on it.
func (s *AuthService) verify(token string, kind jwtx.TokenKind) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	// A well-signed token presented to the wrong endpoint is still
	// unusable there.
	if err := claims.ValidateKind(kind); err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}
