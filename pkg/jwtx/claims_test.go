package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/tealsec/authd/pkg/jwtx"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 26, 53, 589793238, time.UTC)
	c := jwtx.NewClaims("user-demo-001", "demo", jwtx.TokenKindAccess, 15*time.Minute, now)

	t.Run("subject and username carried", func(t *testing.T) {
		require.Equal(t, "user-demo-001", c.Subject)
		require.Equal(t, "demo", c.Username)
		require.Equal(t, jwtx.TokenKindAccess, c.Kind)
	})

	t.Run("exp equals iat plus ttl", func(t *testing.T) {
		require.Equal(t, int64(900), c.ExpiresAt.Unix()-c.IssuedAt.Unix())
	})

	t.Run("times truncated to whole seconds", func(t *testing.T) {
		require.Zero(t, c.IssuedAt.Nanosecond())
		require.Zero(t, c.ExpiresAt.Nanosecond())
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("boundary exp equal to now is expired", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Truncate(time.Second)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("no exp claim", func(t *testing.T) {
		claims := &jwtx.Claims{}
		require.NoError(t, claims.ValidateExpiry())
	})
}

func TestValidateKind(t *testing.T) {
	access := &jwtx.Claims{Kind: jwtx.TokenKindAccess}

	t.Run("matching kind", func(t *testing.T) {
		require.NoError(t, access.ValidateKind(jwtx.TokenKindAccess))
	})

	t.Run("wrong kind", func(t *testing.T) {
		require.ErrorIs(t, access.ValidateKind(jwtx.TokenKindRefresh), jwtx.ErrKindMismatch)
	})

	t.Run("missing kind", func(t *testing.T) {
		bare := &jwtx.Claims{}
		require.ErrorIs(t, bare.ValidateKind(jwtx.TokenKindAccess), jwtx.ErrKindMismatch)
	})
}
