package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealsec/authd/internal/auth/domain"
	"github.com/tealsec/authd/internal/auth/store"
	"github.com/tealsec/authd/internal/auth/store/drivers/memory"
)

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	st := memory.NewStore()
	demo := domain.User{ID: "user-demo-001", Username: "demo"}
	require.NoError(t, st.AddUser(demo, "password"))

	t.Run("valid credentials", func(t *testing.T) {
		user, err := st.Authenticate(ctx, "demo", "password")
		require.NoError(t, err)
		require.Equal(t, demo, user)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := st.Authenticate(ctx, "demo", "hunter2")
		require.ErrorIs(t, err, store.ErrNoMatch)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := st.Authenticate(ctx, "nobody", "password")
		require.ErrorIs(t, err, store.ErrNoMatch)
	})

	t.Run("case-sensitive username", func(t *testing.T) {
		_, err := st.Authenticate(ctx, "Demo", "password")
		require.ErrorIs(t, err, store.ErrNoMatch)
	})
}

func TestAddUser(t *testing.T) {
	st := memory.NewStore()

	t.Run("rejects empty identity", func(t *testing.T) {
		require.Error(t, st.AddUser(domain.User{}, "password"))
		require.Error(t, st.AddUser(domain.User{ID: "u1"}, "password"))
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		require.NoError(t, st.AddUser(domain.User{ID: "u1", Username: "alice"}, "pw"))
		require.Error(t, st.AddUser(domain.User{ID: "u2", Username: "alice"}, "pw"))
	})
}
