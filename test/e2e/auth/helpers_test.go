package auth_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tealsec/authd/internal/auth/domain"
	authhttp "github.com/tealsec/authd/internal/auth/http"
	"github.com/tealsec/authd/internal/auth/service"
	"github.com/tealsec/authd/internal/auth/store/drivers/memory"
	"github.com/tealsec/authd/pkg/authsdk"
)

/*
 * Common constants and helpers for auth service end-to-end tests. Each test
 * boots the real router in-process behind a TLS test server and drives it
 * with the real SDK client, so the whole stack is exercised: handlers,
 * middleware, cookie transport, and the client's refresh cycle.
 */

const (
	demoUserID   = "user-demo-001"
	demoUsername = "demo"
	demoPassword = "password"
)

var testSecret = []byte("e2e-test-secret-that-is-32-bytes")

// setupAuthServer boots the service in-process and returns a client wired
// to it. TLS matters here: the refresh cookie is marked Secure, and the
// client's jar only returns Secure cookies over https.
func setupAuthServer(t *testing.T, accessTTL, refreshTTL time.Duration) *authsdk.Client {
	t.Helper()

	st := memory.NewStore()
	require.NoError(t, st.AddUser(domain.User{ID: demoUserID, Username: demoUsername}, demoPassword))

	svc, err := service.NewAuthService(testSecret, st, accessTTL, refreshTTL)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := authhttp.NewRouter(svc, "http://localhost:3000", "e2e", logger)
	router.ApplyRoutes()

	srv := httptest.NewTLSServer(router)
	t.Cleanup(srv.Close)

	client, err := authsdk.NewClient(srv.URL)
	require.NoError(t, err)
	client.HTTPClient.Transport = srv.Client().Transport

	return client
}
