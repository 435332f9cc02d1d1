package auth_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tealsec/authd/pkg/authsdk"
)

// TestLoginRefreshProtected exercises the complete happy path:
// 1. Login with the seeded demo account
// 2. Fetch the protected resource with the access token
// 3. Refresh and verify a new access token is minted
// 4. Fetch the protected resource again with the refreshed token
func TestLoginRefreshProtected(t *testing.T) {
	client := setupAuthServer(t, 0, 0)

	user, err := client.Login(t.Context(), demoUsername, demoPassword)
	require.NoError(t, err)
	require.Equal(t, demoUserID, user.ID)
	require.Equal(t, demoUsername, user.Username)

	oldAccessToken := client.AccessToken()
	require.NotEmpty(t, oldAccessToken)

	result, err := client.GetProtected(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Protected resource access granted", result.Message)
	require.Equal(t, demoUserID, result.User.ID)

	// Claim timestamps have second resolution; step past the mint second
	// so the refreshed token cannot collide with the original.
	time.Sleep(1100 * time.Millisecond)

	require.NoError(t, client.Refresh(t.Context()))
	require.NotEqual(t, oldAccessToken, client.AccessToken(), "access token should be re-minted")

	result, err = client.GetProtected(t.Context())
	require.NoError(t, err)
	require.Equal(t, demoUsername, result.User.Username)
}

// TestExpiredTokenRecovery verifies the client survives access token expiry
// without caller intervention: the 401 from the gate triggers one refresh
// and one retry.
func TestExpiredTokenRecovery(t *testing.T) {
	client := setupAuthServer(t, 1*time.Second, 0)

	_, err := client.Login(t.Context(), demoUsername, demoPassword)
	require.NoError(t, err)

	// Outlive the access token but not the refresh token.
	time.Sleep(1500 * time.Millisecond)

	result, err := client.GetProtected(t.Context())
	require.NoError(t, err)
	require.Equal(t, demoUserID, result.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client := setupAuthServer(t, 0, 0)

	_, err := client.Login(t.Context(), demoUsername, "wrong")
	var statusErr *authsdk.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Code)
	require.Equal(t, "Invalid username or password", statusErr.Message)
}

// TestProtectedWithoutSession verifies an anonymous client cannot reach the
// protected resource: the gate rejects it, the recovery refresh has no
// cookie to spend, and the failure surfaces as a StatusError.
func TestProtectedWithoutSession(t *testing.T) {
	client := setupAuthServer(t, 0, 0)

	_, err := client.GetProtected(t.Context())
	var statusErr *authsdk.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
	client := setupAuthServer(t, 0, 0)

	err := client.Refresh(t.Context())
	var statusErr *authsdk.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Code)
	require.Equal(t, "Refresh token is required", statusErr.Message)
}

// TestExpiredRefreshTokenEndsSession verifies that once the refresh token
// itself has expired, recovery stops and the client's session state is
// cleared.
func TestExpiredRefreshTokenEndsSession(t *testing.T) {
	client := setupAuthServer(t, 1*time.Second, 2*time.Second)

	_, err := client.Login(t.Context(), demoUsername, demoPassword)
	require.NoError(t, err)

	// Outlive both tokens.
	time.Sleep(2500 * time.Millisecond)

	_, err = client.GetProtected(t.Context())
	var statusErr *authsdk.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Code)

	require.Empty(t, client.AccessToken())
	require.Nil(t, client.User())
}

// TestLoginRateLimit verifies credential endpoints push back under brute
// force pressure.
func TestLoginRateLimit(t *testing.T) {
	client := setupAuthServer(t, 0, 0)

	var statusErr *authsdk.StatusError
	for range 6 {
		_, err := client.Login(t.Context(), demoUsername, "wrong")
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusTooManyRequests {
			break
		}
	}

	require.NotNil(t, statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code, "expected a 429 within six failed logins")
	require.Equal(t, "Too many requests", statusErr.Message)
}

func TestHealthProbes(t *testing.T) {
	client := setupAuthServer(t, 0, 0)

	var live authsdk.HealthResponse
	require.NoError(t, client.Get(t.Context(), "/livez", &live))
	require.Equal(t, "ok", live.Status)

	var ready authsdk.HealthResponse
	require.NoError(t, client.Get(t.Context(), "/readyz", &ready))
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Signer)
}
