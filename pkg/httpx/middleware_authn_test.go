package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tealsec/authd/pkg/httpx"
	"github.com/tealsec/authd/pkg/jwtx"
)

// stubVerifier accepts a single known token and fails everything else with
// the configured error.
type stubVerifier struct {
	token  string
	claims jwtx.Claims
	err    error
}

func (s *stubVerifier) VerifyAccessToken(token string) (jwtx.Claims, error) {
	if token == s.token {
		return s.claims, nil
	}
	return jwtx.Claims{}, s.err
}

func gateResponse(t *testing.T, v httpx.AccessTokenVerifier, authz string) (*httptest.ResponseRecorder, jwtx.Claims, bool) {
	t.Helper()

	var gotClaims jwtx.Claims
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, reached = httpx.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()

	httpx.AuthnMiddleware(v)(next).ServeHTTP(rec, req)
	return rec, gotClaims, reached
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAuthnMiddleware(t *testing.T) {
	verifier := &stubVerifier{
		token:  "good-token",
		claims: jwtx.NewClaims("user-demo-001", "demo", jwtx.TokenKindAccess, 15*time.Minute, time.Now()),
		err:    jwtx.ErrInvalidSig,
	}

	t.Run("missing header", func(t *testing.T) {
		rec, _, reached := gateResponse(t, verifier, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Authorization header is required", errBody(t, rec))
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		require.False(t, reached)
	})

	t.Run("malformed header", func(t *testing.T) {
		for _, authz := range []string{
			"good-token",             // no scheme
			"bearer good-token",      // scheme is case-sensitive
			"Basic good-token",       // wrong scheme
			"Bearer",                 // no token
			"Bearer ",                // empty token
			"Bearer good token",      // extra space
			"Bearer  good-token",     // double space
			"Bearer good-token more", // trailing junk
		} {
			rec, _, reached := gateResponse(t, verifier, authz)
			require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", authz)
			require.Equal(t, "Invalid authorization header", errBody(t, rec), "header %q", authz)
			require.False(t, reached, "header %q", authz)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		rec, _, reached := gateResponse(t, verifier, "Bearer bad-token")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid access token", errBody(t, rec))
		require.False(t, reached)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &stubVerifier{err: jwtx.ErrExpired}
		rec, _, reached := gateResponse(t, expired, "Bearer stale-token")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Access token has expired", errBody(t, rec))
		require.False(t, reached)
	})

	t.Run("valid token reaches handler with claims", func(t *testing.T) {
		rec, claims, reached := gateResponse(t, verifier, "Bearer good-token")
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, reached)
		require.Equal(t, "user-demo-001", claims.Subject)
		require.Equal(t, "demo", claims.Username)
	})
}
