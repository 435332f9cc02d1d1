package http

import (
	"net/http"
	"time"

	"github.com/tealsec/authd/pkg/authsdk"
	"github.com/tealsec/authd/pkg/httpx"
)

// ProtectedHandler serves GET /protected, the reference endpoint behind the
// bearer-token gate. The authn middleware has already verified the token and
// stashed its claims in the request context.
type ProtectedHandler struct{}

func (h *ProtectedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		// Unreachable behind AuthnMiddleware; guards against a
		// misregistered route.
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid access token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ProtectedResponse{
		Message: "Protected resource access granted",
		User: authsdk.UserInfo{
			ID:       claims.Subject,
			Username: claims.Username,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
