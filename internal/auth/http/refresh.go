package http

import (
	"errors"
	"net/http"

	"github.com/tealsec/authd/internal/auth/service"
	"github.com/tealsec/authd/pkg/authsdk"
	"github.com/tealsec/authd/pkg/httpx"
	"github.com/tealsec/authd/pkg/slogx"
)

// RefreshHandler serves POST /auth/refresh. The refresh token arrives in
// the HttpOnly cookie set at login, never in the request body.
type RefreshHandler struct {
	AuthService *service.AuthService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Pull the refresh token from the cookie
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	// 2. Verify it and mint a replacement access token
	accessToken, err := h.AuthService.Refresh(ctx, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			httpx.WriteError(w, http.StatusUnauthorized, "Refresh token has expired")
		case errors.Is(err, service.ErrInvalidToken):
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			log.Error("refresh failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshResponse{
		AccessToken: accessToken,
	})
}
