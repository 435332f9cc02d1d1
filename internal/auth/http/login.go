package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tealsec/authd/internal/auth/service"
	"github.com/tealsec/authd/pkg/authsdk"
	"github.com/tealsec/authd/pkg/httpx"
	"github.com/tealsec/authd/pkg/slogx"
)

// refreshCookieName carries the refresh token between the browser and the
// refresh endpoint. HttpOnly keeps it out of reach of page scripts.
const refreshCookieName = "refreshToken"

// LoginHandler serves POST /auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
	RefreshTTL  time.Duration
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Decode the credential payload
	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 2. Authenticate and mint the token pair
	result, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			httpx.WriteError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid username or password")
		default:
			log.Error("login failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	// 3. Hand the refresh token to the browser as an HttpOnly cookie; only
	//    the access token crosses into page-visible JSON
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    result.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		AccessToken: result.AccessToken,
		User: authsdk.UserInfo{
			ID:       result.User.ID,
			Username: result.User.Username,
		},
	})
}
