package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tealsec/authd/pkg/jwtx"
	"github.com/tealsec/authd/pkg/slogx"
)

// AccessTokenVerifier is the slice of the auth service the request gate
// needs: validate a bearer token and hand back its claims.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (jwtx.Claims, error)
}

// AuthnMiddleware is the per-request gate in front of protected handlers.
// It fails closed: no header, a header that is not exactly "Bearer <token>",
// or a token the verifier rejects all end the request with 401. On success
// the verified claims are injected into the request context.
func AuthnMiddleware(v AccessTokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" {
				writeBearerError(w, "Authorization header is required")
				return
			}

			// Exactly one space, case-sensitive scheme, non-empty token.
			parts := strings.Split(authz, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				writeBearerError(w, "Invalid authorization header")
				return
			}

			claims, err := v.VerifyAccessToken(parts[1])
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "Access token has expired")
					return
				}
				log.Warn("access token verification failed", "err", err)
				writeBearerError(w, "Invalid access token")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// writeBearerError pairs the RFC 6750 challenge header with the service's
// uniform JSON error body.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, desc)
}
