package http

import (
	"net/http"
	"time"

	"github.com/tealsec/authd/internal/auth/service"
	"github.com/tealsec/authd/pkg/authsdk"
	"github.com/tealsec/authd/pkg/httpx"
)

// LivezHandler always answers 200 while the process is up.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler reports whether the service can actually mint tokens.
func ReadyzHandler(startTime time.Time, version string, svc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Signer: "ok",
			Store:  "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if svc == nil || svc.Issuer == nil || svc.Issuer.Signer == nil {
			checks.Signer = "error: signer not configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if svc == nil || svc.Store == nil {
			checks.Store = "error: credential store not configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
