package authsdk

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the public identity shape returned by the service.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is the success body for POST /auth/login. The refresh token
// is not part of the body; it travels in the refreshToken cookie.
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	User        UserInfo `json:"user"`
}

// RefreshResponse is the success body for POST /auth/refresh.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// ProtectedResponse is the success body for GET /protected.
type ProtectedResponse struct {
	Message   string   `json:"message"`
	User      UserInfo `json:"user"`
	Timestamp string   `json:"timestamp"`
}

// ErrorResponse is the uniform error body for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthChecks reports per-dependency status in readiness probes.
type HealthChecks struct {
	Signer string `json:"signer"`
	Store  string `json:"store"`
}

// HealthResponse is the body for GET /livez and GET /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
