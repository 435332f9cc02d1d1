package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// Client talks to the authd service. The access token lives in memory; the
// refresh token lives in the cookie jar, exactly like a browser session.
//
// All methods are safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu          sync.RWMutex
	accessToken string
	user        *UserInfo
	refreshing  bool
}

// NewClient creates a client for the service at baseURL. The jar it builds
// is what carries the refreshToken cookie back to the refresh endpoint.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// Login authenticates and primes the client: access token in memory,
// refresh token in the jar via the Set-Cookie on the response.
func (c *Client) Login(ctx context.Context, username, password string) (*UserInfo, error) {
	payload, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/auth/login"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp)
	}

	var body LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = body.AccessToken
	c.user = &body.User
	c.mu.Unlock()

	return &body.User, nil
}

// Refresh exchanges the jar's refresh token for a new access token.
//
// Only one refresh is ever in flight; a call that arrives while another is
// running returns nil immediately rather than queuing a duplicate. On a
// rejected refresh the client's session state is cleared so callers fall
// back to Login.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		c.mu.Unlock()
		return nil
	}
	c.refreshing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/auth/refresh"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.mu.Lock()
		c.accessToken = ""
		c.user = nil
		c.mu.Unlock()
		return newStatusError(resp)
	}

	var body RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = body.AccessToken
	c.mu.Unlock()

	return nil
}

// Do performs an authenticated request. A 401 triggers one refresh followed
// by one retry with the new token; a second rejection surfaces as a
// StatusError rather than another cycle.
//
// Only the final *http.Response is returned and the caller owns its body.
// body may be nil; when retrying, the body is re-sent from the given bytes.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	resp, err = c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		defer resp.Body.Close()
		return nil, newStatusError(resp)
	}

	return resp, nil
}

// Get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetProtected fetches the gated reference resource.
func (c *Client) GetProtected(ctx context.Context) (*ProtectedResponse, error) {
	var body ProtectedResponse
	if err := c.Get(ctx, "/protected", &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// AccessToken returns the access token currently held, or "" when the
// client has not logged in.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// User returns the identity from the last successful login, or nil.
func (c *Client) User() *UserInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Logout drops the in-memory session state. The jar's refresh cookie is
// left to expire on its own.
func (c *Client) Logout() {
	c.mu.Lock()
	c.accessToken = ""
	c.user = nil
	c.mu.Unlock()
}

// send issues a single request with the current access token attached.
func (c *Client) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
