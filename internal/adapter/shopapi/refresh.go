package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	LoginPath   = "auth/login"
	RefreshPath = "auth/refresh"
	LogoutPath  = "auth/logout"
)

// TokenPair is the token response of the login and refresh endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// refresher exchanges refresh tokens. Each call builds its own http.Client
// over the un-intercepted transport, so a failing refresh can never recurse
// into the interceptor.
type refresher struct {
	baseURL   *url.URL
	transport http.RoundTripper
	timeout   time.Duration
}

func (r *refresher) newClient() *http.Client {
	return &http.Client{
		Transport: r.transport,
		Timeout:   r.timeout,
	}
}

// Refresh exchanges refreshToken for a new token pair. Non-2xx answers are
// returned as *APIError.
func (r *refresher) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var tokens TokenPair
	if err := r.post(ctx, RefreshPath, map[string]string{"refresh_token": refreshToken}, &tokens); err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("refresh response has no access token")
	}
	return &tokens, nil
}

func (r *refresher) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL.JoinPath(path).String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.newClient().Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
