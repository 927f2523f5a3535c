package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/martijn/shopadmin/internal/logger"
)

const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Store     TokenStore
	Navigator Navigator
	Logger    *logger.Logger
	// Transport is the underlying transport for both the intercepted client
	// and the refresh calls. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client talks to the shop REST API on behalf of the session in each
// request context.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	refresher *refresher
}

// NewClient creates a new shop API client
func NewClient(opts Options) (*Client, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("token store is required")
	}

	baseURL, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", opts.BaseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.Navigator == nil {
		opts.Navigator = NopNavigator{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	r := &refresher{
		baseURL:   baseURL,
		transport: opts.Transport,
		timeout:   opts.Timeout,
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &authTransport{
				base:      opts.Transport,
				store:     opts.Store,
				navigator: opts.Navigator,
				refresher: r,
				log:       opts.Logger.WithFields("component", "shopapi"),
			},
		},
		refresher: r,
	}, nil
}

// Login exchanges credentials for a token pair. It bypasses the
// interceptor: a 401 here means bad credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var tokens TokenPair
	err := c.refresher.post(ctx, LoginPath, map[string]string{
		"email":    email,
		"password": password,
	}, &tokens)
	if err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("login response has no access token")
	}
	return &tokens, nil
}

// Logout revokes refreshToken upstream.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.refresher.post(ctx, LogoutPath, map[string]string{"refresh_token": refreshToken}, nil)
}

// Do sends a JSON request through the interceptor and decodes the response
// into out when out is not nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func idPath(resource string, id int64) string {
	return resource + "/" + strconv.FormatInt(id, 10)
}
