package shopapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/martijn/shopadmin/internal/logger"
	"github.com/martijn/shopadmin/pkg/metrics"
)

// authTransport attaches the stored bearer token to every request and, on a
// 401, refreshes the token once and replays the request.
//
// Concurrent requests that fail together each run their own refresh; there
// is no queuing of in-flight 401s.
type authTransport struct {
	base      http.RoundTripper
	store     TokenStore
	navigator Navigator
	refresher *refresher
	log       *logger.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.storedToken(req)
	if err != nil {
		return nil, err
	}

	resp, err := t.send(req, token)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if isRetried(ctx) {
			return resp, nil
		}
		return t.refreshAndReplay(req, resp)
	case http.StatusForbidden:
		t.navigator.ToForbidden(ctx)
	}

	return resp, nil
}

func (t *authTransport) storedToken(req *http.Request) (string, error) {
	token, err := t.store.AccessToken(req.Context())
	if err != nil && !errors.Is(err, ErrNoSession) {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	return token, nil
}

// send clones req with the bearer token set. An empty token sends the
// request unauthenticated.
func (t *authTransport) send(req *http.Request, token string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	metrics.UpstreamRequestCounter.WithLabelValues(resourceFrom(req.Context()), req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

func (t *authTransport) refreshAndReplay(req *http.Request, original *http.Response) (*http.Response, error) {
	ctx := markRetried(req.Context())
	log := t.log.WithFields("method", req.Method, "path", req.URL.Path)

	refreshToken, err := t.store.RefreshToken(ctx)
	if err != nil && !errors.Is(err, ErrNoSession) {
		log.WithError(err).Warn("could not read refresh token")
	}
	if refreshToken == "" {
		metrics.TokenRefreshCounter.WithLabelValues(metrics.RefreshSkipped).Inc()
		return original, nil
	}

	tokens, err := t.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		if StatusCode(err) == http.StatusForbidden {
			metrics.TokenRefreshCounter.WithLabelValues(metrics.RefreshRejected).Inc()
			log.Info("refresh token rejected, signing out")
			t.signOut(req)
			return original, nil
		}
		metrics.TokenRefreshCounter.WithLabelValues(metrics.RefreshFailed).Inc()
		log.WithError(err).Warn("token refresh failed")
		return original, nil
	}
	metrics.TokenRefreshCounter.WithLabelValues(metrics.RefreshSucceeded).Inc()

	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	if err := t.store.SaveTokens(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		original.Body.Close()
		return nil, fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	replay := req.WithContext(ctx)
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return original, nil
		}
		body, err := req.GetBody()
		if err != nil {
			original.Body.Close()
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		replay.Body = body
	}

	io.Copy(io.Discard, original.Body)
	original.Body.Close()

	log.Debug("replaying request with refreshed token")
	resp, err := t.send(replay, tokens.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusForbidden {
		t.navigator.ToForbidden(ctx)
	}
	return resp, nil
}

// signOut drops the stored session and sends the user to the login view,
// remembering where they were.
func (t *authTransport) signOut(req *http.Request) {
	ctx := req.Context()
	path := CurrentPathFrom(ctx)

	if err := t.store.Clear(ctx); err != nil {
		t.log.WithError(err).Error("failed to clear auth state")
	}
	if path != "" {
		if err := t.store.RememberPath(ctx, path); err != nil {
			t.log.WithError(err).Warn("failed to remember return path")
		}
	}
	t.navigator.ToLogin(ctx, path)
}
