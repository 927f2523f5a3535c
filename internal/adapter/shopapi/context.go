package shopapi

import "context"

type contextKey int

const (
	sessionKey contextKey = iota
	currentPathKey
	retriedKey
	resourceKey
)

// WithSession scopes token storage lookups to the given session.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom returns the session set by WithSession.
func SessionFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

// WithCurrentPath records the view the caller is on, so an expired session
// can send the user back there after login.
func WithCurrentPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, currentPathKey, path)
}

func CurrentPathFrom(ctx context.Context) string {
	path, _ := ctx.Value(currentPathKey).(string)
	return path
}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey, true)
}

func isRetried(ctx context.Context) bool {
	retried, _ := ctx.Value(retriedKey).(bool)
	return retried
}

func withResource(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, resourceKey, name)
}

// resourceFrom names the resource a request targets, for metrics.
func resourceFrom(ctx context.Context) string {
	if name, ok := ctx.Value(resourceKey).(string); ok && name != "" {
		return name
	}
	return "other"
}
