package shopapi

import "context"

// TokenStore is the persistent client storage the interceptor reads tokens
// from. Implementations resolve the session from the context and return
// empty strings when nothing is stored.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SaveTokens(ctx context.Context, accessToken, refreshToken string) error
	// Clear removes all persisted auth state for the session.
	Clear(ctx context.Context) error
	// RememberPath stores where to go after the next successful login.
	RememberPath(ctx context.Context, path string) error
}

// Navigator moves the user to another view when the API refuses a request.
type Navigator interface {
	ToLogin(ctx context.Context, returnPath string)
	ToForbidden(ctx context.Context)
}

// NopNavigator ignores navigation requests.
type NopNavigator struct{}

func (NopNavigator) ToLogin(context.Context, string) {}

func (NopNavigator) ToForbidden(context.Context) {}
