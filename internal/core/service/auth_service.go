package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/logger"
)

type AuthService struct {
	client *shopapi.Client
	tokens *SessionTokenStore
	log    *logger.Logger
}

func NewAuthService(client *shopapi.Client, tokens *SessionTokenStore, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		client: client,
		tokens: tokens,
		log:    log.WithFields("component", "auth"),
	}
}

// Login authenticates against the shop API and stores the token pair for
// the context's session. It returns the path remembered when the previous
// session expired, or "" if there is none.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", badRequest("email and password are required")
	}
	if _, ok := shopapi.SessionFrom(ctx); !ok {
		return "", shopapi.ErrNoSession
	}

	tokens, err := s.client.Login(ctx, email, password)
	if err != nil {
		switch shopapi.StatusCode(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return "", NewServiceError(http.StatusUnauthorized, "invalid credentials")
		}
		return "", fmt.Errorf("failed to log in: %w", err)
	}

	if err := s.tokens.SaveTokens(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		return "", fmt.Errorf("failed to store tokens: %w", err)
	}
	s.log.Info("logged in", "email", email)

	returnPath, err := s.tokens.TakeReturnPath(ctx)
	if err != nil {
		s.log.WithError(err).Warn("could not read return path")
		return "", nil
	}
	return returnPath, nil
}

// Logout revokes the refresh token upstream when possible and always
// clears the local auth state.
func (s *AuthService) Logout(ctx context.Context) error {
	refreshToken, err := s.tokens.RefreshToken(ctx)
	if err != nil {
		return err
	}

	if refreshToken != "" {
		if err := s.client.Logout(ctx, refreshToken); err != nil {
			s.log.WithError(err).Warn("upstream logout failed")
		}
	}

	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear auth state: %w", err)
	}
	return nil
}

// SessionStatus describes the stored credentials of a session.
type SessionStatus struct {
	SessionID       string     `json:"session_id"`
	Authenticated   bool       `json:"authenticated"`
	Subject         string     `json:"subject,omitempty"`
	Email           string     `json:"email,omitempty"`
	Roles           []string   `json:"roles,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Expired         bool       `json:"expired"`
	HasRefreshToken bool       `json:"has_refresh_token"`
	ReturnPath      string     `json:"return_path,omitempty"`
}

// TokenClaims are the access token claims the admin cares about
type TokenClaims struct {
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// Status decodes the stored access token. The signature is not verified:
// the shop API is the only party that can, and it does on every request.
func (s *AuthService) Status(ctx context.Context) (*SessionStatus, error) {
	state, err := s.tokens.State(ctx)
	if err != nil {
		return nil, err
	}

	status := &SessionStatus{
		SessionID:       state.SessionID,
		Authenticated:   state.AccessToken != "",
		HasRefreshToken: state.RefreshToken != "",
		ReturnPath:      state.ReturnPath,
	}
	if state.AccessToken == "" {
		return status, nil
	}

	claims, err := ParseTokenClaims(state.AccessToken)
	if err != nil {
		s.log.WithError(err).Debug("access token is not a readable JWT")
		return status, nil
	}

	status.Subject = claims.Subject
	status.Email = claims.Email
	status.Roles = claims.Roles
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		status.ExpiresAt = &expiresAt
		status.Expired = time.Now().After(expiresAt)
	}
	return status, nil
}

// ParseTokenClaims reads the claims of a JWT without verifying it.
func ParseTokenClaims(token string) (*TokenClaims, error) {
	var claims TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return &claims, nil
}
