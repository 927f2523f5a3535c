package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/repository"
)

// SessionTokenStore is the shopapi.TokenStore backed by the auth state
// repository. The session is taken from the request context.
type SessionTokenStore struct {
	repo repository.AuthStateRepository
}

func NewSessionTokenStore(repo repository.AuthStateRepository) *SessionTokenStore {
	return &SessionTokenStore{repo: repo}
}

// State loads the auth state of the context's session. A session with
// nothing stored yet yields an empty state.
func (s *SessionTokenStore) State(ctx context.Context) (*domain.AuthState, error) {
	sessionID, ok := shopapi.SessionFrom(ctx)
	if !ok {
		return nil, shopapi.ErrNoSession
	}

	state, err := s.repo.Find(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewAuthState(sessionID), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *SessionTokenStore) AccessToken(ctx context.Context) (string, error) {
	state, err := s.State(ctx)
	if err != nil {
		return "", err
	}
	return state.AccessToken, nil
}

func (s *SessionTokenStore) RefreshToken(ctx context.Context) (string, error) {
	state, err := s.State(ctx)
	if err != nil {
		return "", err
	}
	return state.RefreshToken, nil
}

func (s *SessionTokenStore) SaveTokens(ctx context.Context, accessToken, refreshToken string) error {
	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	state.AccessToken = accessToken
	state.RefreshToken = refreshToken
	state.UpdatedAt = time.Now()
	return s.repo.Save(ctx, state)
}

func (s *SessionTokenStore) Clear(ctx context.Context) error {
	sessionID, ok := shopapi.SessionFrom(ctx)
	if !ok {
		return shopapi.ErrNoSession
	}
	return s.repo.Delete(ctx, sessionID)
}

func (s *SessionTokenStore) RememberPath(ctx context.Context, path string) error {
	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	state.ReturnPath = path
	state.UpdatedAt = time.Now()
	return s.repo.Save(ctx, state)
}

// TakeReturnPath returns the remembered path and forgets it.
func (s *SessionTokenStore) TakeReturnPath(ctx context.Context) (string, error) {
	state, err := s.State(ctx)
	if err != nil {
		return "", err
	}
	path := state.ReturnPath
	if path == "" {
		return "", nil
	}

	state.ReturnPath = ""
	state.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, state); err != nil {
		return "", fmt.Errorf("failed to consume return path: %w", err)
	}
	return path, nil
}
