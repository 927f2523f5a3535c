package repository

import (
	"context"
	"errors"

	"github.com/martijn/shopadmin/internal/core/domain"
)

// ErrNotFound is returned when no record exists for the key.
var ErrNotFound = errors.New("not found")

type AuthStateRepository interface {
	Find(ctx context.Context, sessionID string) (*domain.AuthState, error)
	// Save inserts or replaces the state for state.SessionID.
	Save(ctx context.Context, state *domain.AuthState) error
	Delete(ctx context.Context, sessionID string) error
}
