package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/repository"
)

type authStateRepository struct {
	db *DB
}

func NewAuthStateRepository(db *DB) repository.AuthStateRepository {
	return &authStateRepository{db: db}
}

func (r *authStateRepository) Find(ctx context.Context, sessionID string) (*domain.AuthState, error) {
	query := `
		SELECT session_id, access_token, refresh_token, return_path, updated_at
		FROM auth_state
		WHERE session_id = ?
	`
	var state domain.AuthState
	err := r.db.GetContext(ctx, &state, query, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("auth state for session %s: %w", sessionID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find auth state: %w", err)
	}
	return &state, nil
}

func (r *authStateRepository) Save(ctx context.Context, state *domain.AuthState) error {
	query := `
		INSERT INTO auth_state (session_id, access_token, refresh_token, return_path, updated_at)
		VALUES (:session_id, :access_token, :refresh_token, :return_path, :updated_at)
		ON CONFLICT(session_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			return_path = excluded.return_path,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.NamedExecContext(ctx, query, state); err != nil {
		return fmt.Errorf("failed to save auth state: %w", err)
	}
	return nil
}

func (r *authStateRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_state WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete auth state: %w", err)
	}
	return nil
}
