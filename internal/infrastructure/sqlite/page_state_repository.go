package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/repository"
)

type pageStateRepository struct {
	db *DB
}

func NewPageStateRepository(db *DB) repository.PageStateRepository {
	return &pageStateRepository{db: db}
}

func (r *pageStateRepository) Find(ctx context.Context, sessionID, resource string) (*domain.PageState, error) {
	query := `
		SELECT session_id, resource, state, updated_at
		FROM page_state
		WHERE session_id = ? AND resource = ?
	`
	var state domain.PageState
	err := r.db.GetContext(ctx, &state, query, sessionID, resource)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page state for %s/%s: %w", sessionID, resource, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find page state: %w", err)
	}
	return &state, nil
}

func (r *pageStateRepository) Save(ctx context.Context, state *domain.PageState) error {
	query := `
		INSERT INTO page_state (session_id, resource, state, updated_at)
		VALUES (:session_id, :resource, :state, :updated_at)
		ON CONFLICT(session_id, resource) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.NamedExecContext(ctx, query, state); err != nil {
		return fmt.Errorf("failed to save page state: %w", err)
	}
	return nil
}

func (r *pageStateRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM page_state WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete page state: %w", err)
	}
	return nil
}
