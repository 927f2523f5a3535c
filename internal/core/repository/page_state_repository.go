package repository

import (
	"context"

	"github.com/martijn/shopadmin/internal/core/domain"
)

type PageStateRepository interface {
	Find(ctx context.Context, sessionID, resource string) (*domain.PageState, error)
	Save(ctx context.Context, state *domain.PageState) error
	DeleteSession(ctx context.Context, sessionID string) error
}
