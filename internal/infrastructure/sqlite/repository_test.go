package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAuthStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAuthStateRepository(setupTestDB(t))

	_, err := repo.Find(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	state := domain.NewAuthState("s1")
	state.AccessToken = "a1"
	state.RefreshToken = "r1"
	require.NoError(t, repo.Save(ctx, state))

	state.AccessToken = "a2"
	state.ReturnPath = "/admin/coupons"
	state.UpdatedAt = time.Now()
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.AccessToken)
	assert.Equal(t, "r1", got.RefreshToken)
	assert.Equal(t, "/admin/coupons", got.ReturnPath)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Find(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// deleting twice is not an error
	assert.NoError(t, repo.Delete(ctx, "s1"))
}

func TestPageStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPageStateRepository(setupTestDB(t))

	for _, resource := range []string{domain.ResourceProducts, domain.ResourceBrands} {
		require.NoError(t, repo.Save(ctx, &domain.PageState{
			SessionID: "s1",
			Resource:  resource,
			State:     `{"page":1}`,
			UpdatedAt: time.Now(),
		}))
	}
	require.NoError(t, repo.Save(ctx, &domain.PageState{
		SessionID: "s1",
		Resource:  domain.ResourceProducts,
		State:     `{"page":4}`,
		UpdatedAt: time.Now(),
	}))

	got, err := repo.Find(ctx, "s1", domain.ResourceProducts)
	require.NoError(t, err)
	assert.Equal(t, `{"page":4}`, got.State)

	require.NoError(t, repo.DeleteSession(ctx, "s1"))
	_, err = repo.Find(ctx, "s1", domain.ResourceBrands)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
