package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreateAssignsIDAndTimestamps(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateProduct(t, db, "Widget", "19.99", 5)

	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.IsZero())

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", loaded.Name)
	assert.True(t, loaded.Price.Equal(created.Price), "expected price %s, got %s", created.Price, loaded.Price)
}

func TestRepositoryListOrdersByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := mustCreateProduct(t, db, "First", "1.00", 1)
	second := mustCreateProduct(t, db, "Second", "2.00", 2)

	rows, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)
}

func TestRepositoryDeleteReportsAffectedRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := mustCreateProduct(t, db, "Doomed", "9.99", 1)

	affected, err := repo.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, affected, "deleting a missing row must not report success")
}

func TestRepositoryIDsAreNotReused(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := mustCreateProduct(t, db, "First", "1.00", 1)
	_, err := repo.DeleteProduct(ctx, first.ID)
	require.NoError(t, err)

	second := mustCreateProduct(t, db, "Second", "2.00", 2)
	assert.Greater(t, second.ID, first.ID)
}
