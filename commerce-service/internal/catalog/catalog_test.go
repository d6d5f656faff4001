package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	repo, err := NewRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)

	require.NoError(t, repo.RunMigrations())
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestGetAll_Returns15AfterMigrations(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 15)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "Apple", products[0].Name)
	assert.Equal(t, "10", products[9].ID)
	assert.Equal(t, "Bell Pepper", products[9].Name)
	assert.Equal(t, "Lemon", products[14].Name)
}

func TestGetAll_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetByName(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	apple, err := repo.GetByName(ctx, "APPLE")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.99").Equal(apple.Price))
	assert.Equal(t, "per lb", apple.Unit)
	assert.Equal(t, "fruit", apple.Category)
	assert.Equal(t, "123456001", apple.Barcode)
	assert.Equal(t, "Local Farm", apple.Origin)
	assert.Equal(t, "95 calories per serving", apple.Nutrition)

	pepper, err := repo.GetByName(ctx, " Bell Pepper ")
	require.NoError(t, err)
	assert.Equal(t, "10", pepper.ID)
	assert.Empty(t, pepper.Origin)
}

func TestGetByName_Unknown(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByName(context.Background(), "durian")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.RunMigrations())

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, n)
}
