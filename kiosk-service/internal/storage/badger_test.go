package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBadger(t *testing.T) *BadgerStore {
	store, err := OpenBadger("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadger_LoadMissing(t *testing.T) {
	store := setupBadger(t)

	data, err := store.Load(context.Background(), "cart")

	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.Nil(t, data)
}

func TestBadger_SaveAndLoad(t *testing.T) {
	store := setupBadger(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "cart", []byte(`[{"name":"apple"}]`)))
	require.NoError(t, store.Save(ctx, "cart", []byte(`[]`)))

	data, err := store.Load(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenBadger(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "cart", []byte(`[{"name":"mango"}]`)))
	require.NoError(t, store.Close())

	reopened, err := OpenBadger(dir, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	data, err := reopened.Load(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"mango"}]`, string(data))
}
