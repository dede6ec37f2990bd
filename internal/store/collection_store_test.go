package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/mealprep/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })
	return d
}

func TestCollectionStoreSaveAndLoad(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "meals", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Save(ctx, "recipes", []byte(`[]`)))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"meals":   []byte(`[{"id":"1"}]`),
		"recipes": []byte(`[]`),
	}, got)
}

func TestCollectionStoreSaveOverwrites(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "meals", []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, "meals", []byte(`[1,2]`)))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got["meals"]))
}

func TestCollectionStoreLoadEmpty(t *testing.T) {
	s := NewCollectionStore(openTestDB(t))

	all, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSettingsStoreDefaultsFlag(t *testing.T) {
	s := NewSettingsStore(openTestDB(t))
	ctx := context.Background()

	loaded, err := s.DefaultsLoaded(ctx)
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, s.MarkDefaultsLoaded(ctx))
	require.NoError(t, s.MarkDefaultsLoaded(ctx))

	loaded, err = s.DefaultsLoaded(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)

	v, ok, err := s.Get(ctx, "defaults_loaded")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}
