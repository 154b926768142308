package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/bohselecta/luvler-metering/internal/errors"
)

func TestInMemoryStorePutFetch(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a/b", []byte(`{"x":1}`)))

	data, err := store.Fetch(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))

	exists, err := store.Exists(ctx, "a/b")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInMemoryStoreFetchMissingIsNotFound(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Fetch(context.Background(), "missing")
	assert.True(t, ierr.IsNotFound(err))

	exists, err := store.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryStoreCopiesData(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", original))
	original[0] = 'z'

	data, err := store.Fetch(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	// mutating a fetched copy must not affect the stored value
	data[0] = 'q'
	again, err := store.Fetch(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestInMemoryStoreListIsSortedAndPrefixed(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, key := range []string{"usage/u1/2026-07", "usage/u1/2026-06", "usage/u2/2026-06", "billing/users/u1"} {
		require.NoError(t, store.Put(ctx, key, []byte("{}")))
	}

	keys, err := store.List(ctx, "usage/u1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"usage/u1/2026-06", "usage/u1/2026-07"}, keys)

	keys, err = store.List(ctx, "nothing/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
