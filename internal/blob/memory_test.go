package blob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gift-registry/internal/blob"
)

func TestMemoryStoreGetPut(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	_, err := store.Get(ctx, "gifts/1.json")
	require.ErrorIs(t, err, blob.ErrNotFound)

	require.NoError(t, store.Put(ctx, "gifts/1.json", []byte(`{"id":1}`)))

	data, err := store.Get(ctx, "gifts/1.json")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(data))
}

func TestMemoryStorePutIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	claimed, err := store.PutIfAbsent(ctx, "index/phone/111.json", []byte(`{"userId":1}`))
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = store.PutIfAbsent(ctx, "index/phone/111.json", []byte(`{"userId":2}`))
	require.NoError(t, err)
	assert.False(t, claimed)

	data, err := store.Get(ctx, "index/phone/111.json")
	require.NoError(t, err)
	assert.Equal(t, `{"userId":1}`, string(data))
}

func TestMemoryStoreDeleteAbsentKey(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	require.NoError(t, store.Delete(ctx, "gifts/99.json"))
}

func TestMemoryStoreListByPrefix(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "cart/2/5.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "cart/1/5.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "gifts/5.json", []byte("{}")))

	keys, err := store.ListByPrefix(ctx, "cart/")
	require.NoError(t, err)
	assert.Equal(t, []string{"cart/1/5.json", "cart/2/5.json"}, keys)

	keys, err = store.ListByPrefix(ctx, "cart/1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"cart/1/5.json"}, keys)
}

func TestMemoryStoreIncr(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Incr(ctx, "seq/gifts")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// counters seeded via Put keep incrementing from the stored value
	require.NoError(t, store.Put(ctx, "seq/users", []byte("41")))
	got, err := store.Incr(ctx, "seq/users")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}
