package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

func newTestStore(t *testing.T) (*ArtifactStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewArtifactStore(rdb, time.Hour), mr
}

func TestArtifactStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	data := []byte("PK\x03\x04 not a real docx")
	id, err := store.Put(ctx, "quote_QT-2024-0001.docx", data)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "quote_QT-2024-0001.docx", got.Filename)
	assert.Equal(t, data, got.Data)
}

func TestArtifactStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Put(ctx, "quote.docx", []byte("data"))
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestArtifactStoreMalformedID(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestArtifactStoreMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "2b1a0f5e-8b4b-4c87-9f6e-2f9a1f1c2d3e")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
