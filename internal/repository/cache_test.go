package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/url-summarizer/internal/metrics"
	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/deppfellow/url-summarizer/internal/repository"
	"github.com/deppfellow/url-summarizer/internal/repository/repositorytest"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repository.SummaryStore = (*repositorytest.MemoryStore)(nil)

func newCachedStore(t *testing.T) (*repository.CachedSummaryStore, *repositorytest.MemoryStore, *miniredis.Miniredis, *metrics.Metrics) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := repositorytest.NewMemoryStore()
	m := metrics.New()

	return repository.NewCachedSummaryStore(backing, client, time.Minute, m), backing, mr, m
}

func TestCachedSummaryStoreInsertPrimesCache(t *testing.T) {
	store, _, mr, _ := newCachedStore(t)

	created, err := store.Insert(context.Background(), "https://foo.bar", model.PlaceholderSummary)
	require.NoError(t, err)

	raw, err := mr.Get("summary:1")
	require.NoError(t, err)

	var cached model.Summary
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, created.ID, cached.ID)
	assert.Equal(t, "https://foo.bar", cached.URL)
	assert.Equal(t, time.Minute, mr.TTL("summary:1"))
}

func TestCachedSummaryStoreFindByIDReadsThrough(t *testing.T) {
	store, backing, mr, m := newCachedStore(t)
	ctx := context.Background()

	_, err := backing.Insert(ctx, "https://foo.bar", model.PlaceholderSummary)
	require.NoError(t, err)
	require.False(t, mr.Exists("summary:1"))

	got, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, mr.Exists("summary:1"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))

	// Served from Redis even when the backing store fails.
	backing.Err = errors.New("db down")
	got, err = store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://foo.bar", got.URL)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
}

func TestCachedSummaryStoreFindByIDAbsentIsNotCached(t *testing.T) {
	store, _, mr, _ := newCachedStore(t)

	got, err := store.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("summary:999"))
}

func TestCachedSummaryStoreWritesEvict(t *testing.T) {
	store, _, mr, _ := newCachedStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, "https://foo.bar", model.PlaceholderSummary)
	require.NoError(t, err)
	require.True(t, mr.Exists("summary:1"))

	n, err := store.UpdateByID(ctx, 1, "https://new.com", "new")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.False(t, mr.Exists("summary:1"))

	got, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://new.com", got.URL)
	assert.Equal(t, "new", got.Summary)

	n, err = store.DeleteByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.False(t, mr.Exists("summary:1"))

	got, err = store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCachedSummaryStoreFallsBackWhenRedisIsDown(t *testing.T) {
	store, backing, mr, m := newCachedStore(t)
	ctx := context.Background()

	_, err := backing.Insert(ctx, "https://foo.bar", model.PlaceholderSummary)
	require.NoError(t, err)

	mr.Close()

	got, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("error")))

	n, err := store.DeleteByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
