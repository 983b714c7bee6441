package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/deppfellow/url-summarizer/internal/metrics"
	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	summaryKeyPrefix = "summary:"

	// defaultCacheTTL applies when a cache is built with a non-positive TTL.
	defaultCacheTTL = 5 * time.Minute
)

// CachedSummaryStore is a read-through Redis cache in front of another
// SummaryStore. Only single records are cached; lists always hit the
// underlying store.
//
// Cache failures never fail a call. They are logged and the underlying
// store answers instead.
type CachedSummaryStore struct {
	next    SummaryStore
	client  redis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewCachedSummaryStore(next SummaryStore, client redis.Cmdable, ttl time.Duration, m *metrics.Metrics) *CachedSummaryStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedSummaryStore{
		next:    next,
		client:  client,
		ttl:     ttl,
		metrics: m,
	}
}

func summaryKey(id int64) string {
	return summaryKeyPrefix + strconv.FormatInt(id, 10)
}

func (c *CachedSummaryStore) Insert(ctx context.Context, url, summary string) (*model.Summary, error) {
	created, err := c.next.Insert(ctx, url, summary)
	if err != nil {
		return nil, err
	}
	c.store(ctx, created)
	return created, nil
}

func (c *CachedSummaryStore) FindByID(ctx context.Context, id int64) (*model.Summary, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := c.client.Get(ctx, summaryKey(id)).Bytes()
	switch {
	case err == nil:
		var cached model.Summary
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.metrics.RecordCacheLookup("hit")
			return &cached, nil
		}
		logger.Warn().Int64("summary_id", id).Msg("discarding undecodable cached summary")
		c.metrics.RecordCacheLookup("error")
	case errors.Is(err, redis.Nil):
		c.metrics.RecordCacheLookup("miss")
	default:
		logger.Warn().Err(err).Int64("summary_id", id).Msg("summary cache read failed")
		c.metrics.RecordCacheLookup("error")
	}

	summary, err := c.next.FindByID(ctx, id)
	if err != nil || summary == nil {
		return summary, err
	}
	c.store(ctx, summary)
	return summary, nil
}

func (c *CachedSummaryStore) FindAll(ctx context.Context) ([]model.Summary, error) {
	return c.next.FindAll(ctx)
}

func (c *CachedSummaryStore) UpdateByID(ctx context.Context, id int64, url, summary string) (int64, error) {
	n, err := c.next.UpdateByID(ctx, id, url, summary)
	if err != nil {
		return 0, err
	}
	c.evict(ctx, id)
	return n, nil
}

func (c *CachedSummaryStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	n, err := c.next.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	c.evict(ctx, id)
	return n, nil
}

func (c *CachedSummaryStore) store(ctx context.Context, s *model.Summary) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, summaryKey(s.ID), raw, c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int64("summary_id", s.ID).Msg("summary cache write failed")
	}
}

func (c *CachedSummaryStore) evict(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, summaryKey(id)).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int64("summary_id", id).Msg("summary cache eviction failed")
	}
}
