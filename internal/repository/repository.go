// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"context"

	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/deppfellow/url-summarizer/internal/server"
)

// SummaryStore is the persistence contract for summary records.
//
// FindByID returns (nil, nil) when no record has the id. UpdateByID and
// DeleteByID return the number of affected rows, so zero means absent.
type SummaryStore interface {
	Insert(ctx context.Context, url, summary string) (*model.Summary, error)
	FindByID(ctx context.Context, id int64) (*model.Summary, error)
	FindAll(ctx context.Context) ([]model.Summary, error)
	UpdateByID(ctx context.Context, id int64, url, summary string) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Summary SummaryStore
}

// NewRepositories builds the Postgres repositories on s.DB.
//
// When Redis is available and a cache TTL is configured the summary
// repository is wrapped in a read-through cache.
func NewRepositories(s *server.Server) *Repositories {
	var summary SummaryStore = NewSummaryRepository(s.DB.Pool)

	if s.Redis != nil && s.Config.Redis.CacheTTL > 0 {
		summary = NewCachedSummaryStore(summary, s.Redis, s.Config.Redis.CacheTTL, s.Metrics)
		s.Logger.Info().
			Dur("ttl", s.Config.Redis.CacheTTL).
			Msg("summary cache enabled")
	}

	return &Repositories{Summary: summary}
}

// NewRepositoriesWithStore wraps an existing store, used by tests and
// tools that do not own a database.
func NewRepositoriesWithStore(store SummaryStore) *Repositories {
	return &Repositories{Summary: store}
}
