package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/url-summarizer/internal/errs"
	"github.com/deppfellow/url-summarizer/internal/metrics"
	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/deppfellow/url-summarizer/internal/repository"
	"github.com/rs/zerolog"
)

var summaryNotFoundCode = "SUMMARY_NOT_FOUND"

// SummaryNotifier is told about every newly created summary.
type SummaryNotifier interface {
	NotifySummaryCreated(ctx context.Context, summary *model.Summary) error
}

// SummaryService implements the summary resource operations.
type SummaryService struct {
	store    repository.SummaryStore
	notifier SummaryNotifier
	metrics  *metrics.Metrics
}

func NewSummaryService(store repository.SummaryStore, m *metrics.Metrics) *SummaryService {
	return &SummaryService{
		store:   store,
		metrics: m,
	}
}

// SetNotifier installs n. A nil n disables notifications.
func (s *SummaryService) SetNotifier(n SummaryNotifier) {
	s.notifier = n
}

func errSummaryNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Summary not found", &summaryNotFoundCode)
}

// Create stores a new record for the requested url with the placeholder
// summary. A failed notification is logged and does not fail the call.
func (s *SummaryService) Create(ctx context.Context, req *model.CreateSummaryRequest) (*model.SummaryRef, error) {
	created, err := s.store.Insert(ctx, *req.URL, model.PlaceholderSummary)
	if err != nil {
		return nil, fmt.Errorf("create summary: %w", err)
	}
	s.metrics.RecordMutation("create")

	logger := zerolog.Ctx(ctx)
	logger.Info().
		Int64("summary_id", created.ID).
		Str("url", created.URL).
		Msg("summary created")

	if s.notifier != nil {
		if err := s.notifier.NotifySummaryCreated(ctx, created); err != nil {
			logger.Error().
				Err(err).
				Int64("summary_id", created.ID).
				Msg("failed to enqueue summary notification")
		}
	}

	return created.Ref(), nil
}

func (s *SummaryService) Get(ctx context.Context, id int64) (*model.Summary, error) {
	summary, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	if summary == nil {
		return nil, errSummaryNotFound()
	}
	return summary, nil
}

// List returns every record ordered by id. The result is never nil.
func (s *SummaryService) List(ctx context.Context) ([]model.Summary, error) {
	summaries, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	if summaries == nil {
		summaries = []model.Summary{}
	}
	return summaries, nil
}

// Update replaces url and summary of an existing record and returns the
// stored result.
func (s *SummaryService) Update(ctx context.Context, req *model.UpdateSummaryRequest) (*model.Summary, error) {
	n, err := s.store.UpdateByID(ctx, req.ID, *req.URL, *req.Summary)
	if err != nil {
		return nil, fmt.Errorf("update summary: %w", err)
	}
	if n == 0 {
		return nil, errSummaryNotFound()
	}
	s.metrics.RecordMutation("update")

	updated, err := s.store.FindByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("update summary: %w", err)
	}
	// Deleted between the update and the read.
	if updated == nil {
		return nil, errSummaryNotFound()
	}
	return updated, nil
}

// Delete removes a record and returns the {id, url} it had.
func (s *SummaryService) Delete(ctx context.Context, id int64) (*model.SummaryRef, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete summary: %w", err)
	}
	if existing == nil {
		return nil, errSummaryNotFound()
	}

	n, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete summary: %w", err)
	}
	if n == 0 {
		return nil, errSummaryNotFound()
	}
	s.metrics.RecordMutation("delete")

	zerolog.Ctx(ctx).Info().Int64("summary_id", id).Msg("summary deleted")

	return existing.Ref(), nil
}
