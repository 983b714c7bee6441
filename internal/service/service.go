// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/url-summarizer/internal/repository"
	"github.com/deppfellow/url-summarizer/internal/server"
)

// Services groups the business services used by handlers.
type Services struct {
	Summary *SummaryService
}

// NewServices wires services to the repositories and to the optional
// background job service of s.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	summary := NewSummaryService(repos.Summary, s.Metrics)

	// Assigning a nil *job.JobService to the interface would make a
	// non-nil notifier, so only set it when jobs run.
	if s.Job != nil {
		summary.SetNotifier(s.Job)
	}

	return &Services{
		Summary: summary,
	}, nil
}
