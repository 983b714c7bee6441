package model

import (
	"github.com/deppfellow/url-summarizer/internal/validation"
	"github.com/labstack/echo/v4"
)

// The url rules mirror an http(s)-only URL type: presence, length,
// a scheme, an allowed scheme, then a host. The first failing rule is
// the one reported. Surrounding whitespace is trimmed before the rules
// run, so the stored url is the trimmed one.

// CreateSummaryRequest is the body of POST /summary.
type CreateSummaryRequest struct {
	URL *string `json:"url" validate:"required,min=1,max=65536,url_scheme_present,url_scheme=http https,url_host"`
}

func (r *CreateSummaryRequest) Validate() error {
	validation.TrimSpace(r.URL)
	return validation.Struct(r)
}

// SummaryIDRequest carries the {id} path parameter of get and delete.
type SummaryIDRequest struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
}

func (r *SummaryIDRequest) BindPath(b *echo.ValueBinder) {
	b.Int64("id", &r.ID)
}

func (r *SummaryIDRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateSummaryRequest is PUT /summary/{id}. Path fields are declared
// first so their violations are reported first.
type UpdateSummaryRequest struct {
	ID      int64   `param:"id" json:"-" validate:"gt=0"`
	URL     *string `json:"url" validate:"required,min=1,max=65536,url_scheme_present,url_scheme=http https,url_host"`
	Summary *string `json:"summary" validate:"required"`
}

func (r *UpdateSummaryRequest) BindPath(b *echo.ValueBinder) {
	b.Int64("id", &r.ID)
}

func (r *UpdateSummaryRequest) Validate() error {
	validation.TrimSpace(r.URL)
	return validation.Struct(r)
}

// ListSummariesRequest has no inputs.
type ListSummariesRequest struct{}

func (r *ListSummariesRequest) Validate() error {
	return nil
}
