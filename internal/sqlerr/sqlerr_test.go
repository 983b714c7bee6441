package sqlerr

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/url-summarizer/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	notFound := errs.NewNotFoundError("Summary not found", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail any
	}{
		{
			name:       "http error passes through",
			err:        fmt.Errorf("service: %w", notFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantDetail: "Summary not found",
		},
		{
			name: "unique violation is a 500 with a classified code",
			err: fmt.Errorf("failed to insert summary: %w", &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "summaries",
				ConstraintName: "summaries_url_key",
			}),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SUMMARY_ALREADY_EXISTS",
			wantDetail: "Internal Server Error",
		},
		{
			name:       "not null violation",
			err:        &pgconn.PgError{Code: "23502", TableName: "summaries", ColumnName: "url"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SUMMARY_REQUIRED",
			wantDetail: "Internal Server Error",
		},
		{
			name:       "stray no rows is a 500",
			err:        fmt.Errorf("find: %w", pgx.ErrNoRows),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "UNEXPECTED_NO_ROWS",
			wantDetail: "Internal Server Error",
		},
		{
			name:       "canceled",
			err:        fmt.Errorf("query: %w", context.Canceled),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "REQUEST_CANCELED",
			wantDetail: "Internal Server Error",
		},
		{
			name:       "unknown",
			err:        fmt.Errorf("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantDetail: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := HandleError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantDetail, got.Detail)
		})
	}
}

func TestDescribeUniqueViolation(t *testing.T) {
	t.Parallel()

	sqlErr := ConvertPgError(&pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "summaries",
		ConstraintName: "unique_summaries_url",
	})

	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, SeverityError, sqlErr.Severity)
	assert.Equal(t, "A Summary with this Url already exists", describe(sqlErr))
}

func TestSingular(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "summary", singular("summaries"))
	assert.Equal(t, "user", singular("users"))
	assert.Equal(t, "data", singular("data"))
}
