package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaryColumns = []string{"id", "url", "summary", "created_at"}

func newMockRepository(t *testing.T) (*SummaryRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewSummaryRepository(mock), mock
}

func TestSummaryRepositoryInsert(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepository(t)
	now := time.Unix(1700000000, 0).UTC()

	mock.ExpectQuery(regexp.QuoteMeta(insertSummarySQL)).
		WithArgs("https://foo.bar", "test summary").
		WillReturnRows(pgxmock.NewRows(summaryColumns).
			AddRow(int64(7), "https://foo.bar", "test summary", now))

	created, err := repo.Insert(context.Background(), "https://foo.bar", "test summary")
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "https://foo.bar", created.URL)
	assert.Equal(t, "test summary", created.Summary)
	assert.True(t, now.Equal(created.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryRepositoryInsertKeepsPgError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertSummarySQL)).
		WithArgs("https://foo.bar", "test summary").
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "summaries"})

	_, err := repo.Insert(context.Background(), "https://foo.bar", "test summary")
	require.Error(t, err)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
}

func TestSummaryRepositoryFindByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)
		now := time.Unix(1700000000, 0).UTC()

		mock.ExpectQuery(regexp.QuoteMeta(selectSummarySQL)).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows(summaryColumns).
				AddRow(int64(3), "http://example.com", "text", now))

		got, err := repo.FindByID(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, "text", got.Summary)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectSummarySQL)).
			WithArgs(int64(999)).
			WillReturnRows(pgxmock.NewRows(summaryColumns))

		got, err := repo.FindByID(context.Background(), 999)
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSummaryRepositoryFindAll(t *testing.T) {
	t.Parallel()

	t.Run("ordered rows", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)
		now := time.Unix(1700000000, 0).UTC()

		mock.ExpectQuery(regexp.QuoteMeta(listSummariesSQL)).
			WillReturnRows(pgxmock.NewRows(summaryColumns).
				AddRow(int64(1), "http://a.com", "test summary", now).
				AddRow(int64(2), "http://b.com", "test summary", now))

		got, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("empty is not nil", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(listSummariesSQL)).
			WillReturnRows(pgxmock.NewRows(summaryColumns))

		got, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSummaryRepositoryUpdateAndDelete(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(updateSummarySQL)).
		WithArgs("https://new.com", "", int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(updateSummarySQL)).
		WithArgs("https://new.com", "x", int64(999)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteSummarySQL)).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteSummarySQL)).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ctx := context.Background()

	n, err := repo.UpdateByID(ctx, 4, "https://new.com", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.UpdateByID(ctx, 999, "https://new.com", "x")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.DeleteByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, mock.ExpectationsWereMet())
}
