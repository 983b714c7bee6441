package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool used by repositories. It is
// satisfied by pgx.Tx and by pgxmock pools as well.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	insertSummarySQL = `INSERT INTO summaries (url, summary) VALUES ($1, $2) RETURNING id, url, summary, created_at`
	selectSummarySQL = `SELECT id, url, summary, created_at FROM summaries WHERE id = $1`
	listSummariesSQL = `SELECT id, url, summary, created_at FROM summaries ORDER BY id`
	updateSummarySQL = `UPDATE summaries SET url = $1, summary = $2 WHERE id = $3`
	deleteSummarySQL = `DELETE FROM summaries WHERE id = $1`
)

// SummaryRepository stores summaries in the summaries table.
type SummaryRepository struct {
	db DBTX
}

func NewSummaryRepository(db DBTX) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Insert(ctx context.Context, url, summary string) (*model.Summary, error) {
	rows, err := r.db.Query(ctx, insertSummarySQL, url, summary)
	if err != nil {
		return nil, fmt.Errorf("insert summary: %w", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Summary])
	if err != nil {
		return nil, fmt.Errorf("insert summary: %w", err)
	}

	return created, nil
}

func (r *SummaryRepository) FindByID(ctx context.Context, id int64) (*model.Summary, error) {
	rows, err := r.db.Query(ctx, selectSummarySQL, id)
	if err != nil {
		return nil, fmt.Errorf("find summary %d: %w", id, err)
	}

	summary, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Summary])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find summary %d: %w", id, err)
	}

	return summary, nil
}

func (r *SummaryRepository) FindAll(ctx context.Context) ([]model.Summary, error) {
	rows, err := r.db.Query(ctx, listSummariesSQL)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}

	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Summary])
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	if summaries == nil {
		summaries = []model.Summary{}
	}

	return summaries, nil
}

func (r *SummaryRepository) UpdateByID(ctx context.Context, id int64, url, summary string) (int64, error) {
	tag, err := r.db.Exec(ctx, updateSummarySQL, url, summary, id)
	if err != nil {
		return 0, fmt.Errorf("update summary %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *SummaryRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteSummarySQL, id)
	if err != nil {
		return 0, fmt.Errorf("delete summary %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
