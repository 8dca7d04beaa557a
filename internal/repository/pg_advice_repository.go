package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/folio/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adviceTable = "advice_museum"

var adviceColumns = []string{
	"id", "advice", "author_name", "author_email", "submission_date", "is_approved", "approved_at",
}

// PgAdviceRepository は AdviceRepository の PostgreSQL 実装
type PgAdviceRepository struct {
	pool *pgxpool.Pool
}

// NewPgAdviceRepository は PgAdviceRepository を生成する
func NewPgAdviceRepository(pool *pgxpool.Pool) *PgAdviceRepository {
	return &PgAdviceRepository{pool: pool}
}

var _ AdviceRepository = (*PgAdviceRepository)(nil)

func scanAdvice(row pgx.Row) (*model.AdviceEntry, error) {
	var e model.AdviceEntry
	if err := row.Scan(&e.ID, &e.Text, &e.AuthorName, &e.AuthorEmail, &e.SubmittedAt, &e.Approved, &e.ApprovedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// advicePredicate maps a moderation filter to a WHERE clause; nil means no filter.
func advicePredicate(filter model.AdviceFilter) sq.Sqlizer {
	switch filter {
	case model.AdviceFilterPending:
		return sq.Eq{"is_approved": false}
	case model.AdviceFilterApproved:
		return sq.Eq{"is_approved": true}
	}
	return nil
}

func adviceListQuery(opts model.AdviceListOptions) (string, []any, error) {
	b := psql.Select(adviceColumns...).From(adviceTable)
	if pred := advicePredicate(opts.Filter); pred != nil {
		b = b.Where(pred)
	}
	b = b.OrderBy("submission_date DESC", "id DESC")
	return paginate(b, opts.Limit, opts.Offset).ToSql()
}

// Create inserts a new advice_museum row and populates ID and SubmittedAt
// from the RETURNING clause.
func (r *PgAdviceRepository) Create(ctx context.Context, e *model.AdviceEntry) error {
	query, args, err := psql.Insert(adviceTable).
		Columns("advice", "author_name", "author_email", "submission_date", "is_approved", "approved_at").
		Values(e.Text, e.AuthorName, e.AuthorEmail, e.SubmittedAt, e.Approved, e.ApprovedAt).
		Suffix("RETURNING id, submission_date").
		ToSql()
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.SubmittedAt)
}

// List returns advice entries, newest submission first.
func (r *PgAdviceRepository) List(ctx context.Context, opts model.AdviceListOptions) ([]*model.AdviceEntry, error) {
	query, args, err := adviceListQuery(opts)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.AdviceEntry
	for rows.Next() {
		e, err := scanAdvice(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByID は ID でアドバイスを取得する
func (r *PgAdviceRepository) GetByID(ctx context.Context, id string) (*model.AdviceEntry, error) {
	query, args, err := psql.Select(adviceColumns...).From(adviceTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	e, err := scanAdvice(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return e, nil
}

// Approve sets is_approved in a single UPDATE ... RETURNING.
func (r *PgAdviceRepository) Approve(ctx context.Context, id string, at time.Time) (*model.AdviceEntry, error) {
	return r.updateApproval(ctx, psql.Update(adviceTable).
		Set("is_approved", true).
		Set("approved_at", sq.Expr("COALESCE(approved_at, ?)", at)).
		Where(sq.Eq{"id": id}))
}

// Reject clears the approval and its timestamp.
func (r *PgAdviceRepository) Reject(ctx context.Context, id string) (*model.AdviceEntry, error) {
	return r.updateApproval(ctx, psql.Update(adviceTable).
		Set("is_approved", false).
		Set("approved_at", nil).
		Where(sq.Eq{"id": id}))
}

func (r *PgAdviceRepository) updateApproval(ctx context.Context, b sq.UpdateBuilder) (*model.AdviceEntry, error) {
	query, args, err := b.Suffix("RETURNING " + joinColumns(adviceColumns)).ToSql()
	if err != nil {
		return nil, err
	}
	e, err := scanAdvice(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return e, nil
}

// Delete removes the row permanently.
func (r *PgAdviceRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.pool, adviceTable, id)
}

// Count returns the number of entries matching filter.
func (r *PgAdviceRepository) Count(ctx context.Context, filter model.AdviceFilter) (int, error) {
	return count(ctx, r.pool, adviceTable, advicePredicate(filter))
}
