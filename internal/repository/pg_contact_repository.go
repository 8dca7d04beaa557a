package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/folio/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactTable = "contact_submissions"

var contactColumns = []string{"id", "name", "email", "subject", "message", "status", "created_at", "updated_at"}

// ContactRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	// MarkRead moves an unread message to read and returns the row as stored
	// after the update. Messages in any other state are returned unchanged.
	MarkRead(ctx context.Context, id string) (*model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status string) (int, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

func scanContact(row pgx.Row) (*model.ContactMessage, error) {
	var m model.ContactMessage
	var status string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Status = model.ContactStatus(status)
	return &m, nil
}

func contactPredicate(status string) sq.Sqlizer {
	if status == "" || status == "all" {
		return nil
	}
	return sq.Eq{"status": status}
}

func contactListQuery(opts model.ContactListOptions) (string, []any, error) {
	b := psql.Select(contactColumns...).From(contactTable)
	if pred := contactPredicate(opts.Status); pred != nil {
		b = b.Where(pred)
	}
	b = b.OrderBy("created_at DESC", "id DESC")
	return paginate(b, opts.Limit, opts.Offset).ToSql()
}

// Save inserts a new contact_submissions row and populates msg.ID and timestamps
// from the database RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	query, args, err := psql.Insert(contactTable).
		Columns("name", "email", "subject", "message", "status", "created_at", "updated_at").
		Values(msg.Name, msg.Email, msg.Subject, msg.Message, string(msg.Status), msg.CreatedAt, msg.UpdatedAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, query, args...).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

// List returns contact messages filtered by status and paginated by limit/offset.
// Status "" or "all" returns all messages.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	query, args, err := contactListQuery(opts)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// GetByID returns a single message without touching its status.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	query, args, err := psql.Select(contactColumns...).From(contactTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanContact(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

// MarkRead is a single UPDATE so concurrent opens cannot observe a half-applied state.
func (r *PgContactRepository) MarkRead(ctx context.Context, id string) (*model.ContactMessage, error) {
	unread := string(model.ContactUnread)
	query, args, err := psql.Update(contactTable).
		Set("status", sq.Expr("CASE WHEN status = ? THEN ? ELSE status END", unread, string(model.ContactRead))).
		Set("updated_at", sq.Expr("CASE WHEN status = ? THEN NOW() ELSE updated_at END", unread)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(contactColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanContact(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

// UpdateStatus sets the status column and returns the updated row.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	query, args, err := psql.Update(contactTable).
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(contactColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanContact(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

// Delete removes the row permanently.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.pool, contactTable, id)
}

// Count returns the number of messages in the given status ("" or "all" for every message).
func (r *PgContactRepository) Count(ctx context.Context, status string) (int, error) {
	return count(ctx, r.pool, contactTable, contactPredicate(status))
}
