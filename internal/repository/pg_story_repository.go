package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/folio/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const storyTable = "life_story"

var storyColumns = []string{
	"id", "title", "content", "year", "milestone_type", "order_index", "is_featured", "created_at", "updated_at",
}

// PgStoryRepository は StoryRepository の PostgreSQL 実装
type PgStoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgStoryRepository は PgStoryRepository を生成する
func NewPgStoryRepository(pool *pgxpool.Pool) *PgStoryRepository {
	return &PgStoryRepository{pool: pool}
}

var _ StoryRepository = (*PgStoryRepository)(nil)

func scanStory(row pgx.Row) (*model.StoryEntry, error) {
	var s model.StoryEntry
	if err := row.Scan(&s.ID, &s.Title, &s.Content, &s.Year, &s.MilestoneType, &s.OrderIndex, &s.Featured, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// List は order_index 昇順でタイムラインを返す
func (r *PgStoryRepository) List(ctx context.Context) ([]*model.StoryEntry, error) {
	query, args, err := psql.Select(storyColumns...).From(storyTable).OrderBy("order_index ASC", "year ASC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*model.StoryEntry
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}

func (r *PgStoryRepository) GetByID(ctx context.Context, id string) (*model.StoryEntry, error) {
	query, args, err := psql.Select(storyColumns...).From(storyTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	s, err := scanStory(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return s, nil
}

func (r *PgStoryRepository) Create(ctx context.Context, s *model.StoryEntry) error {
	query, args, err := psql.Insert(storyTable).
		Columns("title", "content", "year", "milestone_type", "order_index", "is_featured").
		Values(s.Title, s.Content, s.Year, s.MilestoneType, s.OrderIndex, s.Featured).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update は全カラムを上書きする。対象がなければ ErrNotFound
func (r *PgStoryRepository) Update(ctx context.Context, s *model.StoryEntry) error {
	query, args, err := psql.Update(storyTable).
		Set("title", s.Title).
		Set("content", s.Content).
		Set("year", s.Year).
		Set("milestone_type", s.MilestoneType).
		Set("order_index", s.OrderIndex).
		Set("is_featured", s.Featured).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": s.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return mapNotFound(r.pool.QueryRow(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt))
}

func (r *PgStoryRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.pool, storyTable, id)
}

func (r *PgStoryRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, storyTable, nil)
}
