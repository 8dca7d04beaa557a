package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/folio/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectTable = "projects"

var projectColumns = []string{
	"id", "name", "description", "COALESCE(long_description, '')", "status", "category", "year_started",
	"tags", "COALESCE(website_url, '')", "COALESCE(github_url, '')", "COALESCE(image_url, '')",
	"featured", "order_index", "created_at", "updated_at",
}

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

var _ ProjectRepository = (*PgProjectRepository)(nil)

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.LongDescription, &p.Status, &p.Category, &p.YearStarted,
		&p.Tags, &p.WebsiteURL, &p.GitHubURL, &p.ImageURL,
		&p.Featured, &p.OrderIndex, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// List は order_index 昇順でプロジェクト一覧を返す
func (r *PgProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	query, args, err := psql.Select(projectColumns...).From(projectTable).OrderBy("order_index ASC", "created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetByID は ID でプロジェクトを取得する
func (r *PgProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	query, args, err := psql.Select(projectColumns...).From(projectTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanProject(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// Create はプロジェクトを作成し、id と作成日時を設定する
func (r *PgProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query, args, err := psql.Insert(projectTable).
		Columns("name", "description", "long_description", "status", "category", "year_started",
			"tags", "website_url", "github_url", "featured", "order_index").
		Values(p.Name, p.Description, nullIfEmpty(p.LongDescription), p.Status, p.Category, p.YearStarted,
			p.Tags, nullIfEmpty(p.WebsiteURL), nullIfEmpty(p.GitHubURL), p.Featured, p.OrderIndex).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update は編集可能なカラムを上書きする。image_url は UpdateImageURL でのみ変更する
func (r *PgProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query, args, err := psql.Update(projectTable).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("long_description", nullIfEmpty(p.LongDescription)).
		Set("status", p.Status).
		Set("category", p.Category).
		Set("year_started", p.YearStarted).
		Set("tags", p.Tags).
		Set("website_url", nullIfEmpty(p.WebsiteURL)).
		Set("github_url", nullIfEmpty(p.GitHubURL)).
		Set("featured", p.Featured).
		Set("order_index", p.OrderIndex).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING COALESCE(image_url, ''), created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	return mapNotFound(r.pool.QueryRow(ctx, query, args...).Scan(&p.ImageURL, &p.CreatedAt, &p.UpdatedAt))
}

// UpdateImageURL はカバー画像の URL を更新する（空文字で削除）
func (r *PgProjectRepository) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	query, args, err := psql.Update(projectTable).
		Set("image_url", nullIfEmpty(imageURL)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapNotFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.pool, projectTable, id)
}

func (r *PgProjectRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, projectTable, nil)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
