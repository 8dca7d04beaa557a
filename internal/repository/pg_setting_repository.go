package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/folio/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingTable = "site_settings"

// PgSettingRepository は SettingRepository の PostgreSQL 実装
type PgSettingRepository struct {
	pool *pgxpool.Pool
}

// NewPgSettingRepository は PgSettingRepository を生成する
func NewPgSettingRepository(pool *pgxpool.Pool) *PgSettingRepository {
	return &PgSettingRepository{pool: pool}
}

var _ SettingRepository = (*PgSettingRepository)(nil)

func (r *PgSettingRepository) List(ctx context.Context) ([]*model.SiteSetting, error) {
	query, args, err := psql.Select("key", "value", "updated_at").From(settingTable).OrderBy("key").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*model.SiteSetting
	for rows.Next() {
		var s model.SiteSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

// Get returns the value for key or ErrNotFound.
func (r *PgSettingRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := psql.Select("value").From(settingTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", err
	}
	var value string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", mapNotFound(err)
	}
	return value, nil
}

// Upsert inserts or replaces the value for key.
func (r *PgSettingRepository) Upsert(ctx context.Context, key, value string) error {
	query, args, err := psql.Insert(settingTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, args...)
	return err
}
