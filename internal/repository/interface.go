package repository

import (
	"context"
	"time"

	"github.com/folio/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// AdviceRepository はアドバイス永続化のインターフェース
type AdviceRepository interface {
	Create(ctx context.Context, entry *model.AdviceEntry) error
	List(ctx context.Context, opts model.AdviceListOptions) ([]*model.AdviceEntry, error)
	GetByID(ctx context.Context, id string) (*model.AdviceEntry, error)
	// Approve marks the entry approved. An existing approved_at is kept.
	Approve(ctx context.Context, id string, at time.Time) (*model.AdviceEntry, error)
	// Reject returns the entry to pending and clears approved_at.
	Reject(ctx context.Context, id string) (*model.AdviceEntry, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter model.AdviceFilter) (int, error)
}

// StoryRepository は life_story の永続化インターフェース
type StoryRepository interface {
	List(ctx context.Context) ([]*model.StoryEntry, error)
	GetByID(ctx context.Context, id string) (*model.StoryEntry, error)
	Create(ctx context.Context, s *model.StoryEntry) error
	Update(ctx context.Context, s *model.StoryEntry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ProjectRepository は projects の永続化インターフェース
type ProjectRepository interface {
	List(ctx context.Context) ([]*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	UpdateImageURL(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SettingRepository は site_settings の永続化インターフェース
type SettingRepository interface {
	List(ctx context.Context) ([]*model.SiteSetting, error)
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
}
