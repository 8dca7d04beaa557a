package service

import (
	"context"

	"github.com/folio/backend/internal/model"
)

// ProjectService はプロジェクトに関するビジネスロジックのインターフェース
// List は公開、それ以外はオペレーターのセッションが必要
type ProjectService interface {
	List(ctx context.Context) ([]*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	SetImageURL(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
}
