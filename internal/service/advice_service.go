package service

import (
	"context"

	"github.com/folio/backend/internal/model"
)

// AdviceService is the moderation console for advice entries.
//
// States: pending (approved=false) and approved. Approve and Reject move
// between them; Delete removes the entry from either state. Every method
// except ListApproved requires an operator session in ctx.
type AdviceService interface {
	// List returns a snapshot ordered by submission time, newest first.
	List(ctx context.Context, opts model.AdviceListOptions) ([]*model.AdviceEntry, error)
	// ListApproved is the public read path. It never returns pending entries.
	ListApproved(ctx context.Context) ([]*model.AdviceEntry, error)
	// Create inserts an operator-authored entry, optionally pre-approved.
	Create(ctx context.Context, entry *model.AdviceEntry) error
	Approve(ctx context.Context, id string) (*model.AdviceEntry, error)
	Reject(ctx context.Context, id string) (*model.AdviceEntry, error)
	Delete(ctx context.Context, id string) error
}
