package service

import (
	"context"

	"github.com/folio/backend/internal/model"
)

// ContactService is the moderation console for contact messages.
// All methods require an operator session in ctx.
type ContactService interface {
	// List returns contact messages according to the given options, newest first.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)

	// Open is read-and-mark: an unread message becomes read as part of
	// fetching it. Opening it again leaves the status alone.
	Open(ctx context.Context, id string) (*model.ContactMessage, error)

	// SetStatus moves a message to status, subject to model.CanTransition.
	SetStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error)

	Delete(ctx context.Context, id string) error
}
