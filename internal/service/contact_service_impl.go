package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
)

const contactKind = "contact"

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// List returns contact messages according to the given filter/pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	status, ok := model.ParseContactFilter(opts.Status)
	if !ok {
		return nil, invalidField("status", "invalid")
	}
	opts.Status = status
	opts.Limit, opts.Offset = page(opts.Limit, opts.Offset)

	messages, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return messages, nil
}

func (s *contactServiceImpl) Open(ctx context.Context, id string) (*model.ContactMessage, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	msg, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, mutationErr("open", contactKind, id, err)
	}
	return msg, nil
}

// SetStatus changes the status of a contact message.
func (s *contactServiceImpl) SetStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invalidField("status", "invalid")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mutationErr("set_status", contactKind, id, err)
	}
	if !model.CanTransition(current.Status, status) {
		return nil, invalidField("status", "transition_not_allowed")
	}
	msg, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, mutationErr("set_status", contactKind, id, err)
	}
	slog.InfoContext(ctx, "contact status changed", "contact_id", id, "from", current.Status, "to", status)
	return msg, nil
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mutationErr("delete", contactKind, id, err)
	}
	slog.InfoContext(ctx, "contact deleted", "contact_id", id)
	return nil
}
