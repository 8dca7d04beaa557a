package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
)

const adviceKind = "advice"

type adviceServiceImpl struct {
	repo repository.AdviceRepository
	now  func() time.Time
}

// NewAdviceService creates an AdviceService backed by the given repository.
func NewAdviceService(repo repository.AdviceRepository) AdviceService {
	return &adviceServiceImpl{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *adviceServiceImpl) List(ctx context.Context, opts model.AdviceListOptions) ([]*model.AdviceEntry, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	filter, ok := model.ParseAdviceFilter(string(opts.Filter))
	if !ok {
		return nil, invalidField("status", "invalid")
	}
	opts.Filter = filter
	opts.Limit, opts.Offset = page(opts.Limit, opts.Offset)

	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list advice: %w", err)
	}
	return entries, nil
}

func (s *adviceServiceImpl) ListApproved(ctx context.Context) ([]*model.AdviceEntry, error) {
	entries, err := s.repo.List(ctx, model.AdviceListOptions{Filter: model.AdviceFilterApproved})
	if err != nil {
		return nil, fmt.Errorf("list approved advice: %w", err)
	}
	// The store filter already guarantees this; the public path must never leak a pending entry.
	approved := entries[:0]
	for _, e := range entries {
		if e.Approved {
			approved = append(approved, e)
		}
	}
	return approved, nil
}

func (s *adviceServiceImpl) Create(ctx context.Context, entry *model.AdviceEntry) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	entry.Text = plainText(entry.Text)
	entry.AuthorName = plainText(entry.AuthorName)
	if entry.Text == "" {
		return invalidField("advice", "required")
	}
	if entry.AuthorName == "" {
		entry.AuthorName = model.AnonymousAuthor
	}
	now := s.now()
	entry.SubmittedAt = now
	entry.ApprovedAt = nil
	if entry.Approved {
		entry.ApprovedAt = &now
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return &MutationError{Op: "create", Kind: adviceKind, Err: err}
	}
	return nil
}

func (s *adviceServiceImpl) Approve(ctx context.Context, id string) (*model.AdviceEntry, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	entry, err := s.repo.Approve(ctx, id, s.now())
	if err != nil {
		return nil, mutationErr("approve", adviceKind, id, err)
	}
	slog.InfoContext(ctx, "advice approved", "advice_id", id)
	return entry, nil
}

func (s *adviceServiceImpl) Reject(ctx context.Context, id string) (*model.AdviceEntry, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	entry, err := s.repo.Reject(ctx, id)
	if err != nil {
		return nil, mutationErr("reject", adviceKind, id, err)
	}
	slog.InfoContext(ctx, "advice unpublished", "advice_id", id)
	return entry, nil
}

func (s *adviceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mutationErr("delete", adviceKind, id, err)
	}
	slog.InfoContext(ctx, "advice deleted", "advice_id", id)
	return nil
}
