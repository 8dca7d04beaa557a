package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/quota"
	"github.com/folio/backend/internal/repository"
)

// AdviceSubmission is the public advice form.
type AdviceSubmission struct {
	Text        string `json:"advice" validate:"required,max=2000"`
	AuthorName  string `json:"author_name" validate:"max=100"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email,max=255"`
	// Source identifies the submitter for the daily quota (client IP).
	Source string `json:"-" validate:"-"`
}

// ContactSubmission is the public contact form.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// IntakeService accepts untrusted public submissions. It is append-only:
// nothing is read back or returned to the submitter.
type IntakeService interface {
	SubmitAdvice(ctx context.Context, sub AdviceSubmission) error
	SubmitContactMessage(ctx context.Context, sub ContactSubmission) error
}

type intakeServiceImpl struct {
	advice   repository.AdviceRepository
	contacts repository.ContactRepository
	settings repository.SettingRepository
	counter  quota.Counter
	now      func() time.Time
}

// NewIntakeService creates an IntakeService. counter may be nil to disable
// the daily advice quota.
func NewIntakeService(
	advice repository.AdviceRepository,
	contacts repository.ContactRepository,
	settings repository.SettingRepository,
	counter quota.Counter,
) IntakeService {
	return &intakeServiceImpl{
		advice:   advice,
		contacts: contacts,
		settings: settings,
		counter:  counter,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SubmitAdvice validates and stores a pending advice entry.
func (s *intakeServiceImpl) SubmitAdvice(ctx context.Context, sub AdviceSubmission) error {
	sub.Text = plainText(sub.Text)
	sub.AuthorName = plainText(sub.AuthorName)
	sub.AuthorEmail = plainText(sub.AuthorEmail)
	if err := validateStruct(sub); err != nil {
		return err
	}

	if !s.museumEnabled(ctx) {
		return ErrIntakeDisabled
	}
	now := s.now()
	counted, err := s.checkQuota(ctx, sub.Source, now)
	if err != nil {
		return err
	}

	entry := &model.AdviceEntry{
		Text:        sub.Text,
		AuthorName:  sub.AuthorName,
		SubmittedAt: now,
	}
	if entry.AuthorName == "" {
		entry.AuthorName = model.AnonymousAuthor
	}
	if sub.AuthorEmail != "" {
		email := sub.AuthorEmail
		entry.AuthorEmail = &email
	}

	if err := s.advice.Create(ctx, entry); err != nil {
		if counted {
			// 保存されなかった投稿は日次の上限に数えない
			if rerr := s.counter.Release(ctx, sub.Source, now); rerr != nil {
				slog.WarnContext(ctx, "advice quota release failed", "error", rerr)
			}
		}
		return &SubmissionError{Err: err}
	}
	slog.InfoContext(ctx, "advice submitted", "advice_id", entry.ID)
	return nil
}

// SubmitContactMessage validates and stores an unread contact message.
func (s *intakeServiceImpl) SubmitContactMessage(ctx context.Context, sub ContactSubmission) error {
	sub.Name = plainText(sub.Name)
	sub.Email = plainText(sub.Email)
	sub.Subject = plainText(sub.Subject)
	sub.Message = plainText(sub.Message)
	if err := validateStruct(sub); err != nil {
		return err
	}

	now := s.now()
	msg := &model.ContactMessage{
		Name:      sub.Name,
		Email:     sub.Email,
		Subject:   sub.Subject,
		Message:   sub.Message,
		Status:    model.ContactUnread,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contacts.Save(ctx, msg); err != nil {
		return &SubmissionError{Err: err}
	}
	slog.InfoContext(ctx, "contact message submitted", "contact_id", msg.ID)
	return nil
}

// museumEnabled reads enable_advice_museum. Unset or unreadable means enabled.
func (s *intakeServiceImpl) museumEnabled(ctx context.Context) bool {
	v, err := s.settings.Get(ctx, model.SettingEnableAdviceMuseum)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.WarnContext(ctx, "read advice museum flag failed", "error", err)
		}
		return true
	}
	return v != "false"
}

// checkQuota consumes one submission from source's daily allowance and
// reports whether an attempt was recorded. A limit of 0 disables the quota.
// Counter failures fail open.
func (s *intakeServiceImpl) checkQuota(ctx context.Context, source string, now time.Time) (bool, error) {
	if s.counter == nil || source == "" {
		return false, nil
	}
	limit := s.dailyLimit(ctx)
	if limit <= 0 {
		return false, nil
	}
	ok, err := s.counter.Allow(ctx, source, limit, now)
	if err != nil {
		slog.WarnContext(ctx, "advice quota check failed", "error", err)
		return false, nil
	}
	if !ok {
		return true, ErrQuotaExceeded
	}
	return true, nil
}

func (s *intakeServiceImpl) dailyLimit(ctx context.Context) int {
	v, err := s.settings.Get(ctx, model.SettingMaxAdvicePerDay)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.WarnContext(ctx, "read max_advice_per_day failed", "error", err)
		}
		return model.DefaultMaxAdvicePerDay
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return model.DefaultMaxAdvicePerDay
	}
	return n
}
