package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
)

// SettingService reads and writes site_settings.
type SettingService interface {
	// Public returns every setting as a key/value map. No auth required.
	Public(ctx context.Context) (map[string]string, error)
	// Save upserts the given keys. Unknown keys are rejected before any write.
	Save(ctx context.Context, values map[string]string) error
}

type settingServiceImpl struct {
	repo repository.SettingRepository
}

// NewSettingService は SettingService を生成する
func NewSettingService(repo repository.SettingRepository) SettingService {
	return &settingServiceImpl{repo: repo}
}

func (s *settingServiceImpl) Public(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

func (s *settingServiceImpl) Save(ctx context.Context, values map[string]string) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	fields := map[string]string{}
	for k, v := range values {
		if !model.KnownSettings[k] {
			fields[k] = "unknown_setting"
			continue
		}
		if k == model.SettingMaxAdvicePerDay {
			if n, err := strconv.Atoi(v); err != nil || n < 0 {
				fields[k] = "invalid"
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	// Each key is its own upsert; a failure leaves earlier keys saved.
	for k, v := range values {
		if err := s.repo.Upsert(ctx, k, v); err != nil {
			return &MutationError{Op: "save", Kind: "setting", ID: k, Err: err}
		}
	}
	return nil
}
