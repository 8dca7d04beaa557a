package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/service"
	"github.com/folio/backend/pkg/auth"
)

func withOperator(ctx context.Context) context.Context {
	return auth.WithOperator(ctx, &auth.Operator{Email: "op@example.com", ExpiresAt: time.Now().Add(time.Hour)})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v (raw=%q)", err, rec.Body.String())
	}
	return body
}

// ---------------------------------------------------------------------------
// mockIntakeService
// ---------------------------------------------------------------------------

type mockIntakeService struct {
	submitAdviceFunc  func(ctx context.Context, sub service.AdviceSubmission) error
	submitContactFunc func(ctx context.Context, sub service.ContactSubmission) error
}

func (m *mockIntakeService) SubmitAdvice(ctx context.Context, sub service.AdviceSubmission) error {
	if m.submitAdviceFunc != nil {
		return m.submitAdviceFunc(ctx, sub)
	}
	return nil
}

func (m *mockIntakeService) SubmitContactMessage(ctx context.Context, sub service.ContactSubmission) error {
	if m.submitContactFunc != nil {
		return m.submitContactFunc(ctx, sub)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockAdviceService
// ---------------------------------------------------------------------------

type mockAdviceService struct {
	listFunc         func(ctx context.Context, opts model.AdviceListOptions) ([]*model.AdviceEntry, error)
	listApprovedFunc func(ctx context.Context) ([]*model.AdviceEntry, error)
	createFunc       func(ctx context.Context, e *model.AdviceEntry) error
	approveFunc      func(ctx context.Context, id string) (*model.AdviceEntry, error)
	rejectFunc       func(ctx context.Context, id string) (*model.AdviceEntry, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockAdviceService) List(ctx context.Context, opts model.AdviceListOptions) ([]*model.AdviceEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockAdviceService) ListApproved(ctx context.Context) ([]*model.AdviceEntry, error) {
	if m.listApprovedFunc != nil {
		return m.listApprovedFunc(ctx)
	}
	return nil, nil
}

func (m *mockAdviceService) Create(ctx context.Context, e *model.AdviceEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, e)
	}
	return nil
}

func (m *mockAdviceService) Approve(ctx context.Context, id string) (*model.AdviceEntry, error) {
	if m.approveFunc != nil {
		return m.approveFunc(ctx, id)
	}
	return &model.AdviceEntry{ID: id, Approved: true}, nil
}

func (m *mockAdviceService) Reject(ctx context.Context, id string) (*model.AdviceEntry, error) {
	if m.rejectFunc != nil {
		return m.rejectFunc(ctx, id)
	}
	return &model.AdviceEntry{ID: id}, nil
}

func (m *mockAdviceService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	listFunc      func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	openFunc      func(ctx context.Context, id string) (*model.ContactMessage, error)
	setStatusFunc func(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error)
	deleteFunc    func(ctx context.Context, id string) error
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactService) Open(ctx context.Context, id string) (*model.ContactMessage, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, id)
	}
	return &model.ContactMessage{ID: id, Status: model.ContactRead}, nil
}

func (m *mockContactService) SetStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, status)
	}
	return &model.ContactMessage{ID: id, Status: status}, nil
}

func (m *mockContactService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockProjectService / mockStoryService
// ---------------------------------------------------------------------------

type mockProjectService struct {
	listFunc        func(ctx context.Context) ([]*model.Project, error)
	getByIDFunc     func(ctx context.Context, id string) (*model.Project, error)
	createFunc      func(ctx context.Context, p *model.Project) error
	updateFunc      func(ctx context.Context, p *model.Project) error
	setImageURLFunc func(ctx context.Context, id, imageURL string) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockProjectService) List(ctx context.Context) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Project{ID: id}, nil
}

func (m *mockProjectService) Create(ctx context.Context, p *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectService) Update(ctx context.Context, p *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectService) SetImageURL(ctx context.Context, id, imageURL string) error {
	if m.setImageURLFunc != nil {
		return m.setImageURLFunc(ctx, id, imageURL)
	}
	return nil
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockStoryService struct {
	listFunc    func(ctx context.Context) ([]*model.StoryEntry, error)
	getByIDFunc func(ctx context.Context, id string) (*model.StoryEntry, error)
	createFunc  func(ctx context.Context, s *model.StoryEntry) error
	updateFunc  func(ctx context.Context, s *model.StoryEntry) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockStoryService) List(ctx context.Context) ([]*model.StoryEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockStoryService) GetByID(ctx context.Context, id string) (*model.StoryEntry, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.StoryEntry{ID: id}, nil
}

func (m *mockStoryService) Create(ctx context.Context, s *model.StoryEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}

func (m *mockStoryService) Update(ctx context.Context, s *model.StoryEntry) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, s)
	}
	return nil
}

func (m *mockStoryService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockSettingService / mockDashboardService / mockAuthService
// ---------------------------------------------------------------------------

type mockSettingService struct {
	publicFunc func(ctx context.Context) (map[string]string, error)
	saveFunc   func(ctx context.Context, values map[string]string) error
}

func (m *mockSettingService) Public(ctx context.Context) (map[string]string, error) {
	if m.publicFunc != nil {
		return m.publicFunc(ctx)
	}
	return map[string]string{}, nil
}

func (m *mockSettingService) Save(ctx context.Context, values map[string]string) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, values)
	}
	return nil
}

type mockDashboardService struct {
	statsFunc func(ctx context.Context) (*model.DashboardStats, error)
}

func (m *mockDashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &model.DashboardStats{}, nil
}

type mockAuthService struct {
	loginFunc func(ctx context.Context, email, password string) (*service.Session, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}
