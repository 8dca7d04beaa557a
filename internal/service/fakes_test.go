package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/pkg/auth"
)

// operatorCtx returns a context carrying a verified operator session.
func operatorCtx() context.Context {
	return auth.WithOperator(context.Background(), &auth.Operator{
		Email:     "operator@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

// ---------------------------------------------------------------------------
// memAdviceRepository: in-memory AdviceRepository with store semantics
// ---------------------------------------------------------------------------

type memAdviceRepository struct {
	mu      sync.Mutex
	seq     int
	entries map[string]*model.AdviceEntry
	failErr error
}

func newMemAdviceRepository() *memAdviceRepository {
	return &memAdviceRepository{entries: map[string]*model.AdviceEntry{}}
}

func (m *memAdviceRepository) Create(_ context.Context, e *model.AdviceEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.seq++
	e.ID = "adv-" + strconv.Itoa(m.seq)
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *memAdviceRepository) List(_ context.Context, opts model.AdviceListOptions) ([]*model.AdviceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*model.AdviceEntry
	for _, e := range m.entries {
		switch opts.Filter {
		case model.AdviceFilterPending:
			if e.Approved {
				continue
			}
		case model.AdviceFilterApproved:
			if !e.Approved {
				continue
			}
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (m *memAdviceRepository) GetByID(_ context.Context, id string) (*model.AdviceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memAdviceRepository) Approve(_ context.Context, id string, at time.Time) (*model.AdviceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.Approved = true
	if e.ApprovedAt == nil {
		e.ApprovedAt = &at
	}
	cp := *e
	return &cp, nil
}

func (m *memAdviceRepository) Reject(_ context.Context, id string) (*model.AdviceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.Approved = false
	e.ApprovedAt = nil
	cp := *e
	return &cp, nil
}

func (m *memAdviceRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memAdviceRepository) Count(ctx context.Context, filter model.AdviceFilter) (int, error) {
	list, err := m.List(ctx, model.AdviceListOptions{Filter: filter})
	return len(list), err
}

// ---------------------------------------------------------------------------
// memContactRepository: in-memory ContactRepository
// ---------------------------------------------------------------------------

type memContactRepository struct {
	mu       sync.Mutex
	seq      int
	messages map[string]*model.ContactMessage
	failErr  error
}

func newMemContactRepository() *memContactRepository {
	return &memContactRepository{messages: map[string]*model.ContactMessage{}}
}

func (m *memContactRepository) Save(_ context.Context, msg *model.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.seq++
	msg.ID = "msg-" + strconv.Itoa(m.seq)
	cp := *msg
	m.messages[msg.ID] = &cp
	return nil
}

func (m *memContactRepository) List(_ context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*model.ContactMessage
	for _, msg := range m.messages {
		if opts.Status != "" && opts.Status != "all" && string(msg.Status) != opts.Status {
			continue
		}
		cp := *msg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memContactRepository) GetByID(_ context.Context, id string) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	msg, ok := m.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *memContactRepository) MarkRead(_ context.Context, id string) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	msg, ok := m.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if msg.Status == model.ContactUnread {
		msg.Status = model.ContactRead
		msg.UpdatedAt = time.Now()
	}
	cp := *msg
	return &cp, nil
}

func (m *memContactRepository) UpdateStatus(_ context.Context, id string, status model.ContactStatus) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	msg, ok := m.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	msg.Status = status
	msg.UpdatedAt = time.Now()
	cp := *msg
	return &cp, nil
}

func (m *memContactRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.messages[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

func (m *memContactRepository) Count(ctx context.Context, status string) (int, error) {
	list, err := m.List(ctx, model.ContactListOptions{Status: status})
	return len(list), err
}

// ---------------------------------------------------------------------------
// mockSettingRepository
// ---------------------------------------------------------------------------

type mockSettingRepository struct {
	values    map[string]string
	getErr    error
	upsertErr error
	upserted  map[string]string
}

func (m *mockSettingRepository) List(_ context.Context) ([]*model.SiteSetting, error) {
	out := make([]*model.SiteSetting, 0, len(m.values))
	for k, v := range m.values {
		out = append(out, &model.SiteSetting{Key: k, Value: v})
	}
	return out, nil
}

func (m *mockSettingRepository) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (m *mockSettingRepository) Upsert(_ context.Context, key, value string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.upserted == nil {
		m.upserted = map[string]string{}
	}
	m.upserted[key] = value
	return nil
}

// ---------------------------------------------------------------------------
// mockStoryRepository / mockProjectRepository
// ---------------------------------------------------------------------------

type mockStoryRepository struct {
	listFunc    func(ctx context.Context) ([]*model.StoryEntry, error)
	getByIDFunc func(ctx context.Context, id string) (*model.StoryEntry, error)
	createFunc  func(ctx context.Context, s *model.StoryEntry) error
	updateFunc  func(ctx context.Context, s *model.StoryEntry) error
	deleteFunc  func(ctx context.Context, id string) error
	countFunc   func(ctx context.Context) (int, error)
}

func (m *mockStoryRepository) List(ctx context.Context) ([]*model.StoryEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockStoryRepository) GetByID(ctx context.Context, id string) (*model.StoryEntry, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStoryRepository) Create(ctx context.Context, s *model.StoryEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}

func (m *mockStoryRepository) Update(ctx context.Context, s *model.StoryEntry) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, s)
	}
	return nil
}

func (m *mockStoryRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockStoryRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockProjectRepository struct {
	listFunc           func(ctx context.Context) ([]*model.Project, error)
	getByIDFunc        func(ctx context.Context, id string) (*model.Project, error)
	createFunc         func(ctx context.Context, p *model.Project) error
	updateFunc         func(ctx context.Context, p *model.Project) error
	updateImageURLFunc func(ctx context.Context, id, imageURL string) error
	deleteFunc         func(ctx context.Context, id string) error
	countFunc          func(ctx context.Context) (int, error)
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepository) Create(ctx context.Context, p *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, p *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectRepository) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	if m.updateImageURLFunc != nil {
		return m.updateImageURLFunc(ctx, id, imageURL)
	}
	return nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

// stubCounter is a quota.Counter with a fixed answer.
type stubCounter struct {
	allow    bool
	err      error
	calls    int
	limit    int
	releases int
}

func (c *stubCounter) Allow(_ context.Context, _ string, limit int, _ time.Time) (bool, error) {
	c.calls++
	c.limit = limit
	return c.allow, c.err
}

func (c *stubCounter) Release(_ context.Context, _ string, _ time.Time) error {
	c.releases++
	return nil
}
