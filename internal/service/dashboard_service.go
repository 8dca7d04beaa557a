package service

import (
	"context"
	"fmt"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardService aggregates the admin dashboard counters.
type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type dashboardServiceImpl struct {
	stories  repository.StoryRepository
	projects repository.ProjectRepository
	advice   repository.AdviceRepository
	contacts repository.ContactRepository
}

// NewDashboardService は DashboardService を生成する
func NewDashboardService(
	stories repository.StoryRepository,
	projects repository.ProjectRepository,
	advice repository.AdviceRepository,
	contacts repository.ContactRepository,
) DashboardService {
	return &dashboardServiceImpl{stories: stories, projects: projects, advice: advice, contacts: contacts}
}

// Stats runs the six counts concurrently. Any failure fails the call.
func (s *dashboardServiceImpl) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	var stats model.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.TotalStories, err = s.stories.Count(gctx); return })
	g.Go(func() (err error) { stats.TotalProjects, err = s.projects.Count(gctx); return })
	g.Go(func() (err error) {
		stats.PendingAdvice, err = s.advice.Count(gctx, model.AdviceFilterPending)
		return
	})
	g.Go(func() (err error) { stats.TotalAdvice, err = s.advice.Count(gctx, model.AdviceFilterAll); return })
	g.Go(func() (err error) {
		stats.UnreadContacts, err = s.contacts.Count(gctx, string(model.ContactUnread))
		return
	})
	g.Go(func() (err error) { stats.TotalContacts, err = s.contacts.Count(gctx, "all"); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
