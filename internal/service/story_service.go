package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
)

const storyKind = "story"

// StoryService manages the life-story timeline. List is public; the rest
// require an operator session.
type StoryService interface {
	List(ctx context.Context) ([]*model.StoryEntry, error)
	GetByID(ctx context.Context, id string) (*model.StoryEntry, error)
	Create(ctx context.Context, s *model.StoryEntry) error
	Update(ctx context.Context, s *model.StoryEntry) error
	Delete(ctx context.Context, id string) error
}

type storyServiceImpl struct {
	repo repository.StoryRepository
}

// NewStoryService は StoryService を生成する
func NewStoryService(repo repository.StoryRepository) StoryService {
	return &storyServiceImpl{repo: repo}
}

func (s *storyServiceImpl) List(ctx context.Context) ([]*model.StoryEntry, error) {
	stories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

func (s *storyServiceImpl) GetByID(ctx context.Context, id string) (*model.StoryEntry, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(storyKind, id, err)
	}
	return story, nil
}

func (s *storyServiceImpl) Create(ctx context.Context, story *model.StoryEntry) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	if err := prepareStory(story); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, story); err != nil {
		return &MutationError{Op: "create", Kind: storyKind, Err: err}
	}
	return nil
}

func (s *storyServiceImpl) Update(ctx context.Context, story *model.StoryEntry) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	if err := prepareStory(story); err != nil {
		return err
	}
	return mutationErr("update", storyKind, story.ID, s.repo.Update(ctx, story))
}

func (s *storyServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	return mutationErr("delete", storyKind, id, s.repo.Delete(ctx, id))
}

func prepareStory(story *model.StoryEntry) error {
	story.Title = strings.TrimSpace(story.Title)
	story.MilestoneType = strings.TrimSpace(story.MilestoneType)
	if story.MilestoneType == "" {
		story.MilestoneType = "childhood"
	}
	return validateStruct(story)
}
