package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
)

const projectKind = "project"

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	repo repository.ProjectRepository
}

// NewProjectService は ProjectServiceImpl を生成する
func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &ProjectServiceImpl{repo: repo}
}

// List はプロジェクト一覧を返す（認証不要）
func (s *ProjectServiceImpl) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetByID は ID でプロジェクトを取得する
func (s *ProjectServiceImpl) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if err := requireOperator(ctx); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(projectKind, id, err)
	}
	return p, nil
}

// Create はプロジェクトを作成する。status のデフォルトは active
func (s *ProjectServiceImpl) Create(ctx context.Context, project *model.Project) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	if err := prepareProject(project); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return &MutationError{Op: "create", Kind: projectKind, Err: err}
	}
	return nil
}

// Update はプロジェクトを保存する
func (s *ProjectServiceImpl) Update(ctx context.Context, project *model.Project) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	if err := prepareProject(project); err != nil {
		return err
	}
	return mutationErr("update", projectKind, project.ID, s.repo.Update(ctx, project))
}

// SetImageURL はカバー画像の URL を更新する（空文字で削除）
func (s *ProjectServiceImpl) SetImageURL(ctx context.Context, id, imageURL string) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	return mutationErr("set_image", projectKind, id, s.repo.UpdateImageURL(ctx, id, imageURL))
}

// Delete はプロジェクトを削除する
func (s *ProjectServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireOperator(ctx); err != nil {
		return err
	}
	return mutationErr("delete", projectKind, id, s.repo.Delete(ctx, id))
}

// prepareProject normalizes form input: trimmed fields, de-duplicated
// non-empty tags, default status and category.
func prepareProject(p *model.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	p.WebsiteURL = strings.TrimSpace(p.WebsiteURL)
	p.GitHubURL = strings.TrimSpace(p.GitHubURL)
	if p.Status == "" {
		p.Status = model.ProjectActive
	}
	if p.Category == "" {
		p.Category = "startup"
	}
	seen := make(map[string]bool, len(p.Tags))
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	p.Tags = tags
	return validateStruct(p)
}
