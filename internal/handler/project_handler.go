package handler

import (
	"net/http"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/service"
)

// ProjectHandler はプロジェクト CRUD の HTTP ハンドラ
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectListResponse struct {
	Projects []*model.Project `json:"projects"`
}

// List は GET /api/projects を処理する（認証不要）
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, projectListResponse{Projects: projects})
}

// Get は GET /api/admin/projects/{id} を処理する
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Create は POST /api/admin/projects を処理する
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if !decodeJSON(w, r, &project) {
		return
	}
	project.ID = ""
	// image_url はアップロード API 経由でのみ設定する
	project.ImageURL = ""
	if err := h.projectService.Create(r.Context(), &project); err != nil {
		writeServiceError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, &project)
}

// Update は PUT /api/admin/projects/{id} を処理する
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if !decodeJSON(w, r, &project) {
		return
	}
	project.ID = r.PathValue("id")
	if err := h.projectService.Update(r.Context(), &project); err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, &project)
}

// Delete は DELETE /api/admin/projects/{id} を処理する
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
