package handler

import (
	"net/http"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/service"
)

// StoryHandler は life story タイムラインの HTTP ハンドラ
type StoryHandler struct {
	storyService service.StoryService
}

// NewStoryHandler は StoryHandler を生成する
func NewStoryHandler(storyService service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

type storyListResponse struct {
	Stories []*model.StoryEntry `json:"stories"`
}

// List は GET /api/stories を処理する
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	stories, err := h.storyService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if stories == nil {
		stories = []*model.StoryEntry{}
	}
	writeJSON(w, http.StatusOK, storyListResponse{Stories: stories})
}

// Get は GET /api/admin/stories/{id} を処理する
func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	story, err := h.storyService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, story)
}

// Create は POST /api/admin/stories を処理する
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var story model.StoryEntry
	if !decodeJSON(w, r, &story) {
		return
	}
	story.ID = ""
	if err := h.storyService.Create(r.Context(), &story); err != nil {
		writeServiceError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, &story)
}

// Update は PUT /api/admin/stories/{id} を処理する
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var story model.StoryEntry
	if !decodeJSON(w, r, &story) {
		return
	}
	story.ID = r.PathValue("id")
	if err := h.storyService.Update(r.Context(), &story); err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, &story)
}

// Delete は DELETE /api/admin/stories/{id} を処理する
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.storyService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
