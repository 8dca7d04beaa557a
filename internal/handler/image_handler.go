package handler

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/folio/backend/internal/service"
	"github.com/folio/backend/internal/storage"
	"github.com/gabriel-vasile/mimetype"
)

const maxImageSize = 2 << 20 // 2 MB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageHandler はプロジェクトのカバー画像のアップロード・削除を処理する
type ImageHandler struct {
	storage        storage.Storage
	projectService service.ProjectService
}

// NewImageHandler は ImageHandler を生成する
func NewImageHandler(store storage.Storage, ps service.ProjectService) *ImageHandler {
	return &ImageHandler{storage: store, projectService: ps}
}

// Upload は POST /api/admin/projects/{id}/image を処理する（multipart フィールド "image"）
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	project, err := h.projectService.GetByID(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+64<<10)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil || len(data) > maxImageSize {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	// The declared Content-Type is not trusted; sniff the bytes.
	ct := mimetype.Detect(data).String()
	ext, ok := allowedContentTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}

	b := make([]byte, 16)
	_, _ = rand.Read(b)
	key := path.Join("projects", projectID, hex.EncodeToString(b)+ext)
	imageURL, err := h.storage.Save(r.Context(), key, bytes.NewReader(data), ct)
	if err != nil {
		slog.ErrorContext(r.Context(), "image upload failed", "error", err, "project_id", projectID)
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	if err := h.projectService.SetImageURL(r.Context(), projectID, imageURL); err != nil {
		// 新しい画像は参照されないので削除する
		_ = h.storage.Delete(r.Context(), key)
		writeServiceError(w, r, err, "update_failed")
		return
	}

	// 既存画像を削除
	h.removeStored(r, project.ImageURL)

	writeJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

// Delete は DELETE /api/admin/projects/{id}/image を処理する
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	project, err := h.projectService.GetByID(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}

	if err := h.projectService.SetImageURL(r.Context(), projectID, ""); err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	h.removeStored(r, project.ImageURL)

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// removeStored deletes a previously uploaded image. External URLs are left alone.
func (h *ImageHandler) removeStored(r *http.Request, imageURL string) {
	key, ok := h.storage.KeyFromURL(imageURL)
	if !ok {
		return
	}
	if err := h.storage.Delete(r.Context(), key); err != nil {
		slog.WarnContext(r.Context(), "old image delete failed", "error", err, "key", key)
	}
}
