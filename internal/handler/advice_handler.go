package handler

import (
	"net/http"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/service"
)

// AdviceHandler serves the advice museum: public submission and listing,
// plus the operator moderation endpoints.
type AdviceHandler struct {
	intake         service.IntakeService
	advice         service.AdviceService
	trustedProxies int
}

// NewAdviceHandler creates an AdviceHandler.
func NewAdviceHandler(intake service.IntakeService, advice service.AdviceService) *AdviceHandler {
	return &AdviceHandler{intake: intake, advice: advice, trustedProxies: defaultTrustedProxies}
}

// WithTrustedProxies sets how many X-Forwarded-For hops are trusted when
// deriving the submitter's quota source.
func (h *AdviceHandler) WithTrustedProxies(n int) *AdviceHandler {
	h.trustedProxies = max(n, 0)
	return h
}

type adviceListResponse struct {
	Advice []*model.AdviceEntry `json:"advice"`
}

func writeAdviceList(w http.ResponseWriter, entries []*model.AdviceEntry) {
	// Return [] not null for empty lists
	if entries == nil {
		entries = []*model.AdviceEntry{}
	}
	writeJSON(w, http.StatusOK, adviceListResponse{Advice: entries})
}

// Submit handles POST /api/advice.
func (h *AdviceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.AdviceSubmission
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Source = clientIP(r, h.trustedProxies)

	if err := h.intake.SubmitAdvice(r.Context(), req); err != nil {
		writeServiceError(w, r, err, "submit_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// PublicList handles GET /api/advice. Only approved entries are returned.
func (h *AdviceHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.advice.ListApproved(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	// Submitter emails are never public.
	for _, e := range entries {
		e.AuthorEmail = nil
	}
	writeAdviceList(w, entries)
}

// AdminList handles GET /api/admin/advice?status=pending|approved|all.
func (h *AdviceHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := model.AdviceListOptions{Filter: model.AdviceFilter(r.URL.Query().Get("status"))}
	opts.Limit, opts.Offset = pagination(r)

	entries, err := h.advice.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	writeAdviceList(w, entries)
}

type createAdviceRequest struct {
	Text       string `json:"advice"`
	AuthorName string `json:"author_name"`
	Approved   bool   `json:"is_approved"`
}

// Create handles POST /api/admin/advice.
func (h *AdviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAdviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry := &model.AdviceEntry{Text: req.Text, AuthorName: req.AuthorName, Approved: req.Approved}
	if err := h.advice.Create(r.Context(), entry); err != nil {
		writeServiceError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Approve handles POST /api/admin/advice/{id}/approve.
func (h *AdviceHandler) Approve(w http.ResponseWriter, r *http.Request) {
	entry, err := h.advice.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "approve_failed")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Reject handles POST /api/admin/advice/{id}/reject.
func (h *AdviceHandler) Reject(w http.ResponseWriter, r *http.Request) {
	entry, err := h.advice.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "reject_failed")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/admin/advice/{id}.
func (h *AdviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.advice.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
