package handler

import (
	"net/http"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/service"
)

// ContactHandler handles contact form submission and the operator inbox.
type ContactHandler struct {
	intake         service.IntakeService
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given services.
func NewContactHandler(intake service.IntakeService, contactService service.ContactService) *ContactHandler {
	return &ContactHandler{intake: intake, contactService: contactService}
}

// Submit handles POST /api/contact.
// name, email, subject and message are required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.ContactSubmission
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.intake.SubmitContactMessage(r.Context(), req); err != nil {
		writeServiceError(w, r, err, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/contacts.
// Supports query params: status (all/unread/read/replied/archived), limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactListOptions{Status: r.URL.Query().Get("status")}
	opts.Limit, opts.Offset = pagination(r)

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, adminListResponse{Messages: messages})
}

// Open handles POST /api/admin/contacts/{id}/open: returns the message and
// marks it read if it was unread.
func (h *ContactHandler) Open(w http.ResponseWriter, r *http.Request) {
	msg, err := h.contactService.Open(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "open_failed")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

type updateStatusRequest struct {
	Status model.ContactStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/contacts/{id}/status.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := h.contactService.SetStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/admin/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contactService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
