package tasks

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/pkg/apierr"
	"github.com/taskhive/taskhive/pkg/audit"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/sanitize"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000
)

// Handler serves the /tasks endpoints. All of them require an authenticated
// identity in the request context.
type Handler struct {
	store    *Store
	reporter *apierr.Reporter
	logger   *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(store *Store, reporter *apierr.Reporter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, reporter: reporter, logger: logger}
}

// createRequest deliberately has no owner field: the owner of a new task
// always comes from the authenticated identity, so an owner id supplied in
// the payload has nothing to bind to.
type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

type listResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// identity returns the authenticated identity, or denies the request.
// A missing identity means the route was mounted without the auth gate;
// that wiring bug surfaces as a 401, never as an anonymous pass-through.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.reporter.Deny(w, r, apierr.ErrMissingCredential, nil)
		return auth.Identity{}, false
	}
	return ident, true
}

// ownedTask fetches the addressed task and enforces ownership. Order matters:
// existence is checked first (404), then ownership (403), so a permission
// error is never misreported as a missing resource. Denials record the
// caller, the task, and its actual owner server-side only.
func (h *Handler) ownedTask(w http.ResponseWriter, r *http.Request, ident auth.Identity) (*Task, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "taskId"), 10, 64)
	if err != nil {
		h.reporter.Deny(w, r, apierr.ErrNotFound, nil)
		return nil, false
	}

	task, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.reporter.Internal(w, r, err)
		return nil, false
	}
	if task == nil {
		h.reporter.Deny(w, r, apierr.ErrNotFound, nil)
		return nil, false
	}

	if task.UserID != ident.ID {
		h.reporter.Deny(w, r, apierr.ErrForbidden, &audit.Event{
			Actor:        strconv.FormatUint(ident.ID, 10),
			ResourceType: "task",
			ResourceID:   strconv.FormatUint(task.ID, 10),
			OwnerID:      strconv.FormatUint(task.UserID, 10),
		})
		return nil, false
	}

	return task, true
}

// List handles GET /tasks.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	tasks, err := h.store.ListByOwner(r.Context(), ident.ID)
	if err != nil {
		h.reporter.Internal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Tasks: tasks, Total: len(tasks)})
}

// Create handles POST /tasks.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.ErrBadRequest)
		return
	}
	req.Title = sanitize.String(req.Title)
	req.Description = sanitize.String(req.Description)

	if details := validateTask(req.Title, req.Description); len(details) > 0 {
		apierr.WriteValidation(w, details)
		return
	}

	task := &Task{
		UserID:      ident.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.store.Create(r.Context(), task); err != nil {
		h.reporter.Internal(w, r, err)
		return
	}

	h.logger.Info("task created", "taskId", task.ID, "userId", ident.ID)
	writeJSON(w, http.StatusCreated, task)
}

// Get handles GET /tasks/{taskId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}
	task, ok := h.ownedTask(w, r, ident)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Update handles PUT /tasks/{taskId}. Fields absent from the payload are
// left unchanged.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}
	task, ok := h.ownedTask(w, r, ident)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.ErrBadRequest)
		return
	}

	title := task.Title
	description := task.Description
	if req.Title != nil {
		title = sanitize.String(*req.Title)
	}
	if req.Description != nil {
		description = sanitize.String(*req.Description)
	}
	if details := validateTask(title, description); len(details) > 0 {
		apierr.WriteValidation(w, details)
		return
	}

	task.Title = title
	task.Description = description
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}

	if err := h.store.Update(r.Context(), task); err != nil {
		h.reporter.Internal(w, r, err)
		return
	}

	h.logger.Info("task updated", "taskId", task.ID, "userId", ident.ID)
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{taskId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}
	task, ok := h.ownedTask(w, r, ident)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), task.ID); err != nil {
		h.reporter.Internal(w, r, err)
		return
	}

	h.logger.Info("task deleted", "taskId", task.ID, "userId", ident.ID)
	w.WriteHeader(http.StatusNoContent)
}

func validateTask(title, description string) []apierr.FieldError {
	var details []apierr.FieldError

	if title == "" {
		details = append(details, apierr.FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > maxTitleLen {
		details = append(details, apierr.FieldError{Field: "title", Message: "title must be at most 255 characters"})
	}

	if len(description) > maxDescriptionLen {
		details = append(details, apierr.FieldError{Field: "description", Message: "description must be at most 1000 characters"})
	}

	return details
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
