package apierr

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/audit"
)

// Reporter maps internal failures to responses and decides what gets logged.
// Routine denials (missing header, expired token, missing resource) are not
// logged; tampering, dangling identities, and ownership violations are logged
// as warnings and, when a store is configured, persisted as audit events.
type Reporter struct {
	logger *slog.Logger
	audit  *audit.Store
}

// NewReporter creates a Reporter. The audit store may be nil, in which case
// denials are only logged.
func NewReporter(logger *slog.Logger, auditStore *audit.Store) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger, audit: auditStore}
}

// loggedKinds warrant a server-side warning. Routine noise (missing header,
// expired token, missing resource) is deliberately excluded.
var loggedKinds = map[string]bool{
	ErrInvalidToken.Kind:       true,
	ErrIdentityNotFound.Kind:   true,
	ErrForbidden.Kind:          true,
	ErrInvalidCredentials.Kind: true,
}

// auditedKinds additionally get a persisted audit trail entry: they indicate
// either token tampering or an attempted cross-owner access.
var auditedKinds = map[string]bool{
	ErrInvalidToken.Kind:     true,
	ErrIdentityNotFound.Kind: true,
	ErrForbidden.Kind:        true,
}

// Deny writes the error response for e and applies the logging policy.
// ev carries server-side detail (actor, resource, actual owner) for audited
// kinds; pass nil when there is nothing beyond the request itself to record.
// Nothing from ev ever reaches the response body.
func (rp *Reporter) Deny(w http.ResponseWriter, r *http.Request, e *Error, ev *audit.Event) {
	if loggedKinds[e.Kind] {
		requestID := middleware.GetReqID(r.Context())

		attrs := []any{
			"kind", e.Kind,
			"status", e.Status,
			"method", r.Method,
			"path", r.URL.Path,
		}
		if requestID != "" {
			attrs = append(attrs, "requestId", requestID)
		}
		if ev != nil {
			if ev.Actor != "" {
				attrs = append(attrs, "actor", ev.Actor)
			}
			if ev.ResourceID != "" {
				attrs = append(attrs, "resourceType", ev.ResourceType, "resourceId", ev.ResourceID)
			}
			if ev.OwnerID != "" {
				attrs = append(attrs, "ownerId", ev.OwnerID)
			}
		}
		rp.logger.Warn("request denied", attrs...)

		if rp.audit != nil && auditedKinds[e.Kind] {
			if ev == nil {
				ev = &audit.Event{}
			}
			ev.ID = uuid.New().String()
			ev.Kind = e.Kind
			ev.StatusCode = e.Status
			ev.Method = r.Method
			ev.Path = r.URL.Path
			ev.RequestID = requestID
			ev.CreatedAt = time.Now()

			// Best-effort write: don't fail the request if audit write fails.
			if err := rp.audit.Append(ev); err != nil {
				rp.logger.Error("failed to write audit event", "error", err, "requestId", requestID)
			}
		}
	}

	Write(w, e)
}

// Internal logs an unexpected error and writes the generic 500 response.
// The underlying error text never reaches the caller.
func (rp *Reporter) Internal(w http.ResponseWriter, r *http.Request, err error) {
	rp.logger.Error("internal error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"requestId", middleware.GetReqID(r.Context()))
	Write(w, ErrInternal)
}
