package tasks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router creates a chi.Router for the task endpoints. The auth gate is a
// required parameter rather than something callers remember to mount: a nil
// gate panics at startup, so no task route can exist without it.
func Router(h *Handler, gate func(http.Handler) http.Handler) chi.Router {
	if gate == nil {
		panic("tasks: Router requires the auth gate middleware")
	}

	r := chi.NewRouter()
	r.Use(gate)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{taskId}", h.Get)
	r.Put("/{taskId}", h.Update)
	r.Delete("/{taskId}", h.Delete)

	return r
}
