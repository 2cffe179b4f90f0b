package users

import "github.com/go-chi/chi/v5"

// Router creates a chi.Router for the authentication endpoints.
// These routes are the only unauthenticated API surface besides health checks.
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	return r
}
