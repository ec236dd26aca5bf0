// internal/app/features/webhooks/routes.go
package webhooks

import "github.com/go-chi/chi/v5"

// Routes are mounted outside the session/CSRF middleware; webhook
// authenticity comes from the payload signature, not cookies.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.HandleFunc("/calendly", h.HandleCalendly)
	return r
}
