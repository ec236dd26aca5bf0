// internal/app/features/notes/routes.go
package notes

import (
	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleAdvisor, models.RoleAdmin, models.RoleSuperAdmin))

		pr.Get("/new", h.ServeNewNote)
		pr.Post("/", h.HandleCreateNote)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeNotesList)
		pr.Get("/{id}", h.ServeNoteView)
	})

	return r
}
