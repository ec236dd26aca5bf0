// internal/app/features/reflections/routes.go
package reflections

import (
	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeReflectionsList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleStudent))
		pr.Get("/new", h.ServeNewReflection)
		pr.Post("/", h.HandleCreateReflection)
	})

	return r
}
