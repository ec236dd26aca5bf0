// internal/app/features/goals/routes.go
package goals

import (
	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeGoalsList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleStudent))
		pr.Get("/new", h.ServeNewGoal)
		pr.Post("/", h.HandleCreateGoal)
		pr.Post("/{id}/status", h.HandleGoalStatus)
	})

	return r
}
