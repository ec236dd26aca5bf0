// internal/app/features/meetings/routes.go
package meetings

import (
	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Advisor/admin views
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleAdvisor, models.RoleAdmin, models.RoleSuperAdmin))

		pr.Get("/", h.ServeMeetingsList)
		pr.Get("/log", h.ServeLogForm)
		pr.Post("/log", h.HandleLogPost)
		pr.Post("/{id}/attendance", h.HandleMarkAttendance)
		pr.Post("/{id}/feedback", h.HandleFeedback)
		pr.Post("/{id}/cancel", h.HandleCancel)
	})

	// Student views
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleStudent))

		pr.Get("/my", h.ServeMyMeetings)
		pr.Get("/my/log", h.ServeSelfLogForm)
		pr.Post("/my/log", h.HandleSelfLogPost)
		pr.Post("/{id}/self-report", h.HandleSelfReport)
	})

	// Shared, record-level access enforced in the handlers
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/student/{id}", h.ServeStudentMeetings)
		pr.Get("/{id}", h.ServeMeetingView)
	})

	return r
}
