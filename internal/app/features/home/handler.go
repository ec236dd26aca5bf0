// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type homeData struct {
	viewdata.BaseVM
}

// ServeHome handles GET /. Signed-in users go straight to their
// dashboard; everyone else sees the landing page.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := homeData{
		BaseVM: viewdata.NewBaseVM(r, "Welcome", "/"),
	}
	templates.Render(w, r, "home", data)
}
