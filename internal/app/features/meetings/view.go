// internal/app/features/meetings/view.go
package meetings

import (
	"html/template"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	"github.com/dalemusser/advisehub/internal/app/policy/meetingpolicy"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type viewData struct {
	viewdata.BaseVM
	Meeting   models.Meeting
	Feedback  template.HTML
	Overdue   bool
	Today     bool
	CanManage bool
	IsStudent bool
}

// ServeMeetingView handles GET /meetings/{id}.
func (h *Handler) ServeMeetingView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad meeting id", err, "That meeting link is not valid.", "/meetings")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "meeting view")
	defer cancel()

	m, err := h.Meetings.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "meetings: meeting lookup failed", err, "That meeting could not be found.", "/meetings")
		return
	}

	if !canViewMeeting(r, m) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "You do not have access to this meeting.", "/meetings")
		return
	}

	now := time.Now()
	data := viewData{
		BaseVM:  viewdata.NewBaseVM(r, "Meeting · "+m.StudentName, "/meetings"),
		Meeting: m,
		// AdvisorFeedback is sanitized before it is stored.
		Feedback:  template.HTML(m.AdvisorFeedback),
		Overdue:   meetingpolicy.IsOverdue(m, now),
		Today:     meetingpolicy.IsToday(m, now),
		CanManage: canManageMeeting(r, m),
		IsStudent: authz.IsStudent(r),
	}
	templates.Render(w, r, "meetings_view", data)
}
