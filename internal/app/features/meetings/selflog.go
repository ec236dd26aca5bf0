// internal/app/features/meetings/selflog.go
package meetings

import (
	"net/http"
	"time"

	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type selfLogFormData struct {
	viewdata.BaseVM
	Error string
	Date  string
}

// ServeSelfLogForm handles GET /meetings/my/log: a student recording a
// meeting their advisor has not logged.
func (h *Handler) ServeSelfLogForm(w http.ResponseWriter, r *http.Request) {
	data := selfLogFormData{
		BaseVM: viewdata.NewBaseVM(r, "Log a Meeting", "/meetings/my"),
		Date:   time.Now().Format("2006-01-02"),
	}
	templates.Render(w, r, "meetings_self_log", data)
}

// HandleSelfLogPost handles POST /meetings/my/log. The record is
// created pending-review with the student's self-report attached; it
// stays in the advisor's needs-attention list until confirmed.
func (h *Handler) HandleSelfLogPost(w http.ResponseWriter, r *http.Request) {
	_, studentName, studentID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad self-log form", err, "Could not read the meeting form.", "/meetings/my")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", r.FormValue("date"), time.Local)
	if err != nil {
		data := selfLogFormData{
			BaseVM: viewdata.NewBaseVM(r, "Log a Meeting", "/meetings/my"),
			Error:  "Enter a valid meeting date.",
			Date:   time.Now().Format("2006-01-02"),
		}
		templates.Render(w, r, "meetings_self_log", data)
		return
	}

	attended := r.FormValue("attended") == "true"
	notes := htmlsanitize.Sanitize(r.FormValue("notes"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "student self-log")
	defer cancel()

	// Look the student up so the record carries the advisor link for
	// the advisor's views.
	student, err := h.Users.GetByID(ctx, studentID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: student lookup failed", err, "Could not log the meeting.", "/meetings/my")
		return
	}

	now := time.Now().UTC()
	m := models.Meeting{
		StudentID:                 studentID,
		StudentName:               studentName,
		ScheduledDate:             date,
		Status:                    models.StatusPendingReview,
		Source:                    models.SourceManual,
		StudentAttended:           attended,
		StudentSelfReported:       true,
		AttendanceNotes:           notes,
		StudentAttendanceMarkedAt: &now,
	}
	if student.AdvisorID != nil {
		m.AdvisorID = *student.AdvisorID
		if adv, err := h.Users.GetByID(ctx, *student.AdvisorID); err == nil {
			m.AdvisorName = adv.FullName
		}
	}

	created, err := h.Meetings.Create(ctx, m)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: self-log create failed", err, "Could not log the meeting.", "/meetings/my")
		return
	}

	h.Log.Info("student self-logged meeting",
		zap.String("meeting_id", created.ID.Hex()),
		zap.String("student_id", studentID.Hex()))

	http.Redirect(w, r, "/meetings/"+created.ID.Hex(), http.StatusSeeOther)
}
