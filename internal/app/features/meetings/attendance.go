// internal/app/features/meetings/attendance.go
package meetings

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleMarkAttendance handles POST /meetings/{id}/attendance: the
// advisor's confirmation of who showed up. This is the only write that
// sets attendance_marked.
func (h *Handler) HandleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad meeting id", err, "That meeting link is not valid.", "/meetings")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad attendance form", err, "Could not read the attendance form.", "/meetings")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "mark attendance")
	defer cancel()

	m, err := h.Meetings.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "meetings: meeting lookup failed", err, "That meeting could not be found.", "/meetings")
		return
	}
	if !canManageMeeting(r, m) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "Only the meeting's advisor can confirm attendance.", "/meetings")
		return
	}

	studentAttended := r.FormValue("student_attended") == "true"
	advisorAttended := r.FormValue("advisor_attended") == "true"
	notes := htmlsanitize.Sanitize(r.FormValue("notes"))

	if err := h.Meetings.MarkAttendance(ctx, id, studentAttended, advisorAttended, notes); err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: mark attendance failed", err, "Could not record attendance.", "/meetings/"+id.Hex())
		return
	}

	h.Log.Info("attendance confirmed",
		zap.String("meeting_id", id.Hex()),
		zap.Bool("student_attended", studentAttended))

	http.Redirect(w, r, "/meetings/"+id.Hex(), http.StatusSeeOther)
}

// HandleFeedback handles POST /meetings/{id}/feedback. Feedback never
// touches attendance state.
func (h *Handler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad meeting id", err, "That meeting link is not valid.", "/meetings")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad feedback form", err, "Could not read the feedback form.", "/meetings")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add feedback")
	defer cancel()

	m, err := h.Meetings.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "meetings: meeting lookup failed", err, "That meeting could not be found.", "/meetings")
		return
	}
	if !canManageMeeting(r, m) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "Only the meeting's advisor can add feedback.", "/meetings")
		return
	}

	feedback := htmlsanitize.Sanitize(r.FormValue("feedback"))
	nextSteps := htmlsanitize.Sanitize(r.FormValue("next_steps"))

	var items []string
	for _, line := range strings.Split(r.FormValue("action_items"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}

	if err := h.Meetings.AddFeedback(ctx, id, feedback, items, nextSteps); err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: add feedback failed", err, "Could not save feedback.", "/meetings/"+id.Hex())
		return
	}

	http.Redirect(w, r, "/meetings/"+id.Hex(), http.StatusSeeOther)
}

// HandleCancel handles POST /meetings/{id}/cancel. Cancelled records
// remain in place for the history view.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad meeting id", err, "That meeting link is not valid.", "/meetings")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad cancel form", err, "Could not read the form.", "/meetings")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "cancel meeting")
	defer cancel()

	m, err := h.Meetings.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "meetings: meeting lookup failed", err, "That meeting could not be found.", "/meetings")
		return
	}
	if !canManageMeeting(r, m) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "Only the meeting's advisor can cancel it.", "/meetings")
		return
	}

	reason := strings.TrimSpace(r.FormValue("reason"))
	if err := h.Meetings.Cancel(ctx, id, reason); err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: cancel failed", err, "Could not cancel the meeting.", "/meetings/"+id.Hex())
		return
	}

	http.Redirect(w, r, "/meetings/"+id.Hex(), http.StatusSeeOther)
}

// HandleSelfReport handles POST /meetings/{id}/self-report: a student
// reporting their own attendance for an existing meeting. The record
// stays unconfirmed until the advisor marks it.
func (h *Handler) HandleSelfReport(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad meeting id", err, "That meeting link is not valid.", "/meetings/my")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad self-report form", err, "Could not read the form.", "/meetings/my")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "student self-report")
	defer cancel()

	m, err := h.Meetings.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "meetings: meeting lookup failed", err, "That meeting could not be found.", "/meetings/my")
		return
	}

	_, _, userID, ok := authz.UserCtx(r)
	if !ok || m.StudentID != userID {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "You can only report attendance for your own meetings.", "/meetings/my")
		return
	}

	attended := r.FormValue("attended") == "true"
	notes := htmlsanitize.Sanitize(r.FormValue("notes"))

	if err := h.Meetings.MarkStudentAttendance(ctx, id, attended, notes); err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: self-report failed", err, "Could not record your attendance.", "/meetings/my")
		return
	}

	http.Redirect(w, r, "/meetings/"+id.Hex(), http.StatusSeeOther)
}
