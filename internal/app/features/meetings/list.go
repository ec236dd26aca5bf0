// internal/app/features/meetings/list.go
package meetings

import (
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

// meetingRow wraps a meeting with its derived display flags. Overdue and
// Today are computed at render time and never persisted.
type meetingRow struct {
	models.Meeting
	Overdue bool
	Today   bool
}

func toRows(ms []models.Meeting, now time.Time) []meetingRow {
	rows := make([]meetingRow, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, meetingRow{
			Meeting: m,
			Overdue: meetingpolicy.IsOverdue(m, now),
			Today:   meetingpolicy.IsToday(m, now),
		})
	}
	return rows
}

type listData struct {
	viewdata.BaseVM
	Rows           []meetingRow
	NeedsAttention []meetingRow
	Bucket         string
	FilterPending  bool
}

// ServeMeetingsList handles GET /meetings for advisors and admins.
// Advisors see their own students' active meetings; admins see all.
// Query params: bucket=upcoming|past|today, filter=needs-attention.
func (h *Handler) ServeMeetingsList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "meetings list")
	defer cancel()

	var (
		meetings []models.Meeting
		err      error
	)
	if role == "advisor" {
		meetings, err = h.Meetings.ActiveByAdvisor(ctx, userID)
	} else {
		meetings, err = h.Meetings.All(ctx)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: list load failed", err, "Could not load meetings.", "/dashboard")
		return
	}

	now := time.Now()
	pending := meetingpolicy.NeedsAttention(meetings)

	shown := meetings
	filterPending := r.URL.Query().Get("filter") == "needs-attention"
	bucket := r.URL.Query().Get("bucket")
	if filterPending {
		shown = pending
	} else {
		shown = meetingpolicy.FilterByBucket(shown, meetingpolicy.ParseBucket(bucket), now)
	}

	data := listData{
		BaseVM:         viewdata.NewBaseVM(r, "Meetings", "/dashboard"),
		Rows:           toRows(shown, now),
		NeedsAttention: toRows(pending, now),
		Bucket:         bucket,
		FilterPending:  filterPending,
	}
	templates.Render(w, r, "meetings_list", data)
}

type studentListData struct {
	viewdata.BaseVM
	Student models.User
	Rows    []meetingRow
	Counts  meetingpolicy.Counts
}

// ServeStudentMeetings handles GET /meetings/student/{id}: one student's
// active meeting history, visible to their advisor and admins (and the
// student themselves).
func (h *Handler) ServeStudentMeetings(w http.ResponseWriter, r *http.Request) {
	studentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad student id", err, "That student link is not valid.", "/meetings")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "student meetings")
	defer cancel()

	student, err := h.Users.GetByID(ctx, studentID)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "meetings: student lookup failed", err, "That student could not be found.", "/meetings")
		return
	}

	if !authz.CanViewStudent(r, student.ID, student.AdvisorID) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "You do not have access to this student's meetings.", "/meetings")
		return
	}

	meetings, err := h.Meetings.ActiveByStudent(ctx, studentID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: student meetings load failed", err, "Could not load meetings.", "/meetings")
		return
	}

	data := studentListData{
		BaseVM:  viewdata.NewBaseVM(r, student.FullName+" · Meetings", "/meetings"),
		Student: student,
		Rows:    toRows(meetings, time.Now()),
		Counts:  meetingpolicy.AttendanceCounts(meetings),
	}
	templates.Render(w, r, "meetings_student", data)
}

type myListData struct {
	viewdata.BaseVM
	Rows   []meetingRow
	Counts meetingpolicy.Counts
}

// ServeMyMeetings handles GET /meetings/my for students.
func (h *Handler) ServeMyMeetings(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "my meetings")
	defer cancel()

	meetings, err := h.Meetings.ActiveByStudent(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: my meetings load failed", err, "Could not load your meetings.", "/dashboard")
		return
	}

	data := myListData{
		BaseVM: viewdata.NewBaseVM(r, "My Meetings", "/dashboard"),
		Rows:   toRows(meetings, time.Now()),
		Counts: meetingpolicy.AttendanceCounts(meetings),
	}
	templates.Render(w, r, "meetings_my", data)
}
