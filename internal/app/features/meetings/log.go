// internal/app/features/meetings/log.go
package meetings

import (
	"net/http"
	"time"

	"github.com/dalemusser/advisehub/internal/app/policy/selection"
	meetingstore "github.com/dalemusser/advisehub/internal/app/store/meetings"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/fanout"
	"github.com/dalemusser/advisehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type logFormData struct {
	viewdata.BaseVM
	Error    string
	Students []models.User
	Teams    []models.Team
	Date     string
}

// ServeLogForm handles GET /meetings/log: the advisor's form for
// recording a meeting that already happened (or was missed).
func (h *Handler) ServeLogForm(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "log form load")
	defer cancel()

	students, err := h.Users.StudentsByAdvisor(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: roster load failed", err, "Could not load the meeting form.", "/meetings")
		return
	}
	teams, err := h.Teams.All(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: team load failed", err, "Could not load the meeting form.", "/meetings")
		return
	}

	data := logFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Log a Meeting", "/meetings"),
		Students: students,
		Teams:    teams,
		Date:     time.Now().Format("2006-01-02"),
	}
	templates.Render(w, r, "meetings_log", data)
}

type logResultData struct {
	viewdata.BaseVM
	Summary  string
	Failed   []fanout.Result
	AllBad   bool
	TeamName string
}

// HandleLogPost handles POST /meetings/log.
//
// The tagging mode decides who gets a record: one student, a picked
// set, or a whole team's roster. Each student is logged independently;
// one failure does not stop the rest, and the outcome page reports the
// partial result.
func (h *Handler) HandleLogPost(w http.ResponseWriter, r *http.Request) {
	_, advisorName, advisorID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "meetings: bad log form", err, "Could not read the meeting form.", "/meetings/log")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", r.FormValue("date"), time.Local)
	if err != nil {
		h.renderLogError(w, r, advisorID, "Enter a valid meeting date.")
		return
	}

	mode := selection.ParseMode(r.FormValue("mode"))
	attended := r.FormValue("attended") == "true"
	notes := htmlsanitize.Sanitize(r.FormValue("notes"))

	var studentIDs []primitive.ObjectID
	switch mode {
	case selection.ModeSingle:
		if id, err := primitive.ObjectIDFromHex(r.FormValue("student_id")); err == nil {
			studentIDs = append(studentIDs, id)
		}
	case selection.ModeMultiple:
		for _, raw := range r.Form["student_ids"] {
			if id, err := primitive.ObjectIDFromHex(raw); err == nil {
				studentIDs = append(studentIDs, id)
			}
		}
	}
	var teamID primitive.ObjectID
	if mode == selection.ModeTeam {
		teamID, _ = primitive.ObjectIDFromHex(r.FormValue("team_id"))
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "meeting log fan-out")
	defer cancel()

	students, err := h.Users.StudentsByAdvisor(ctx, advisorID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: roster load failed", err, "Could not log the meeting.", "/meetings/log")
		return
	}
	teams, err := h.Teams.All(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "meetings: team load failed", err, "Could not log the meeting.", "/meetings/log")
		return
	}

	set := selection.Resolve(mode, studentIDs, teamID, students, teams)
	if set.Empty() {
		h.renderLogError(w, r, advisorID, "Select at least one student or a team.")
		return
	}

	var rep fanout.Report
	for i, sid := range set.StudentIDs {
		name := set.StudentNames[i]
		_, err := h.Meetings.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
			StudentID:   sid,
			StudentName: name,
			AdvisorID:   advisorID,
			AdvisorName: advisorName,
			Date:        date,
			Attended:    attended,
			Notes:       notes,
		})
		rep.Add(name, err)
	}

	h.Log.Info("advisor meeting log",
		zap.String("advisor_id", advisorID.Hex()),
		zap.String("summary", rep.Summary()))

	data := logResultData{
		BaseVM:   viewdata.NewBaseVM(r, "Meeting Logged", "/meetings"),
		Summary:  rep.Summary(),
		Failed:   rep.Failed(),
		AllBad:   rep.AllFailed(),
		TeamName: set.TeamName,
	}
	templates.Render(w, r, "meetings_log_result", data)
}

func (h *Handler) renderLogError(w http.ResponseWriter, r *http.Request, advisorID primitive.ObjectID, msg string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "log form reload")
	defer cancel()

	students, _ := h.Users.StudentsByAdvisor(ctx, advisorID)
	teams, _ := h.Teams.All(ctx)

	data := logFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Log a Meeting", "/meetings"),
		Error:    msg,
		Students: students,
		Teams:    teams,
		Date:     time.Now().Format("2006-01-02"),
	}
	templates.Render(w, r, "meetings_log", data)
}
