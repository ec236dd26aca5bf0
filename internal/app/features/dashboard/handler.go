// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	"github.com/dalemusser/advisehub/internal/app/policy/meetingpolicy"
	meetingstore "github.com/dalemusser/advisehub/internal/app/store/meetings"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Users    *userstore.Store
	Meetings *meetingstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   uierrors.NewErrorLogger(logger),
		Users:    userstore.New(db),
		Meetings: meetingstore.New(db),
	}
}

type advisorData struct {
	viewdata.BaseVM
	Students       []models.User
	Counts         meetingpolicy.Counts
	NeedsAttention int
	TodayCount     int
}

type studentData struct {
	viewdata.BaseVM
	Counts   meetingpolicy.Counts
	Upcoming []models.Meeting
}

type adminData struct {
	viewdata.BaseVM
	Counts       meetingpolicy.Counts
	AdvisorCount int
	StudentCount int
}

// ServeDashboard handles GET /dashboard, dispatching on the signed-in
// user's role.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard load")
	defer cancel()

	switch role {
	case "advisor":
		students, err := h.Users.StudentsByAdvisor(ctx, userID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "dashboard: student roster load failed", err, "Could not load your dashboard.", "/")
			return
		}
		meetings, err := h.Meetings.ActiveByAdvisor(ctx, userID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "dashboard: meeting load failed", err, "Could not load your dashboard.", "/")
			return
		}
		now := time.Now()
		data := advisorData{
			BaseVM:         viewdata.NewBaseVM(r, "Dashboard", "/"),
			Students:       students,
			Counts:         meetingpolicy.AttendanceCounts(meetings),
			NeedsAttention: len(meetingpolicy.NeedsAttention(meetings)),
			TodayCount:     len(meetingpolicy.FilterByBucket(meetings, meetingpolicy.BucketToday, now)),
		}
		templates.Render(w, r, "dashboard_advisor", data)

	case "student":
		meetings, err := h.Meetings.ActiveByStudent(ctx, userID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "dashboard: meeting load failed", err, "Could not load your dashboard.", "/")
			return
		}
		data := studentData{
			BaseVM:   viewdata.NewBaseVM(r, "Dashboard", "/"),
			Counts:   meetingpolicy.AttendanceCounts(meetings),
			Upcoming: meetingpolicy.FilterByBucket(meetings, meetingpolicy.BucketUpcoming, time.Now()),
		}
		templates.Render(w, r, "dashboard_student", data)

	default: // admin, superadmin
		meetings, err := h.Meetings.All(ctx)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "dashboard: meeting load failed", err, "Could not load the dashboard.", "/")
			return
		}
		advisors, err := h.Users.ByRole(ctx, models.RoleAdvisor)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "dashboard: advisor load failed", err, "Could not load the dashboard.", "/")
			return
		}
		students, err := h.Users.ByRole(ctx, models.RoleStudent)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "dashboard: student load failed", err, "Could not load the dashboard.", "/")
			return
		}
		data := adminData{
			BaseVM:       viewdata.NewBaseVM(r, "Dashboard", "/"),
			Counts:       meetingpolicy.AttendanceCounts(meetings),
			AdvisorCount: len(advisors),
			StudentCount: len(students),
		}
		templates.Render(w, r, "dashboard_admin", data)
	}
}
