// internal/app/features/goals/handler.go
package goals

import (
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	goalstore "github.com/dalemusser/advisehub/internal/app/store/goals"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/inputval"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Users  *userstore.Store
	Goals  *goalstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
		Users:  userstore.New(db),
		Goals:  goalstore.New(db),
	}
}

type listData struct {
	viewdata.BaseVM
	Goals []models.Goal
	Owner models.User
	Mine  bool
}

// ServeGoalsList handles GET /goals. Students see their own goals;
// advisors and admins pass ?student=<id> to view a student's goals.
func (h *Handler) ServeGoalsList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "goals list")
	defer cancel()

	studentID := userID
	if role != "student" {
		sid, err := primitive.ObjectIDFromHex(r.URL.Query().Get("student"))
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "goals: missing student param", err, "Pick a student to view goals for.", "/dashboard")
			return
		}
		studentID = sid
	}

	student, err := h.Users.GetByID(ctx, studentID)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "goals: student lookup failed", err, "That student could not be found.", "/dashboard")
		return
	}
	if !authz.CanViewStudent(r, student.ID, student.AdvisorID) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "You do not have access to this student's goals.", "/dashboard")
		return
	}

	goals, err := h.Goals.ByStudent(ctx, studentID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "goals: list load failed", err, "Could not load goals.", "/dashboard")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Goals", "/dashboard"),
		Goals:  goals,
		Owner:  student,
		Mine:   role == "student",
	}
	templates.Render(w, r, "goals_list", data)
}

type formData struct {
	viewdata.BaseVM
	Error string
}

// ServeNewGoal handles GET /goals/new (students only).
func (h *Handler) ServeNewGoal(w http.ResponseWriter, r *http.Request) {
	data := formData{BaseVM: viewdata.NewBaseVM(r, "New Goal", "/goals")}
	templates.Render(w, r, "goals_new", data)
}

type goalForm struct {
	Title string `validate:"required,min=3,max=200"`
}

// HandleCreateGoal handles POST /goals.
func (h *Handler) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "goals: bad form", err, "Could not read the goal form.", "/goals")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	detail := strings.TrimSpace(r.FormValue("detail"))

	if res := inputval.Validate(goalForm{Title: title}); res.HasErrors() {
		data := formData{
			BaseVM: viewdata.NewBaseVM(r, "New Goal", "/goals"),
			Error:  res.First(),
		}
		templates.Render(w, r, "goals_new", data)
		return
	}

	var target *time.Time
	if raw := r.FormValue("target_date"); raw != "" {
		if d, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			target = &d
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "goal create")
	defer cancel()

	if _, err := h.Goals.Create(ctx, models.Goal{
		StudentID:  userID,
		Title:      title,
		Detail:     detail,
		TargetDate: target,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "goals: create failed", err, "Could not save the goal.", "/goals")
		return
	}

	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}

// HandleGoalStatus handles POST /goals/{id}/status: moving a goal
// between active, completed, and abandoned.
func (h *Handler) HandleGoalStatus(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "goals: bad goal id", err, "That goal link is not valid.", "/goals")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "goals: bad form", err, "Could not read the form.", "/goals")
		return
	}

	stat := r.FormValue("status")
	switch stat {
	case models.GoalActive, models.GoalCompleted, models.GoalAbandoned:
	default:
		h.ErrLog.LogBadRequest(w, r, "goals: bad status value", nil, "That is not a valid goal status.", "/goals")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "goal status")
	defer cancel()

	g, err := h.Goals.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "goals: lookup failed", err, "That goal could not be found.", "/goals")
		return
	}
	if g.StudentID != userID {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "You can only update your own goals.", "/goals")
		return
	}

	if err := h.Goals.SetStatus(ctx, id, stat); err != nil {
		h.ErrLog.LogServerError(w, r, "goals: status update failed", err, "Could not update the goal.", "/goals")
		return
	}

	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}
