// internal/app/features/reflections/handler.go
package reflections

import (
	"net/http"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	meetingstore "github.com/dalemusser/advisehub/internal/app/store/meetings"
	reflectionstore "github.com/dalemusser/advisehub/internal/app/store/reflections"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/app/system/viewdata"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	ErrLog      *uierrors.ErrorLogger
	Users       *userstore.Store
	Meetings    *meetingstore.Store
	Reflections *reflectionstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      uierrors.NewErrorLogger(logger),
		Users:       userstore.New(db),
		Meetings:    meetingstore.New(db),
		Reflections: reflectionstore.New(db),
	}
}

type listData struct {
	viewdata.BaseVM
	Reflections []models.Reflection
	Owner       models.User
	Mine        bool
}

// ServeReflectionsList handles GET /reflections. Students see their
// own; advisors and admins pass ?student=<id>.
func (h *Handler) ServeReflectionsList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "reflections list")
	defer cancel()

	studentID := userID
	if role != "student" {
		sid, err := primitive.ObjectIDFromHex(r.URL.Query().Get("student"))
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "reflections: missing student param", err, "Pick a student to view reflections for.", "/dashboard")
			return
		}
		studentID = sid
	}

	student, err := h.Users.GetByID(ctx, studentID)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "reflections: student lookup failed", err, "That student could not be found.", "/dashboard")
		return
	}
	if !authz.CanViewStudent(r, student.ID, student.AdvisorID) {
		w.WriteHeader(http.StatusForbidden)
		uierrors.RenderForbidden(w, r, "You do not have access to this student's reflections.", "/dashboard")
		return
	}

	refs, err := h.Reflections.ByStudent(ctx, studentID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reflections: list load failed", err, "Could not load reflections.", "/dashboard")
		return
	}

	data := listData{
		BaseVM:      viewdata.NewBaseVM(r, "Reflections", "/dashboard"),
		Reflections: refs,
		Owner:       student,
		Mine:        role == "student",
	}
	templates.Render(w, r, "reflections_list", data)
}

type formData struct {
	viewdata.BaseVM
	Error    string
	Meetings []models.Meeting
}

// ServeNewReflection handles GET /reflections/new (students only).
// The student's meetings are offered for the optional link.
func (h *Handler) ServeNewReflection(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "reflection form load")
	defer cancel()

	meetings, err := h.Meetings.ActiveByStudent(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reflections: meeting load failed", err, "Could not load the reflection form.", "/reflections")
		return
	}

	data := formData{
		BaseVM:   viewdata.NewBaseVM(r, "New Reflection", "/reflections"),
		Meetings: meetings,
	}
	templates.Render(w, r, "reflections_new", data)
}

// HandleCreateReflection handles POST /reflections. A meeting link is
// optional; when present it must point at one of the student's own
// meetings.
func (h *Handler) HandleCreateReflection(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "reflections: bad form", err, "Could not read the reflection form.", "/reflections")
		return
	}

	body := htmlsanitize.Sanitize(r.FormValue("body"))
	if body == "" {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "reflection form reload")
		defer cancel()
		meetings, _ := h.Meetings.ActiveByStudent(ctx, userID)
		data := formData{
			BaseVM:   viewdata.NewBaseVM(r, "New Reflection", "/reflections"),
			Error:    "Write something before saving.",
			Meetings: meetings,
		}
		templates.Render(w, r, "reflections_new", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "reflection create")
	defer cancel()

	ref := models.Reflection{
		StudentID: userID,
		Body:      body,
	}
	if raw := r.FormValue("meeting_id"); raw != "" {
		mid, err := primitive.ObjectIDFromHex(raw)
		if err == nil {
			m, err := h.Meetings.GetByID(ctx, mid)
			if err == nil && m.StudentID == userID {
				ref.MeetingID = &mid
			}
		}
	}

	if _, err := h.Reflections.Create(ctx, ref); err != nil {
		h.ErrLog.LogServerError(w, r, "reflections: create failed", err, "Could not save the reflection.", "/reflections")
		return
	}

	http.Redirect(w, r, "/reflections", http.StatusSeeOther)
}
