// internal/app/features/meetings/handler.go
package meetings

import (
	"net/http"

	uierrors "github.com/dalemusser/advisehub/internal/app/features/errors"
	meetingstore "github.com/dalemusser/advisehub/internal/app/store/meetings"
	teamstore "github.com/dalemusser/advisehub/internal/app/store/teams"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/authz"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the meetings feature.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Users    *userstore.Store
	Teams    *teamstore.Store
	Meetings *meetingstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   uierrors.NewErrorLogger(logger),
		Users:    userstore.New(db),
		Teams:    teamstore.New(db),
		Meetings: meetingstore.New(db),
	}
}

// canViewMeeting applies the record-level access rule: admins see
// everything, advisors see their own students' meetings, students see
// their own.
func canViewMeeting(r *http.Request, m models.Meeting) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "admin", "superadmin":
		return true
	case "advisor":
		return m.AdvisorID == userID
	case "student":
		return m.StudentID == userID
	}
	return false
}

// canManageMeeting reports whether the user may confirm attendance,
// add feedback, or cancel: the owning advisor or an admin.
func canManageMeeting(r *http.Request, m models.Meeting) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "admin", "superadmin":
		return true
	case "advisor":
		return m.AdvisorID == userID
	}
	return false
}
