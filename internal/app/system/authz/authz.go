// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/advisehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false. This ensures callers can
// trust that ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
// Superadmins are also considered admins for permission purposes.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "admin" || role == "superadmin")
}

// IsAdvisor reports whether the current request's user is an advisor.
func IsAdvisor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "advisor"
}

// IsStudent reports whether the current request's user is a student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "student"
}

// CanViewStudent reports whether the current user may view the given
// student's records: admins always, students only their own record, and
// advisors when the student's advisor link matches.
func CanViewStudent(r *http.Request, studentID primitive.ObjectID, advisorID *primitive.ObjectID) bool {
	role, _, userID, ok := UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "admin", "superadmin":
		return true
	case "student":
		return userID == studentID
	case "advisor":
		return advisorID != nil && *advisorID == userID
	}
	return false
}
