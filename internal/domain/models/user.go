// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSiteName is used when no site settings are configured.
const DefaultSiteName = "AdviseHub"

// User roles.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleAdvisor    = "advisor"
	RoleStudent    = "student"
)

// User is an account in the system: an admin, an advisor, or a student.
//
// Students carry an AdvisorID linking them to the advisor responsible for
// their independent study. Email is globally unique (folded via EmailCI).
type User struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"`
	Email      string             `bson:"email" json:"email"`
	EmailCI    string             `bson:"email_ci" json:"email_ci"`

	Role string `bson:"role" json:"role"`

	// AdvisorID is set for students only.
	AdvisorID *primitive.ObjectID `bson:"advisor_id,omitempty" json:"advisor_id,omitempty"`

	// PasswordHash is a bcrypt hash; empty for accounts that have not set
	// a password yet (they cannot sign in until one is set).
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
