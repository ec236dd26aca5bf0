package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role. Students should
// normally be created via CreateStudent so they carry an advisor link.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin)
}

// CreateAdvisor creates a test advisor user.
func (f *Fixtures) CreateAdvisor(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdvisor)
}

// CreateStudent creates a test student assigned to the given advisor.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string, advisorID primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       models.RoleStudent,
		AdvisorID:  &advisorID,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return user
}

// CreateTeam creates a test team with the given roster.
func (f *Fixtures) CreateTeam(ctx context.Context, name string, studentIDs ...primitive.ObjectID) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		StudentIDs: studentIDs,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateMeeting inserts a meeting document directly, bypassing the
// store, so tests can construct arbitrary states (legacy statuses,
// overridden records).
func (f *Fixtures) CreateMeeting(ctx context.Context, m models.Meeting) models.Meeting {
	f.t.Helper()

	now := time.Now().UTC()
	if m.ID == primitive.NilObjectID {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}

	if _, err := f.db.Collection("meetings").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test meeting: %v", err)
	}
	return m
}

// CreateGoal creates a test goal for a student.
func (f *Fixtures) CreateGoal(ctx context.Context, studentID primitive.ObjectID, title string) models.Goal {
	f.t.Helper()

	now := time.Now().UTC()
	goal := models.Goal{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		Title:     title,
		Status:    models.GoalActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("goals").InsertOne(ctx, goal); err != nil {
		f.t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
