package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/advisehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Dana Cho",
		Email:    "Dana@Example.com",
		Role:     models.RoleAdvisor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.EmailCI != "dana@example.com" {
		t.Errorf("EmailCI: got %q, want %q", created.EmailCI, "dana@example.com")
	}
	if created.Status != "active" {
		t.Errorf("expected status 'active', got %q", created.Status)
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FullName: "Dana Cho",
		Email:    "dana@example.com",
		Role:     models.RoleAdvisor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByEmail(ctx, "DANA@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.FullName != "Dana Cho" {
		t.Errorf("FullName: got %q", found.FullName)
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByEmail(ctx, "missing@example.com")
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_StudentsByAdvisor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	other := fixtures.CreateAdvisor(ctx, "Sam Reed", "sam@test.com")

	fixtures.CreateStudent(ctx, "Ben Ito", "ben@test.com", advisor.ID)
	fixtures.CreateStudent(ctx, "Ada Park", "ada@test.com", advisor.ID)
	fixtures.CreateStudent(ctx, "Cleo Ray", "cleo@test.com", other.ID)

	students, err := store.StudentsByAdvisor(ctx, advisor.ID)
	if err != nil {
		t.Fatalf("StudentsByAdvisor failed: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	// Sorted by folded name.
	if students[0].FullName != "Ada Park" {
		t.Errorf("expected name-sorted results, got %q first", students[0].FullName)
	}
}

func TestStore_AssignAdvisor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	newAdvisor := fixtures.CreateAdvisor(ctx, "Sam Reed", "sam@test.com")
	student := fixtures.CreateStudent(ctx, "Ben Ito", "ben@test.com", advisor.ID)

	if err := store.AssignAdvisor(ctx, student.ID, newAdvisor.ID); err != nil {
		t.Fatalf("AssignAdvisor failed: %v", err)
	}

	found, err := store.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.AdvisorID == nil || *found.AdvisorID != newAdvisor.ID {
		t.Error("expected advisor link to be updated")
	}
}
