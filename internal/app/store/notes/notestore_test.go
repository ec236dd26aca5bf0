package notestore_test

import (
	"testing"

	notestore "github.com/dalemusser/advisehub/internal/app/store/notes"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/advisehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_And_ByStudent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	ada := fixtures.CreateStudent(ctx, "Ada Park", "ada@test.com", advisor.ID)
	ben := fixtures.CreateStudent(ctx, "Ben Ito", "ben@test.com", advisor.ID)

	// Team-tagged note: the roster was flattened onto student_ids.
	_, err := store.Create(ctx, models.Note{
		AdvisorID:    advisor.ID,
		AdvisorName:  advisor.FullName,
		StudentIDs:   []primitive.ObjectID{ada.ID, ben.ID},
		StudentNames: []string{ada.FullName, ben.FullName},
		TeamName:     "Robotics",
		Body:         "<p>Team check-in went well.</p>",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ByStudent(ctx, ben.ID)
	if err != nil {
		t.Fatalf("ByStudent failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 note tagged at student, got %d", len(got))
	}
	if got[0].TeamName != "Robotics" {
		t.Errorf("team name: got %q", got[0].TeamName)
	}
}

func TestStore_AddAttachments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.Create(ctx, models.Note{
		AdvisorID:  primitive.NewObjectID(),
		StudentIDs: []primitive.ObjectID{primitive.NewObjectID()},
		Body:       "<p>With files.</p>",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.AddAttachments(ctx, n.ID, []models.Attachment{
		{Path: "notes/a.pdf", FileName: "a.pdf", Size: 100, ContentType: "application/pdf"},
		{Path: "notes/b.png", FileName: "b.png", Size: 200, ContentType: "image/png"},
	})
	if err != nil {
		t.Fatalf("AddAttachments failed: %v", err)
	}

	found, err := store.GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Attachments) != 2 {
		t.Errorf("attachments: got %d, want 2", len(found.Attachments))
	}
}

func TestStore_AddAttachments_EmptyIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// No documents needed; an empty batch returns before touching the DB.
	if err := store.AddAttachments(ctx, primitive.NewObjectID(), nil); err != nil {
		t.Errorf("expected nil error for empty batch, got %v", err)
	}
}
