package meetingstore_test

import (
	"testing"
	"time"

	meetingstore "github.com/dalemusser/advisehub/internal/app/store/meetings"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/advisehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_LogAdvisorMeeting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	student := fixtures.CreateStudent(ctx, "Lee Park", "lee@test.com", advisor.ID)

	m, err := store.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
		StudentID:   student.ID,
		StudentName: student.FullName,
		AdvisorID:   advisor.ID,
		AdvisorName: advisor.FullName,
		Date:        time.Date(2025, 6, 20, 14, 30, 0, 0, time.UTC),
		Attended:    true,
		Notes:       "caught up on milestones",
	})
	if err != nil {
		t.Fatalf("LogAdvisorMeeting failed: %v", err)
	}

	if m.Status != models.StatusAttended {
		t.Errorf("status: got %q, want %q", m.Status, models.StatusAttended)
	}
	if m.Source != models.SourceAdvisorManual {
		t.Errorf("source: got %q, want %q", m.Source, models.SourceAdvisorManual)
	}
	if !m.AttendanceMarked {
		t.Error("advisor-logged meeting must be attendance-marked on creation")
	}
	// Date normalizes to midnight of the given day.
	if m.ScheduledDate.Hour() != 0 || m.ScheduledDate.Minute() != 0 {
		t.Errorf("scheduled date not normalized to midnight: %v", m.ScheduledDate)
	}
	// The note is stamped with the advisor's name; the form notes follow.
	want := "Meeting logged by Dana Cho\ncaught up on milestones"
	if m.AttendanceNotes != want {
		t.Errorf("attendance notes: got %q, want %q", m.AttendanceNotes, want)
	}
}

func TestStore_LogAdvisorMeeting_AutoFillsNotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	student := fixtures.CreateStudent(ctx, "Lee Park", "lee@test.com", advisor.ID)

	// Even with an empty form note, the record carries the advisor stamp
	// and the did-not-attend suffix.
	m, err := store.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
		StudentID:   student.ID,
		StudentName: student.FullName,
		AdvisorID:   advisor.ID,
		AdvisorName: advisor.FullName,
		Date:        time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Attended:    false,
	})
	if err != nil {
		t.Fatalf("LogAdvisorMeeting failed: %v", err)
	}
	if m.AttendanceNotes != "Meeting logged by Dana Cho - student did not attend" {
		t.Errorf("attendance notes: got %q", m.AttendanceNotes)
	}

	reloaded, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.AttendanceNotes != m.AttendanceNotes {
		t.Errorf("persisted notes: got %q", reloaded.AttendanceNotes)
	}
}

func TestStore_LogAdvisorMeeting_NotAttendedIsMissed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	student := fixtures.CreateStudent(ctx, "Lee Park", "lee@test.com", advisor.ID)

	m, err := store.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
		StudentID: student.ID,
		AdvisorID: advisor.ID,
		Date:      time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Attended:  false,
	})
	if err != nil {
		t.Fatalf("LogAdvisorMeeting failed: %v", err)
	}
	if m.Status != models.StatusMissed {
		t.Errorf("status: got %q, want %q", m.Status, models.StatusMissed)
	}
}

func TestStore_LogAdvisorMeeting_OverridesSameDayRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	student := fixtures.CreateStudent(ctx, "Lee Park", "lee@test.com", advisor.ID)

	existing := fixtures.CreateMeeting(ctx, models.Meeting{
		StudentID:     student.ID,
		ScheduledDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Status:        models.StatusScheduled,
		Source:        models.SourceManual,
	})

	logged, err := store.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
		StudentID: student.ID,
		AdvisorID: advisor.ID,
		Date:      time.Date(2025, 6, 20, 16, 0, 0, 0, time.UTC),
		Attended:  true,
	})
	if err != nil {
		t.Fatalf("LogAdvisorMeeting failed: %v", err)
	}

	// The old record is linked to the new one, not deleted.
	old, err := store.GetByID(ctx, existing.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if old.OverriddenBy == nil {
		t.Fatal("expected existing record to carry an override link")
	}
	if *old.OverriddenBy != logged.ID {
		t.Errorf("overridden_by: got %v, want %v", *old.OverriddenBy, logged.ID)
	}

	// Exactly one active record remains for the day.
	active, err := store.ActiveOn(ctx, student.ID, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ActiveOn failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active record for the day, got %d", len(active))
	}
	if active[0].ID != logged.ID {
		t.Error("the advisor's new record should be the active one")
	}
}

func TestStore_LogAdvisorMeeting_DifferentDayDoesNotOverride(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	student := fixtures.CreateStudent(ctx, "Lee Park", "lee@test.com", advisor.ID)

	existing := fixtures.CreateMeeting(ctx, models.Meeting{
		StudentID:     student.ID,
		ScheduledDate: time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
		Status:        models.StatusScheduled,
	})

	_, err := store.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
		StudentID: student.ID,
		AdvisorID: advisor.ID,
		Date:      time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Attended:  true,
	})
	if err != nil {
		t.Fatalf("LogAdvisorMeeting failed: %v", err)
	}

	old, _ := store.GetByID(ctx, existing.ID)
	if old.OverriddenBy != nil {
		t.Error("a different day's record must not be overridden")
	}

	active, _ := store.ActiveByStudent(ctx, student.ID)
	if len(active) != 2 {
		t.Errorf("expected 2 active records across days, got %d", len(active))
	}
}

func TestStore_LogAdvisorMeeting_OverridesMultipleSameDayRecords(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	advisor := fixtures.CreateAdvisor(ctx, "Dana Cho", "dana@test.com")
	student := fixtures.CreateStudent(ctx, "Lee Park", "lee@test.com", advisor.ID)

	for i := 0; i < 2; i++ {
		fixtures.CreateMeeting(ctx, models.Meeting{
			StudentID:     student.ID,
			ScheduledDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			Status:        models.StatusScheduled,
		})
	}

	logged, err := store.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
		StudentID: student.ID,
		AdvisorID: advisor.ID,
		Date:      time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Attended:  true,
	})
	if err != nil {
		t.Fatalf("LogAdvisorMeeting failed: %v", err)
	}

	active, err := store.ActiveOn(ctx, student.ID, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ActiveOn failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != logged.ID {
		t.Errorf("expected only the new record active, got %d records", len(active))
	}
}

func TestStore_LogAdvisorMeeting_UnknownStudentStillInserts(t *testing.T) {
	// The store does not validate student existence; that is the handler's
	// job. A log against an arbitrary id simply creates the record.
	db := testutil.SetupTestDB(t)
	store := meetingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.LogAdvisorMeeting(ctx, meetingstore.AdvisorLog{
		StudentID: primitive.NewObjectID(),
		AdvisorID: primitive.NewObjectID(),
		Date:      time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Attended:  true,
	})
	if err != nil {
		t.Fatalf("LogAdvisorMeeting failed: %v", err)
	}
	if m.ID == primitive.NilObjectID {
		t.Error("expected record to be created")
	}
}
