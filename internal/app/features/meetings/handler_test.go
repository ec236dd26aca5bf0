package meetings_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/dalemusser/advisehub/internal/app/features/meetings"
	"github.com/dalemusser/advisehub/internal/app/resources"
	meetingstore "github.com/dalemusser/advisehub/internal/app/store/meetings"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/advisehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setupMeetings(t *testing.T) (*meetings.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	resources.LoadSharedTemplates()
	return meetings.NewHandler(db, zap.NewNop()), db
}

func TestLogPost_SingleStudent(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	student := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)

	form := url.Values{
		"mode":       {"single"},
		"student_id": {student.ID.Hex()},
		"date":       {time.Now().Format("2006-01-02")},
		"attended":   {"true"},
		"notes":      {"Talked through milestone plan."},
	}
	req := testutil.NewFormRequest("/meetings/log", form, testutil.UserWithID(advisor.ID, advisor.FullName, "advisor"))
	rec := testutil.NewRecorder()

	h.HandleLogPost(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "1 of 1 succeeded")

	ms := meetingstore.New(db)
	got, err := ms.ActiveByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("load meetings: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 meeting, got %d", len(got))
	}
	m := got[0]
	if m.Status != models.StatusAttended {
		t.Errorf("status: got %q, want attended", m.Status)
	}
	if !m.AttendanceMarked {
		t.Error("advisor-logged meeting should be attendance-marked")
	}
	if m.Source != models.SourceAdvisorManual {
		t.Errorf("source: got %q", m.Source)
	}
	if m.AdvisorID != advisor.ID {
		t.Error("meeting should carry the logging advisor's id")
	}
}

func TestLogPost_TeamFanOut(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	s1 := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)
	s2 := fx.CreateStudent(ctx, "Ada Park", "ada@example.edu", advisor.ID)
	team := fx.CreateTeam(ctx, "Rocket Crew", s1.ID, s2.ID)

	form := url.Values{
		"mode":     {"team"},
		"team_id":  {team.ID.Hex()},
		"date":     {time.Now().Format("2006-01-02")},
		"attended": {"true"},
	}
	req := testutil.NewFormRequest("/meetings/log", form, testutil.UserWithID(advisor.ID, advisor.FullName, "advisor"))
	rec := testutil.NewRecorder()

	h.HandleLogPost(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "2 of 2 succeeded")
	rec.AssertContains(t, "Rocket Crew")

	ms := meetingstore.New(db)
	for _, sid := range []primitive.ObjectID{s1.ID, s2.ID} {
		got, err := ms.ActiveByStudent(ctx, sid)
		if err != nil {
			t.Fatalf("load meetings: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("student %s: expected 1 meeting, got %d", sid.Hex(), len(got))
		}
	}
}

func TestLogPost_SameDayOverride(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	student := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)

	form := url.Values{
		"mode":       {"single"},
		"student_id": {student.ID.Hex()},
		"date":       {time.Now().Format("2006-01-02")},
		"attended":   {"false"},
	}
	user := testutil.UserWithID(advisor.ID, advisor.FullName, "advisor")

	rec := testutil.NewRecorder()
	h.HandleLogPost(rec, testutil.NewFormRequest("/meetings/log", form, user))
	rec.AssertStatus(t, http.StatusOK)

	// Re-log the same day as attended; the first record must be
	// superseded, not duplicated.
	form.Set("attended", "true")
	rec = testutil.NewRecorder()
	h.HandleLogPost(rec, testutil.NewFormRequest("/meetings/log", form, user))
	rec.AssertStatus(t, http.StatusOK)

	ms := meetingstore.New(db)
	active, err := ms.ActiveByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("load meetings: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected exactly 1 active record, got %d", len(active))
	}
	if active[0].Status != models.StatusAttended {
		t.Errorf("the newer log should win: got %q", active[0].Status)
	}

	all, err := ms.ByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("history should keep both records, got %d", len(all))
	}
}

func TestLogPost_EmptySelection(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")

	form := url.Values{
		"mode":     {"single"},
		"date":     {time.Now().Format("2006-01-02")},
		"attended": {"true"},
	}
	req := testutil.NewFormRequest("/meetings/log", form, testutil.UserWithID(advisor.ID, advisor.FullName, "advisor"))
	rec := testutil.NewRecorder()

	h.HandleLogPost(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Select at least one student")
}

func TestMarkAttendance_OtherAdvisorForbidden(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	other := fx.CreateAdvisor(ctx, "Lee Chan", "lee@example.edu")
	student := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)
	m := fx.CreateMeeting(ctx, models.Meeting{
		StudentID:     student.ID,
		StudentName:   student.FullName,
		AdvisorID:     advisor.ID,
		ScheduledDate: time.Now(),
		Status:        models.StatusScheduled,
		Source:        models.SourceManual,
	})

	form := url.Values{"student_attended": {"true"}, "advisor_attended": {"true"}}
	req := testutil.NewFormRequest("/meetings/"+m.ID.Hex()+"/attendance", form, testutil.UserWithID(other.ID, other.FullName, "advisor"))
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	rec := testutil.NewRecorder()

	h.HandleMarkAttendance(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestSelfReport_NeverConfirms(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	student := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)
	m := fx.CreateMeeting(ctx, models.Meeting{
		StudentID:     student.ID,
		StudentName:   student.FullName,
		AdvisorID:     advisor.ID,
		ScheduledDate: time.Now(),
		Status:        models.StatusScheduled,
		Source:        models.SourceCalendly,
	})

	form := url.Values{"attended": {"true"}, "notes": {"We met in the library."}}
	req := testutil.NewFormRequest("/meetings/"+m.ID.Hex()+"/self-report", form, testutil.UserWithID(student.ID, student.FullName, "student"))
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	rec := testutil.NewRecorder()

	h.HandleSelfReport(rec, req)

	rec.AssertRedirect(t, "/meetings/"+m.ID.Hex())

	ms := meetingstore.New(db)
	got, err := ms.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("reload meeting: %v", err)
	}
	if got.Status != models.StatusAttended {
		t.Errorf("status: got %q, want attended", got.Status)
	}
	if !got.StudentSelfReported {
		t.Error("self-report flag should be set")
	}
	if got.AttendanceMarked {
		t.Error("a self-report must not count as advisor confirmation")
	}
}

func TestSelfReport_OtherStudentForbidden(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	student := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)
	other := fx.CreateStudent(ctx, "Ada Park", "ada@example.edu", advisor.ID)
	m := fx.CreateMeeting(ctx, models.Meeting{
		StudentID:     student.ID,
		StudentName:   student.FullName,
		AdvisorID:     advisor.ID,
		ScheduledDate: time.Now(),
		Status:        models.StatusScheduled,
		Source:        models.SourceManual,
	})

	form := url.Values{"attended": {"true"}}
	req := testutil.NewFormRequest("/meetings/"+m.ID.Hex()+"/self-report", form, testutil.UserWithID(other.ID, other.FullName, "student"))
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	rec := testutil.NewRecorder()

	h.HandleSelfReport(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestSelfLogPost_CreatesPendingReview(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	student := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)

	form := url.Values{
		"date":     {time.Now().Format("2006-01-02")},
		"attended": {"true"},
		"notes":    {"Quick check-in."},
	}
	req := testutil.NewFormRequest("/meetings/my/log", form, testutil.UserWithID(student.ID, student.FullName, "student"))
	rec := testutil.NewRecorder()

	h.HandleSelfLogPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}

	ms := meetingstore.New(db)
	got, err := ms.ActiveByStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("load meetings: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 meeting, got %d", len(got))
	}
	m := got[0]
	if m.Status != models.StatusPendingReview {
		t.Errorf("status: got %q, want pending-review", m.Status)
	}
	if m.Source != models.SourceManual {
		t.Errorf("source: got %q, want manual", m.Source)
	}
	if m.AttendanceMarked {
		t.Error("self-logged meeting must not be attendance-marked")
	}
	if m.AdvisorID != advisor.ID {
		t.Error("self-logged meeting should carry the student's advisor")
	}
}

func TestMeetingView_UnrelatedStudentForbidden(t *testing.T) {
	h, db := setupMeetings(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	advisor := fx.CreateAdvisor(ctx, "Dana Reyes", "dana@example.edu")
	student := fx.CreateStudent(ctx, "Ben Ito", "ben@example.edu", advisor.ID)
	outsider := fx.CreateStudent(ctx, "Ada Park", "ada@example.edu", advisor.ID)
	m := fx.CreateMeeting(ctx, models.Meeting{
		StudentID:     student.ID,
		StudentName:   student.FullName,
		AdvisorID:     advisor.ID,
		ScheduledDate: time.Now(),
		Status:        models.StatusScheduled,
		Source:        models.SourceManual,
	})

	req := testutil.NewAuthenticatedRequest("GET", "/meetings/"+m.ID.Hex(), testutil.UserWithID(outsider.ID, outsider.FullName, "student"))
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeMeetingView(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
}
