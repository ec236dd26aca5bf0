package meetingpolicy_test

import (
	"testing"
	"time"

	"github.com/dalemusser/advisehub/internal/app/policy/meetingpolicy"
	"github.com/dalemusser/advisehub/internal/domain/models"
)

// fixed "now": Wednesday 2025-06-18 15:04 local.
var now = time.Date(2025, 6, 18, 15, 4, 0, 0, time.Local)

func onDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func meetingOn(t time.Time, status string) models.Meeting {
	return models.Meeting{ScheduledDate: t, Status: status}
}

func TestFilterByBucket_Upcoming(t *testing.T) {
	yesterday := meetingOn(onDay(2025, 6, 17), models.StatusScheduled)
	// today's meeting carries a time-of-day component; day comparison must
	// still classify it as upcoming.
	today := meetingOn(time.Date(2025, 6, 18, 9, 30, 0, 0, time.Local), models.StatusScheduled)
	nextWeek := meetingOn(onDay(2025, 6, 25), models.StatusScheduled)

	got := meetingpolicy.FilterByBucket(
		[]models.Meeting{nextWeek, yesterday, today},
		meetingpolicy.BucketUpcoming, now)

	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming meetings, got %d", len(got))
	}
	if !got[0].ScheduledDate.Equal(today.ScheduledDate) {
		t.Errorf("expected today's meeting first (ascending), got %v", got[0].ScheduledDate)
	}
	if !got[1].ScheduledDate.Equal(nextWeek.ScheduledDate) {
		t.Errorf("expected next week's meeting last, got %v", got[1].ScheduledDate)
	}
}

func TestFilterByBucket_PastDescending(t *testing.T) {
	older := meetingOn(onDay(2025, 6, 2), models.StatusAttended)
	newer := meetingOn(onDay(2025, 6, 17), models.StatusAttended)
	today := meetingOn(onDay(2025, 6, 18), models.StatusScheduled)

	got := meetingpolicy.FilterByBucket(
		[]models.Meeting{older, today, newer},
		meetingpolicy.BucketPast, now)

	if len(got) != 2 {
		t.Fatalf("expected 2 past meetings, got %d", len(got))
	}
	if !got[0].ScheduledDate.Equal(newer.ScheduledDate) {
		t.Errorf("expected most recent past meeting first (descending), got %v", got[0].ScheduledDate)
	}
}

func TestFilterByBucket_Today(t *testing.T) {
	morning := meetingOn(time.Date(2025, 6, 18, 8, 0, 0, 0, time.Local), models.StatusScheduled)
	evening := meetingOn(time.Date(2025, 6, 18, 19, 0, 0, 0, time.Local), models.StatusScheduled)
	tomorrow := meetingOn(onDay(2025, 6, 19), models.StatusScheduled)

	got := meetingpolicy.FilterByBucket(
		[]models.Meeting{evening, tomorrow, morning},
		meetingpolicy.BucketToday, now)

	if len(got) != 2 {
		t.Fatalf("expected 2 meetings today, got %d", len(got))
	}
	if !got[0].ScheduledDate.Equal(morning.ScheduledDate) {
		t.Errorf("expected morning meeting first, got %v", got[0].ScheduledDate)
	}
}

func TestFilterByBucket_UnknownBucketReturnsAll(t *testing.T) {
	ms := []models.Meeting{
		meetingOn(onDay(2025, 6, 10), models.StatusAttended),
		meetingOn(onDay(2025, 6, 20), models.StatusScheduled),
	}

	got := meetingpolicy.FilterByBucket(ms, meetingpolicy.Bucket("everything"), now)
	if len(got) != 2 {
		t.Fatalf("expected full list for unknown bucket, got %d", len(got))
	}
	// Catch-all default sorts descending by date.
	if !got[0].ScheduledDate.Equal(onDay(2025, 6, 20)) {
		t.Errorf("expected descending sort, got %v first", got[0].ScheduledDate)
	}
}

func TestParseBucket(t *testing.T) {
	cases := []struct {
		raw  string
		want meetingpolicy.Bucket
	}{
		{"upcoming", meetingpolicy.BucketUpcoming},
		{"past", meetingpolicy.BucketPast},
		{"today", meetingpolicy.BucketToday},
		{"", meetingpolicy.BucketAll},
		{"everything", meetingpolicy.BucketAll},
	}
	for _, c := range cases {
		if got := meetingpolicy.ParseBucket(c.raw); got != c.want {
			t.Errorf("ParseBucket(%q): got %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	cases := []struct {
		name    string
		meeting models.Meeting
		want    bool
	}{
		{"past scheduled", meetingOn(onDay(2025, 6, 17), models.StatusScheduled), true},
		{"past pending-review", meetingOn(onDay(2025, 6, 10), models.StatusPendingReview), true},
		{"past missed still overdue", meetingOn(onDay(2025, 6, 10), models.StatusMissed), true},
		{"past attended", meetingOn(onDay(2025, 6, 17), models.StatusAttended), false},
		{"past legacy completed", meetingOn(onDay(2025, 6, 17), models.LegacyCompleted), false},
		{"past cancelled", meetingOn(onDay(2025, 6, 17), models.StatusCancelled), false},
		{"today scheduled", meetingOn(onDay(2025, 6, 18), models.StatusScheduled), false},
		{"future scheduled", meetingOn(onDay(2025, 7, 1), models.StatusScheduled), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := meetingpolicy.IsOverdue(tc.meeting, now); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsToday_IgnoresTimeComponent(t *testing.T) {
	m := meetingOn(time.Date(2025, 6, 18, 23, 59, 0, 0, time.Local), models.StatusScheduled)
	if !meetingpolicy.IsToday(m, now) {
		t.Error("expected meeting later today to count as today")
	}
	if meetingpolicy.IsToday(meetingOn(onDay(2025, 6, 19), models.StatusScheduled), now) {
		t.Error("tomorrow's meeting should not count as today")
	}
}

func TestNeedsAttention(t *testing.T) {
	pastPending := meetingOn(onDay(2025, 6, 1), models.StatusPendingReview)
	futurePending := meetingOn(onDay(2025, 7, 1), models.StatusPendingReview)
	selfReported := meetingOn(onDay(2025, 6, 10), models.StatusScheduled)
	selfReported.StudentSelfReported = true
	plainScheduled := meetingOn(onDay(2025, 6, 10), models.StatusScheduled)
	cancelled := meetingOn(onDay(2025, 6, 10), models.StatusCancelled)
	alreadyMarked := meetingOn(onDay(2025, 6, 10), models.StatusPendingReview)
	alreadyMarked.AttendanceMarked = true

	got := meetingpolicy.NeedsAttention([]models.Meeting{
		pastPending, futurePending, selfReported, plainScheduled, cancelled, alreadyMarked,
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 meetings needing attention, got %d", len(got))
	}
	for _, m := range got {
		if m.AttendanceMarked {
			t.Error("attendance-marked meeting must not need attention")
		}
		if models.CanonicalStatus(m.Status) == models.StatusCancelled {
			t.Error("cancelled meeting must not need attention")
		}
	}
}

func TestAttendanceCounts_AggregatesSynonyms(t *testing.T) {
	ms := []models.Meeting{
		{Status: "attended"},
		{Status: "completed"},
		{Status: "missed"},
		{Status: "no-show"},
		{Status: "scheduled"},
		{Status: "cancelled"},
	}

	c := meetingpolicy.AttendanceCounts(ms)

	if c.Total != 6 {
		t.Errorf("Total: got %d, want 6", c.Total)
	}
	if c.Attended != 2 {
		t.Errorf("Attended: got %d, want 2 (attended + completed)", c.Attended)
	}
	if c.Missed != 2 {
		t.Errorf("Missed: got %d, want 2 (missed + no-show)", c.Missed)
	}
	if c.Scheduled != 1 {
		t.Errorf("Scheduled: got %d, want 1", c.Scheduled)
	}
	if c.Cancelled != 1 {
		t.Errorf("Cancelled: got %d, want 1", c.Cancelled)
	}
	if c.PendingReview != 0 {
		t.Errorf("PendingReview: got %d, want 0", c.PendingReview)
	}
}

func TestAttendanceCounts_UnrecognizedStatusCountsOnlyInTotal(t *testing.T) {
	c := meetingpolicy.AttendanceCounts([]models.Meeting{
		{Status: "attended"},
		{Status: "something-else"},
	})

	if c.Total != 2 {
		t.Errorf("Total: got %d, want 2", c.Total)
	}
	sub := c.Attended + c.Missed + c.Scheduled + c.PendingReview + c.Cancelled
	if sub != 1 {
		t.Errorf("sub-count sum: got %d, want 1", sub)
	}
}

func TestDayOf(t *testing.T) {
	d := meetingpolicy.DayOf(time.Date(2025, 6, 18, 23, 59, 59, 999, time.Local))
	want := time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local)
	if !d.Equal(want) {
		t.Errorf("DayOf: got %v, want %v", d, want)
	}
}
