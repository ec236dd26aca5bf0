// internal/app/policy/meetingpolicy/meetingpolicy.go
package meetingpolicy

import (
	"sort"
	"time"

	"github.com/dalemusser/advisehub/internal/domain/models"
)

// Bucket is a day-granularity classification of a meeting's date relative
// to "now": upcoming, past, or today.
type Bucket string

const (
	BucketUpcoming Bucket = "upcoming"
	BucketPast     Bucket = "past"
	BucketToday    Bucket = "today"

	// BucketAll is the catch-all: no date filtering.
	BucketAll Bucket = "all"
)

// ParseBucket maps a raw query value to a Bucket. Unrecognized values
// fold to BucketAll.
func ParseBucket(s string) Bucket {
	switch Bucket(s) {
	case BucketUpcoming, BucketPast, BucketToday:
		return Bucket(s)
	default:
		return BucketAll
	}
}

// DayOf truncates t to midnight in t's location. All bucket/overdue logic
// compares days produced by this function, never raw timestamps.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsToday reports calendar-day equality between the meeting's scheduled
// date and now, ignoring the time component of both.
func IsToday(m models.Meeting, now time.Time) bool {
	return DayOf(m.ScheduledDate).Equal(DayOf(now))
}

// IsOverdue reports whether the meeting's day is strictly before today and
// the meeting is still unresolved (not attended, not cancelled).
//
// Overdue is a derived display flag only; nothing transitions an overdue
// meeting to missed automatically.
func IsOverdue(m models.Meeting, now time.Time) bool {
	if !DayOf(m.ScheduledDate).Before(DayOf(now)) {
		return false
	}
	switch models.CanonicalStatus(m.Status) {
	case models.StatusAttended, models.StatusCancelled:
		return false
	}
	return true
}

// FilterByBucket returns the meetings whose scheduled day falls in the
// given bucket relative to now:
//
//	upcoming: day >= today, ascending by date
//	past:     day <  today, descending by date
//	today:    day == today, ascending by date
//
// Any other bucket value returns the full list sorted descending by date.
func FilterByBucket(meetings []models.Meeting, bucket Bucket, now time.Time) []models.Meeting {
	today := DayOf(now)

	var out []models.Meeting
	switch bucket {
	case BucketUpcoming:
		for _, m := range meetings {
			if !DayOf(m.ScheduledDate).Before(today) {
				out = append(out, m)
			}
		}
		sortByDate(out, true)
	case BucketPast:
		for _, m := range meetings {
			if DayOf(m.ScheduledDate).Before(today) {
				out = append(out, m)
			}
		}
		sortByDate(out, false)
	case BucketToday:
		for _, m := range meetings {
			if DayOf(m.ScheduledDate).Equal(today) {
				out = append(out, m)
			}
		}
		sortByDate(out, true)
	default:
		out = append(out, meetings...)
		sortByDate(out, false)
	}
	return out
}

func sortByDate(ms []models.Meeting, ascending bool) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ascending {
			return ms[i].ScheduledDate.Before(ms[j].ScheduledDate)
		}
		return ms[j].ScheduledDate.Before(ms[i].ScheduledDate)
	})
}

// NeedsAttention returns the meetings waiting on advisor confirmation:
// not cancelled, not yet attendance-marked, and either pending-review or
// (for records written before the pending-review status existed) scheduled
// with a student self-report.
//
// Attention is driven by confirmation state alone; a pending meeting shows
// up whether its date is in the past or the future.
func NeedsAttention(meetings []models.Meeting) []models.Meeting {
	var out []models.Meeting
	for _, m := range meetings {
		if m.AttendanceMarked {
			continue
		}
		switch models.CanonicalStatus(m.Status) {
		case models.StatusCancelled:
			continue
		case models.StatusPendingReview:
			out = append(out, m)
		case models.StatusScheduled:
			if m.StudentSelfReported {
				out = append(out, m)
			}
		}
	}
	return out
}

// Counts is the per-status attendance aggregation for a set of meetings.
// Attended aggregates both "attended" and the legacy "completed" spelling;
// Missed aggregates "missed" and "no-show". Statuses outside the
// recognized vocabulary count only toward Total.
type Counts struct {
	Total         int
	Attended      int
	Missed        int
	Scheduled     int
	PendingReview int
	Cancelled     int
}

// AttendanceCounts tallies meetings by canonical status.
func AttendanceCounts(meetings []models.Meeting) Counts {
	var c Counts
	for _, m := range meetings {
		c.Total++
		switch models.CanonicalStatus(m.Status) {
		case models.StatusAttended:
			c.Attended++
		case models.StatusMissed:
			c.Missed++
		case models.StatusScheduled:
			c.Scheduled++
		case models.StatusPendingReview:
			c.PendingReview++
		case models.StatusCancelled:
			c.Cancelled++
		}
	}
	return c
}
