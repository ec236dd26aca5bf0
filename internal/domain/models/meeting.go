// internal/domain/models/meeting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical meeting statuses. Two legacy spellings survive in previously
// persisted documents: "completed" (now "attended") and "no-show" (now
// "missed"). All reads go through CanonicalStatus so the rest of the app
// only ever compares canonical values; writes persist canonical values.
const (
	StatusScheduled     = "scheduled"
	StatusPendingReview = "pending-review"
	StatusAttended      = "attended"
	StatusMissed        = "missed"
	StatusCancelled     = "cancelled"

	// Legacy spellings, accepted on read only.
	LegacyCompleted = "completed"
	LegacyNoShow    = "no-show"
)

// Meeting sources.
const (
	SourceManual        = "manual"         // student self-logged
	SourceAdvisorManual = "advisor-manual" // advisor logged on the student's behalf
	SourceCalendly      = "calendly"       // externally booked
)

// CanonicalStatus maps legacy status spellings onto the canonical
// vocabulary. Unrecognized values pass through unchanged so callers can
// decide how to treat them (counts exclude them from sub-buckets, for
// example).
func CanonicalStatus(s string) string {
	switch s {
	case LegacyCompleted:
		return StatusAttended
	case LegacyNoShow:
		return StatusMissed
	default:
		return s
	}
}

// KnownStatus reports whether s (after canonicalization) is part of the
// recognized status vocabulary.
func KnownStatus(s string) bool {
	switch CanonicalStatus(s) {
	case StatusScheduled, StatusPendingReview, StatusAttended, StatusMissed, StatusCancelled:
		return true
	}
	return false
}

// Meeting is one advisor/student meeting record.
//
// NOTE:
//   - Records are never physically deleted in the normal flow. When an
//     advisor re-logs a date a student already has a record for, the old
//     record's OverriddenBy is set to the new record's id and the old
//     record drops out of all "active" views while remaining for audit.
//   - ScheduledDate is midnight local time for manually logged meetings;
//     externally booked meetings may carry real StartTime/EndTime, but all
//     date comparisons operate at calendar-day granularity.
type Meeting struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"student_id"`
	StudentName string             `bson:"student_name" json:"student_name"`
	AdvisorID   primitive.ObjectID `bson:"advisor_id,omitempty" json:"advisor_id,omitempty"`
	AdvisorName string             `bson:"advisor_name,omitempty" json:"advisor_name,omitempty"`

	ScheduledDate time.Time  `bson:"scheduled_date" json:"scheduled_date"`
	StartTime     *time.Time `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime       *time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`

	Status string `bson:"status" json:"status"`
	Source string `bson:"source" json:"source"`

	AttendanceMarked    bool `bson:"attendance_marked" json:"attendance_marked"`
	StudentAttended     bool `bson:"student_attended" json:"student_attended"`
	AdvisorAttended     bool `bson:"advisor_attended" json:"advisor_attended"`
	StudentSelfReported bool `bson:"student_self_reported" json:"student_self_reported"`

	AttendanceNotes string   `bson:"attendance_notes,omitempty" json:"attendance_notes,omitempty"`
	AdvisorFeedback string   `bson:"advisor_feedback,omitempty" json:"advisor_feedback,omitempty"`
	ActionItems     []string `bson:"action_items,omitempty" json:"action_items,omitempty"`
	NextSteps       string   `bson:"next_steps,omitempty" json:"next_steps,omitempty"`

	// OverriddenBy points at the newer record that supersedes this one for
	// the same (student, day). Overridden records are kept for audit and
	// excluded from all active views.
	OverriddenBy *primitive.ObjectID `bson:"overridden_by,omitempty" json:"overridden_by,omitempty"`

	CalendlyEventID string `bson:"calendly_event_id,omitempty" json:"calendly_event_id,omitempty"`
	CancelReason    string `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`

	AttendanceMarkedAt        *time.Time `bson:"attendance_marked_at,omitempty" json:"attendance_marked_at,omitempty"`
	StudentAttendanceMarkedAt *time.Time `bson:"student_attendance_marked_at,omitempty" json:"student_attendance_marked_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Active reports whether this record is the live record for its
// (student, day), meaning it has not been superseded by a later log.
func (m Meeting) Active() bool {
	return m.OverriddenBy == nil
}
