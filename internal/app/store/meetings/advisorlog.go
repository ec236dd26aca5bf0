// internal/app/store/meetings/advisorlog.go
package meetingstore

import (
	"context"
	"time"

	"github.com/dalemusser/advisehub/internal/app/policy/meetingpolicy"
	"github.com/dalemusser/advisehub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdvisorLog is one advisor-logged meeting to record for a single
// student. Attended drives the resulting status (attended or missed)
// and the record is created already attendance-marked, since the
// advisor's word is the confirmation.
type AdvisorLog struct {
	StudentID   primitive.ObjectID
	StudentName string
	AdvisorID   primitive.ObjectID
	AdvisorName string
	Date        time.Time
	Attended    bool
	Notes       string
}

// composeAttendanceNotes builds the attendance_notes value for an
// advisor-logged meeting: always stamped with the advisor's name, with a
// "did not attend" suffix when the student missed, and any free-text
// notes from the form appended on their own line.
func composeAttendanceNotes(log AdvisorLog) string {
	notes := "Meeting logged by " + log.AdvisorName
	if !log.Attended {
		notes += " - student did not attend"
	}
	if log.Notes != "" {
		notes += "\n" + log.Notes
	}
	return notes
}

// LogAdvisorMeeting records an advisor-logged meeting for one student.
//
// If the student already has active records on the same calendar day,
// each one is linked to the new record via overridden_by rather than
// deleted, so exactly one active record per (student, day) remains and
// the history stays auditable. The new record wins regardless of what
// the old ones said.
func (s *Store) LogAdvisorMeeting(ctx context.Context, log AdvisorLog) (models.Meeting, error) {
	day := meetingpolicy.DayOf(log.Date)

	existing, err := s.ActiveOn(ctx, log.StudentID, day)
	if err != nil {
		return models.Meeting{}, err
	}

	stat := models.StatusMissed
	if log.Attended {
		stat = models.StatusAttended
	}
	now := time.Now().UTC()
	markedAt := now

	notes := composeAttendanceNotes(log)

	m := models.Meeting{
		ID:               primitive.NewObjectID(),
		StudentID:        log.StudentID,
		StudentName:      log.StudentName,
		AdvisorID:        log.AdvisorID,
		AdvisorName:      log.AdvisorName,
		ScheduledDate:    day,
		Status:           stat,
		Source:           models.SourceAdvisorManual,
		AttendanceMarked: true,
		StudentAttended:  log.Attended,
		AdvisorAttended:  true,
		AttendanceNotes:  notes,

		AttendanceMarkedAt: &markedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Meeting{}, err
	}

	for _, old := range existing {
		_, err := s.c.UpdateByID(ctx, old.ID, bson.M{"$set": bson.M{
			"overridden_by": m.ID,
			"updated_at":    now,
		}})
		if err != nil {
			return models.Meeting{}, err
		}
	}
	return m, nil
}
