// internal/app/store/meetings/meetingstore.go
package meetingstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/advisehub/internal/app/policy/meetingpolicy"
	"github.com/dalemusser/advisehub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("meeting not found")
	ErrUnknownStatus = errors.New("unrecognized meeting status")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("meetings")}
}

// Create inserts a new meeting record. The status is persisted in its
// canonical spelling; unrecognized statuses are rejected.
func (s *Store) Create(ctx context.Context, m models.Meeting) (models.Meeting, error) {
	if !models.KnownStatus(m.Status) {
		return models.Meeting{}, ErrUnknownStatus
	}
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.Status = models.CanonicalStatus(m.Status)
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Meeting, error) {
	var m models.Meeting
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Meeting{}, ErrNotFound
		}
		return models.Meeting{}, err
	}
	return canonical(m), nil
}

// ByStudent returns every meeting for a student, overridden records
// included, newest scheduled date first.
func (s *Store) ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Meeting, error) {
	return s.find(ctx, bson.M{"student_id": studentID})
}

// ActiveByStudent returns the student's meetings that have not been
// superseded by a later log.
func (s *Store) ActiveByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Meeting, error) {
	return s.find(ctx, bson.M{
		"student_id":    studentID,
		"overridden_by": bson.M{"$exists": false},
	})
}

// ActiveByAdvisor returns active meetings across all of an advisor's
// students.
func (s *Store) ActiveByAdvisor(ctx context.Context, advisorID primitive.ObjectID) ([]models.Meeting, error) {
	return s.find(ctx, bson.M{
		"advisor_id":    advisorID,
		"overridden_by": bson.M{"$exists": false},
	})
}

// All returns every active meeting in the system (admin views).
func (s *Store) All(ctx context.Context) ([]models.Meeting, error) {
	return s.find(ctx, bson.M{"overridden_by": bson.M{"$exists": false}})
}

// ActiveOn returns the student's active meetings scheduled on the given
// calendar day. Day boundaries follow the supplied time's location.
func (s *Store) ActiveOn(ctx context.Context, studentID primitive.ObjectID, day time.Time) ([]models.Meeting, error) {
	start := meetingpolicy.DayOf(day)
	end := start.AddDate(0, 0, 1)
	return s.find(ctx, bson.M{
		"student_id":     studentID,
		"overridden_by":  bson.M{"$exists": false},
		"scheduled_date": bson.M{"$gte": start, "$lt": end},
	})
}

// ByCalendlyEvent looks up the meeting created from an external booking
// event. Returns ErrNotFound when the event id is unknown.
func (s *Store) ByCalendlyEvent(ctx context.Context, eventID string) (models.Meeting, error) {
	var m models.Meeting
	err := s.c.FindOne(ctx, bson.M{"calendly_event_id": eventID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Meeting{}, ErrNotFound
		}
		return models.Meeting{}, err
	}
	return canonical(m), nil
}

// MarkAttendance records the advisor's confirmation of who showed up.
// The resulting status is attended when the student was present and
// missed otherwise, and the record is flagged so it drops out of the
// needs-attention views.
func (s *Store) MarkAttendance(ctx context.Context, id primitive.ObjectID, studentAttended, advisorAttended bool, notes string) error {
	now := time.Now().UTC()
	stat := models.StatusMissed
	if studentAttended {
		stat = models.StatusAttended
	}
	return s.updateOne(ctx, id, bson.M{
		"status":               stat,
		"attendance_marked":    true,
		"student_attended":     studentAttended,
		"advisor_attended":     advisorAttended,
		"attendance_notes":     notes,
		"attendance_marked_at": now,
		"updated_at":           now,
	})
}

// MarkStudentAttendance records a student's self-report. It never sets
// attendance_marked; only the advisor's confirmation does that.
func (s *Store) MarkStudentAttendance(ctx context.Context, id primitive.ObjectID, attended bool, notes string) error {
	now := time.Now().UTC()
	stat := models.StatusMissed
	if attended {
		stat = models.StatusAttended
	}
	return s.updateOne(ctx, id, bson.M{
		"status":                       stat,
		"student_attended":             attended,
		"student_self_reported":        true,
		"attendance_notes":             notes,
		"student_attendance_marked_at": now,
		"updated_at":                   now,
	})
}

// AddFeedback attaches advisor feedback and follow-ups to a meeting
// without touching its attendance state.
func (s *Store) AddFeedback(ctx context.Context, id primitive.ObjectID, feedback string, actionItems []string, nextSteps string) error {
	return s.updateOne(ctx, id, bson.M{
		"advisor_feedback": feedback,
		"action_items":     actionItems,
		"next_steps":       nextSteps,
		"updated_at":       time.Now().UTC(),
	})
}

// Cancel marks a meeting cancelled with an optional reason. Cancelled
// records stay in place; nothing is deleted.
func (s *Store) Cancel(ctx context.Context, id primitive.ObjectID, reason string) error {
	return s.updateOne(ctx, id, bson.M{
		"status":        models.StatusCancelled,
		"cancel_reason": reason,
		"updated_at":    time.Now().UTC(),
	})
}

func (s *Store) updateOne(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Meeting
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = canonical(out[i])
	}
	return out, nil
}

// canonical normalizes legacy status spellings on the way out of the
// database so the rest of the app only ever sees canonical values.
func canonical(m models.Meeting) models.Meeting {
	m.Status = models.CanonicalStatus(m.Status)
	return m
}
