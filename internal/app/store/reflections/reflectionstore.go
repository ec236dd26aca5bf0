// internal/app/store/reflections/reflectionstore.go
package reflectionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/advisehub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("reflection not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reflections")}
}

func (s *Store) Create(ctx context.Context, r models.Reflection) (models.Reflection, error) {
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Reflection{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Reflection, error) {
	var r models.Reflection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Reflection{}, ErrNotFound
		}
		return models.Reflection{}, err
	}
	return r, nil
}

// ByStudent returns a student's reflections, newest first.
func (s *Store) ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Reflection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Reflection
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByMeeting returns reflections linked to a meeting.
func (s *Store) ByMeeting(ctx context.Context, meetingID primitive.ObjectID) ([]models.Reflection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"meeting_id": meetingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Reflection
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
