// internal/app/store/notes/notestore.go
package notestore

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

var ErrNotFound = errors.New("note not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notes")}
}

func (s *Store) Create(ctx context.Context, n models.Note) (models.Note, error) {
	now := time.Now().UTC()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = now
	n.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Note, error) {
	var n models.Note
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// ByAdvisor returns the advisor's notes, newest first.
func (s *Store) ByAdvisor(ctx context.Context, advisorID primitive.ObjectID) ([]models.Note, error) {
	return s.find(ctx, bson.M{"advisor_id": advisorID})
}

// ByStudent returns the notes tagged at a student, newest first. Notes
// tagged via a team match because the roster was flattened onto
// student_ids at creation time.
func (s *Store) ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Note, error) {
	return s.find(ctx, bson.M{"student_ids": studentID})
}

// AddAttachments appends uploaded files to an existing note.
func (s *Store) AddAttachments(ctx context.Context, id primitive.ObjectID, atts []models.Attachment) error {
	if len(atts) == 0 {
		return nil
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"attachments": bson.M{"$each": atts}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a note by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Note
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
