// internal/app/store/goals/goalstore.go
package goalstore

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

var ErrNotFound = errors.New("goal not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("goals")}
}

func (s *Store) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	if g.Status == "" {
		g.Status = models.GoalActive
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Goal, error) {
	var g models.Goal
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Goal{}, ErrNotFound
		}
		return models.Goal{}, err
	}
	return g, nil
}

// ByStudent returns a student's goals, newest first.
func (s *Store) ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Goal
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves a goal between active, completed, and abandoned.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, stat string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     stat,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateInfo rewrites the goal's title, detail, and target date.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, title, detail string, target *time.Time) error {
	set := bson.M{
		"title":      title,
		"detail":     detail,
		"updated_at": time.Now().UTC(),
	}
	if target != nil {
		set["target_date"] = *target
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
