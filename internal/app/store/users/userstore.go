// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/advisehub/internal/app/system/status"
	"github.com/dalemusser/advisehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	ErrNotFound       = errors.New("user not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.FullNameCI = text.Fold(u.FullName)
	u.EmailCI = text.Fold(u.Email)
	if u.Status == "" {
		u.Status = status.Active
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks a user up by case-folded email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// ByRole returns active users of a role, sorted by folded name.
func (s *Store) ByRole(ctx context.Context, role string) ([]models.User, error) {
	return s.find(ctx, bson.M{"role": role, "status": status.Active})
}

// StudentsByAdvisor returns the active students assigned to an advisor.
func (s *Store) StudentsByAdvisor(ctx context.Context, advisorID primitive.ObjectID) ([]models.User, error) {
	return s.find(ctx, bson.M{
		"role":       models.RoleStudent,
		"advisor_id": advisorID,
		"status":     status.Active,
	})
}

// ByIDs returns the users matching the given ids, in folded-name order.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// AssignAdvisor links a student to an advisor.
func (s *Store) AssignAdvisor(ctx context.Context, studentID, advisorID primitive.ObjectID) error {
	return s.updateOne(ctx, studentID, bson.M{
		"advisor_id": advisorID,
		"updated_at": time.Now().UTC(),
	})
}

// SetPassword stores a new bcrypt password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return s.updateOne(ctx, id, bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	})
}

// SetRole changes an account's role.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	return s.updateOne(ctx, id, bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	})
}

// SetStatus activates or disables an account.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, stat string) error {
	return s.updateOne(ctx, id, bson.M{
		"status":     stat,
		"updated_at": time.Now().UTC(),
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

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
