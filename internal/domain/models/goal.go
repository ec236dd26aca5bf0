// internal/domain/models/goal.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal statuses.
const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalAbandoned = "abandoned"
)

// Goal is one independent-study goal a student is working toward.
type Goal struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"student_id"`

	Title      string     `bson:"title" json:"title"`
	Detail     string     `bson:"detail,omitempty" json:"detail,omitempty"`
	Status     string     `bson:"status" json:"status"`
	TargetDate *time.Time `bson:"target_date,omitempty" json:"target_date,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
