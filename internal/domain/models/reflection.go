// internal/domain/models/reflection.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reflection is a student's written reflection, optionally linked to the
// meeting it reflects on.
type Reflection struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	StudentID primitive.ObjectID  `bson:"student_id" json:"student_id"`
	MeetingID *primitive.ObjectID `bson:"meeting_id,omitempty" json:"meeting_id,omitempty"`

	Body string `bson:"body" json:"body"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
