// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team is a named project group of students. Teams are used as a tagging
// target: logging a meeting or a note "for team X" fans out to every
// student on the team at the moment of the action.
type Team struct {
	ID         primitive.ObjectID   `bson:"_id" json:"id"`
	Name       string               `bson:"name" json:"name"`
	NameCI     string               `bson:"name_ci" json:"name_ci"`
	StudentIDs []primitive.ObjectID `bson:"student_ids" json:"student_ids"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
