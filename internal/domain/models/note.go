// internal/domain/models/note.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment is one uploaded media file on a note.
type Attachment struct {
	Path        string `bson:"path" json:"path"`
	FileName    string `bson:"file_name" json:"file_name"`
	Size        int64  `bson:"size" json:"size"`
	ContentType string `bson:"content_type" json:"content_type"`
}

// Note is an advisor note tagged at one or more students (directly or via
// a team). The resolved selection is flattened onto the note at creation
// time; the team membership is not re-resolved afterwards.
type Note struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	AdvisorID   primitive.ObjectID `bson:"advisor_id" json:"advisor_id"`
	AdvisorName string             `bson:"advisor_name" json:"advisor_name"`

	StudentIDs   []primitive.ObjectID `bson:"student_ids" json:"student_ids"`
	StudentNames []string             `bson:"student_names" json:"student_names"`
	TeamID       *primitive.ObjectID  `bson:"team_id,omitempty" json:"team_id,omitempty"`
	TeamName     string               `bson:"team_name,omitempty" json:"team_name,omitempty"`

	// Body is sanitized HTML.
	Body        string       `bson:"body" json:"body"`
	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
