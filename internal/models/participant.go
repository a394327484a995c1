package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant represents a registered lottery participant.
type Participant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ParticipantUpdate carries the optional fields of a partial update.
// Nil fields are left untouched.
type ParticipantUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
