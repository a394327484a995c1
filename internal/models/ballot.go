package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ballot is a single entry cast by a participant into an open draw.
// Ballots are immutable once created.
type Ballot struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ParticipantID primitive.ObjectID `bson:"participantId" json:"participantId"`
	DrawID        primitive.ObjectID `bson:"drawId" json:"drawId"`
	SubmittedAt   time.Time          `bson:"submittedAt" json:"submittedAt"`
}
