package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawStatus represents the lifecycle state of a draw.
type DrawStatus string

const (
	// DrawStatusPending means no winner has been selected yet.
	DrawStatusPending DrawStatus = "PENDING"
	// DrawStatusResolved means a winner has been recorded. Terminal.
	DrawStatusResolved DrawStatus = "RESOLVED"
)

// Draw represents one lottery cycle for a single calendar date.
// DrawDate is normalized to midnight of that date in the service timezone
// and is unique across draws.
type Draw struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	DrawDate  time.Time           `bson:"drawDate" json:"drawDate"`
	WinnerID  *primitive.ObjectID `bson:"winnerId,omitempty" json:"winnerId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Status derives the lifecycle state from the winner reference.
func (d *Draw) Status() DrawStatus {
	if d.WinnerID != nil {
		return DrawStatusResolved
	}
	return DrawStatusPending
}
