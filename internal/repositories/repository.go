package repositories

import (
	"context"
	"time"

	"github.com/midnighthq/lottery-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantRepository defines the interface for participant data operations.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	FindByEmail(ctx context.Context, email string) (*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, offset, limit int64) ([]*models.Participant, error)
}

// RestaurantRepository defines the interface for restaurant data operations.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	FindByName(ctx context.Context, name string) (*models.Restaurant, error)
	Find(ctx context.Context, filter models.RestaurantFilter) ([]*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, offset, limit int64) ([]*models.Restaurant, error)
}

// DrawRepository defines the interface for draw data operations.
type DrawRepository interface {
	Create(ctx context.Context, draw *models.Draw) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	FindByDate(ctx context.Context, date time.Time) (*models.Draw, error)
	// SetWinner records the winner on a still-pending draw. It fails with
	// apperrors.ErrAlreadyResolved when a winner is already set, so a
	// recorded winner is never overwritten.
	SetWinner(ctx context.Context, drawID, participantID primitive.ObjectID) error
	CountByWinner(ctx context.Context, participantID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, offset, limit int64) ([]*models.Draw, error)
}

// BallotRepository defines the interface for ballot data operations.
type BallotRepository interface {
	Create(ctx context.Context, ballot *models.Ballot) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ballot, error)
	FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ballot, error)
	CountByParticipant(ctx context.Context, participantID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, offset, limit int64) ([]*models.Ballot, error)
}
