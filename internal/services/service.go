package services

import (
	"context"
	"time"

	"github.com/midnighthq/lottery-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantService defines the interface for participant operations.
type ParticipantService interface {
	// Register creates a new participant. The email must be unique.
	Register(ctx context.Context, name, email string) (*models.Participant, error)

	// GetParticipantByID retrieves a participant by its ID.
	GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)

	// UpdateParticipant merges the non-nil fields of update into the record.
	UpdateParticipant(ctx context.Context, id primitive.ObjectID, update models.ParticipantUpdate) (*models.Participant, error)

	// DeleteParticipant removes a participant. Participants with ballots or
	// a recorded draw win cannot be deleted.
	DeleteParticipant(ctx context.Context, id primitive.ObjectID) error

	// GetAllParticipants lists participants in insertion order.
	GetAllParticipants(ctx context.Context, offset, limit int64) ([]*models.Participant, error)
}

// RestaurantService defines the interface for restaurant operations.
type RestaurantService interface {
	// CreateRestaurant creates a new restaurant. The name must be unique.
	CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error)

	// GetRestaurantByID retrieves a restaurant by its ID.
	GetRestaurantByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)

	// SearchRestaurants fetches restaurants matching the filter, optionally
	// ordered by rating descending.
	SearchRestaurants(ctx context.Context, filter models.RestaurantFilter) ([]*models.Restaurant, error)

	// UpdateRestaurant merges the non-nil fields of update into the record.
	UpdateRestaurant(ctx context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error)

	// DeleteRestaurant removes a restaurant.
	DeleteRestaurant(ctx context.Context, id primitive.ObjectID) error

	// GetAllRestaurants lists restaurants in insertion order.
	GetAllRestaurants(ctx context.Context, offset, limit int64) ([]*models.Restaurant, error)
}

// DrawService defines the interface for draw ledger operations.
type DrawService interface {
	// CreateDraw opens today's draw with create-strict semantics: it fails
	// when a draw for today already exists.
	CreateDraw(ctx context.Context) (*models.Draw, error)

	// EnsureDraw opens a draw for the given calendar date if none exists
	// yet and returns the draw for that date either way.
	EnsureDraw(ctx context.Context, date time.Time) (*models.Draw, error)

	// GetOpenDraw returns today's draw. It fails when the lottery has not
	// been created for today yet.
	GetOpenDraw(ctx context.Context) (*models.Draw, error)

	// GetDrawByID retrieves a draw by its ID.
	GetDrawByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)

	// SetWinner records the winning participant on a pending draw. A draw
	// that already has a winner is never overwritten.
	SetWinner(ctx context.Context, drawID, participantID primitive.ObjectID) error

	// DeleteDraw removes a draw.
	DeleteDraw(ctx context.Context, id primitive.ObjectID) error

	// GetAllDraws lists draws in insertion order.
	GetAllDraws(ctx context.Context, offset, limit int64) ([]*models.Draw, error)
}

// BallotService defines the interface for ballot book operations.
type BallotService interface {
	// CastBallot enters a participant into today's open draw.
	CastBallot(ctx context.Context, participantID primitive.ObjectID) (*models.Ballot, error)

	// GetBallotByID retrieves a ballot by its ID.
	GetBallotByID(ctx context.Context, id primitive.ObjectID) (*models.Ballot, error)

	// GetBallotsByDrawID lists all ballots cast into a draw, in insertion order.
	GetBallotsByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ballot, error)

	// DeleteBallot removes a ballot.
	DeleteBallot(ctx context.Context, id primitive.ObjectID) error

	// GetAllBallots lists ballots in insertion order.
	GetAllBallots(ctx context.Context, offset, limit int64) ([]*models.Ballot, error)
}

// ResolverService defines the interface for the daily draw resolution
// workflow.
type ResolverService interface {
	// ResolveAndAdvance selects a winner for today's open draw and opens
	// tomorrow's draw. See Resolution for the possible outcomes.
	ResolveAndAdvance(ctx context.Context) (*Resolution, error)
}
