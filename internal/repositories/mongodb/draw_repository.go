package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DrawRepository implements repositories.DrawRepository backed by the
// "draws" collection. The collection carries a unique index on drawDate,
// which is what guarantees at most one draw per calendar date even under
// concurrent creation.
type DrawRepository struct {
	collection *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository.
func NewDrawRepository(db *mongo.Database) repositories.DrawRepository {
	return &DrawRepository{
		collection: db.Collection("draws"),
	}
}

// Create inserts a new draw.
func (r *DrawRepository) Create(ctx context.Context, draw *models.Draw) error {
	draw.CreatedAt = time.Now()
	draw.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, draw)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("draw for %s: %w", draw.DrawDate.Format("2006-01-02"), apperrors.ErrDuplicate)
		}
		return err
	}
	draw.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a draw by ID.
func (r *DrawRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	var draw models.Draw
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&draw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("draw %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &draw, nil
}

// FindByDate finds the draw whose drawDate falls on the given calendar day.
func (r *DrawRepository) FindByDate(ctx context.Context, date time.Time) (*models.Draw, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	filter := bson.M{
		"drawDate": bson.M{
			"$gte": startOfDay,
			"$lt":  endOfDay,
		},
	}
	var draw models.Draw
	err := r.collection.FindOne(ctx, filter).Decode(&draw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("draw for %s: %w", startOfDay.Format("2006-01-02"), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &draw, nil
}

// SetWinner records the winner with a conditional update so that two
// concurrent resolutions cannot both win: the filter only matches while
// winnerId is still unset.
func (r *DrawRepository) SetWinner(ctx context.Context, drawID, participantID primitive.ObjectID) error {
	filter := bson.M{"_id": drawID, "winnerId": nil}
	update := bson.M{"$set": bson.M{
		"winnerId":  participantID,
		"updatedAt": time.Now(),
	}}
	err := r.collection.FindOneAndUpdate(ctx, filter, update).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	// Disambiguate: the draw is either resolved already or absent.
	if _, findErr := r.FindByID(ctx, drawID); findErr != nil {
		return findErr
	}
	return fmt.Errorf("draw %s: %w", drawID.Hex(), apperrors.ErrAlreadyResolved)
}

// CountByWinner counts draws won by the given participant.
func (r *DrawRepository) CountByWinner(ctx context.Context, participantID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"winnerId": participantID})
}

// Delete deletes a draw by ID.
func (r *DrawRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("draw %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// FindAll lists draws in insertion order with offset pagination.
func (r *DrawRepository) FindAll(ctx context.Context, offset, limit int64) ([]*models.Draw, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1}).SetSkip(offset).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var draws []*models.Draw
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, err
	}
	if draws == nil {
		draws = []*models.Draw{}
	}
	return draws, nil
}
