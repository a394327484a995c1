package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BallotRepository implements repositories.BallotRepository backed by the
// "ballots" collection.
type BallotRepository struct {
	collection *mongo.Collection
}

// NewBallotRepository creates a new BallotRepository.
func NewBallotRepository(db *mongo.Database) repositories.BallotRepository {
	return &BallotRepository{
		collection: db.Collection("ballots"),
	}
}

// Create inserts a new ballot. Ballots are never updated afterwards.
func (r *BallotRepository) Create(ctx context.Context, ballot *models.Ballot) error {
	res, err := r.collection.InsertOne(ctx, ballot)
	if err != nil {
		return err
	}
	ballot.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a ballot by ID.
func (r *BallotRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ballot, error) {
	var ballot models.Ballot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ballot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("ballot %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &ballot, nil
}

// FindByDrawID lists all ballots cast into a draw, in insertion order.
func (r *BallotRepository) FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ballot, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"drawId": drawID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ballots []*models.Ballot
	if err := cursor.All(ctx, &ballots); err != nil {
		return nil, err
	}
	if ballots == nil {
		ballots = []*models.Ballot{}
	}
	return ballots, nil
}

// CountByParticipant counts ballots cast by the given participant.
func (r *BallotRepository) CountByParticipant(ctx context.Context, participantID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"participantId": participantID})
}

// Delete deletes a ballot by ID.
func (r *BallotRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("ballot %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// FindAll lists ballots in insertion order with offset pagination.
func (r *BallotRepository) FindAll(ctx context.Context, offset, limit int64) ([]*models.Ballot, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1}).SetSkip(offset).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ballots []*models.Ballot
	if err := cursor.All(ctx, &ballots); err != nil {
		return nil, err
	}
	if ballots == nil {
		ballots = []*models.Ballot{}
	}
	return ballots, nil
}
