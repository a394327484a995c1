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

// ParticipantRepository implements repositories.ParticipantRepository
// backed by the "participants" collection. The collection carries a unique
// index on email.
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	return &ParticipantRepository{
		collection: db.Collection("participants"),
	}
}

// Create inserts a new participant.
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	participant.CreatedAt = time.Now()
	participant.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, participant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("participant email %q: %w", participant.Email, apperrors.ErrDuplicate)
		}
		return err
	}
	participant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a participant by ID.
func (r *ParticipantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("participant %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &participant, nil
}

// FindByEmail finds a participant by email.
func (r *ParticipantRepository) FindByEmail(ctx context.Context, email string) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("participant email %q: %w", email, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &participant, nil
}

// Update replaces a participant record.
func (r *ParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	participant.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": participant.ID}, participant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("participant email %q: %w", participant.Email, apperrors.ErrDuplicate)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("participant %s: %w", participant.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes a participant by ID.
func (r *ParticipantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("participant %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// FindAll lists participants in insertion order with offset pagination.
func (r *ParticipantRepository) FindAll(ctx context.Context, offset, limit int64) ([]*models.Participant, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1}).SetSkip(offset).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []*models.Participant{}
	}
	return participants, nil
}
