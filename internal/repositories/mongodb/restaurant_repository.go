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

// RestaurantRepository implements repositories.RestaurantRepository backed
// by the "restaurants" collection. The collection carries a unique index
// on name.
type RestaurantRepository struct {
	collection *mongo.Collection
}

// NewRestaurantRepository creates a new RestaurantRepository.
func NewRestaurantRepository(db *mongo.Database) repositories.RestaurantRepository {
	return &RestaurantRepository{
		collection: db.Collection("restaurants"),
	}
}

// Create inserts a new restaurant.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, restaurant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("restaurant %q: %w", restaurant.Name, apperrors.ErrDuplicate)
		}
		return err
	}
	restaurant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a restaurant by ID.
func (r *RestaurantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("restaurant %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &restaurant, nil
}

// FindByName finds a restaurant by its unique name.
func (r *RestaurantRepository) FindByName(ctx context.Context, name string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("restaurant %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &restaurant, nil
}

// Find fetches restaurants matching the filter, optionally ordered by
// rating descending.
func (r *RestaurantRepository) Find(ctx context.Context, filter models.RestaurantFilter) ([]*models.Restaurant, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = filter.Name
	}
	if filter.Cuisine != "" {
		query["cuisine"] = filter.Cuisine
	}

	opts := options.Find()
	if filter.OrderByRating {
		opts.SetSort(bson.M{"rating": -1})
	} else {
		opts.SetSort(bson.M{"_id": 1})
	}
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var restaurants []*models.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []*models.Restaurant{}
	}
	return restaurants, nil
}

// Update replaces a restaurant record.
func (r *RestaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	restaurant.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": restaurant.ID}, restaurant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("restaurant %q: %w", restaurant.Name, apperrors.ErrDuplicate)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("restaurant %s: %w", restaurant.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes a restaurant by ID.
func (r *RestaurantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("restaurant %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// FindAll lists restaurants in insertion order with offset pagination.
func (r *RestaurantRepository) FindAll(ctx context.Context, offset, limit int64) ([]*models.Restaurant, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1}).SetSkip(offset).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var restaurants []*models.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []*models.Restaurant{}
	}
	return restaurants, nil
}
