package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure RestaurantServiceImpl implements RestaurantService
var _ RestaurantService = (*RestaurantServiceImpl)(nil)

// RestaurantServiceImpl handles restaurant business logic.
type RestaurantServiceImpl struct {
	restaurantRepo repositories.RestaurantRepository
}

// NewRestaurantService creates a new RestaurantServiceImpl.
func NewRestaurantService(restaurantRepo repositories.RestaurantRepository) *RestaurantServiceImpl {
	return &RestaurantServiceImpl{
		restaurantRepo: restaurantRepo,
	}
}

func validateRating(rating float64) error {
	if rating < 0.0 || rating > 5.0 {
		return fmt.Errorf("rating %.1f is outside 0.0-5.0: %w", rating, apperrors.ErrInvalidInput)
	}
	return nil
}

// CreateRestaurant creates a new restaurant with a unique name.
func (s *RestaurantServiceImpl) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	restaurant.Name = strings.TrimSpace(restaurant.Name)
	if restaurant.Name == "" {
		return nil, fmt.Errorf("name must not be empty: %w", apperrors.ErrInvalidInput)
	}
	if err := validateRating(restaurant.Rating); err != nil {
		return nil, err
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	slog.Info("Restaurant created", "restaurantId", restaurant.ID, "name", restaurant.Name)
	return restaurant, nil
}

// GetRestaurantByID retrieves a restaurant by its ID.
func (s *RestaurantServiceImpl) GetRestaurantByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	return s.restaurantRepo.FindByID(ctx, id)
}

// SearchRestaurants fetches restaurants matching the filter.
func (s *RestaurantServiceImpl) SearchRestaurants(ctx context.Context, filter models.RestaurantFilter) ([]*models.Restaurant, error) {
	return s.restaurantRepo.Find(ctx, filter)
}

// UpdateRestaurant merges the non-nil fields of update into the record.
func (s *RestaurantServiceImpl) UpdateRestaurant(ctx context.Context, id primitive.ObjectID, update models.RestaurantUpdate) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty: %w", apperrors.ErrInvalidInput)
		}
		restaurant.Name = name
	}
	if update.Cuisine != nil {
		restaurant.Cuisine = *update.Cuisine
	}
	if update.Rating != nil {
		if err := validateRating(*update.Rating); err != nil {
			return nil, err
		}
		restaurant.Rating = *update.Rating
	}
	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// DeleteRestaurant removes a restaurant.
func (s *RestaurantServiceImpl) DeleteRestaurant(ctx context.Context, id primitive.ObjectID) error {
	return s.restaurantRepo.Delete(ctx, id)
}

// GetAllRestaurants lists restaurants in insertion order.
func (s *RestaurantServiceImpl) GetAllRestaurants(ctx context.Context, offset, limit int64) ([]*models.Restaurant, error) {
	return s.restaurantRepo.FindAll(ctx, offset, limit)
}
