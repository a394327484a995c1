package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantRepository is an in-memory repositories.RestaurantRepository.
type RestaurantRepository struct {
	mu          sync.RWMutex
	restaurants []*models.Restaurant
}

// NewRestaurantRepository creates an empty in-memory restaurant store.
func NewRestaurantRepository() repositories.RestaurantRepository {
	return &RestaurantRepository{}
}

func (r *RestaurantRepository) Create(_ context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.restaurants {
		if existing.Name == restaurant.Name {
			return fmt.Errorf("restaurant %q: %w", restaurant.Name, apperrors.ErrDuplicate)
		}
	}
	restaurant.ID = primitive.NewObjectID()
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = time.Now()
	stored := *restaurant
	r.restaurants = append(r.restaurants, &stored)
	return nil
}

func (r *RestaurantRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, restaurant := range r.restaurants {
		if restaurant.ID == id {
			found := *restaurant
			return &found, nil
		}
	}
	return nil, fmt.Errorf("restaurant %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *RestaurantRepository) FindByName(_ context.Context, name string) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, restaurant := range r.restaurants {
		if restaurant.Name == name {
			found := *restaurant
			return &found, nil
		}
	}
	return nil, fmt.Errorf("restaurant %q: %w", name, apperrors.ErrNotFound)
}

func (r *RestaurantRepository) Find(_ context.Context, filter models.RestaurantFilter) ([]*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Restaurant
	for _, restaurant := range r.restaurants {
		if filter.Name != "" && restaurant.Name != filter.Name {
			continue
		}
		if filter.Cuisine != "" && restaurant.Cuisine != filter.Cuisine {
			continue
		}
		copied := *restaurant
		matched = append(matched, &copied)
	}
	if filter.OrderByRating {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Rating > matched[j].Rating
		})
	}
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	if matched == nil {
		matched = []*models.Restaurant{}
	}
	return matched, nil
}

func (r *RestaurantRepository) Update(_ context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.restaurants {
		if existing.ID != restaurant.ID && existing.Name == restaurant.Name {
			return fmt.Errorf("restaurant %q: %w", restaurant.Name, apperrors.ErrDuplicate)
		}
	}
	for i, existing := range r.restaurants {
		if existing.ID == restaurant.ID {
			restaurant.UpdatedAt = time.Now()
			stored := *restaurant
			r.restaurants[i] = &stored
			return nil
		}
	}
	return fmt.Errorf("restaurant %s: %w", restaurant.ID.Hex(), apperrors.ErrNotFound)
}

func (r *RestaurantRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, restaurant := range r.restaurants {
		if restaurant.ID == id {
			r.restaurants = append(r.restaurants[:i], r.restaurants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("restaurant %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *RestaurantRepository) FindAll(_ context.Context, offset, limit int64) ([]*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pagePointers(r.restaurants, offset, limit), nil
}
