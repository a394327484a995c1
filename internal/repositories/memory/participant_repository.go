// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces. They back the service tests and the server when
// no MongoDB URI is configured.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantRepository is an in-memory repositories.ParticipantRepository.
type ParticipantRepository struct {
	mu           sync.RWMutex
	participants []*models.Participant
}

// NewParticipantRepository creates an empty in-memory participant store.
func NewParticipantRepository() repositories.ParticipantRepository {
	return &ParticipantRepository{}
}

func (r *ParticipantRepository) Create(_ context.Context, participant *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.Email == participant.Email {
			return fmt.Errorf("participant email %q: %w", participant.Email, apperrors.ErrDuplicate)
		}
	}
	participant.ID = primitive.NewObjectID()
	participant.CreatedAt = time.Now()
	participant.UpdatedAt = time.Now()
	stored := *participant
	r.participants = append(r.participants, &stored)
	return nil
}

func (r *ParticipantRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.participants {
		if p.ID == id {
			found := *p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("participant %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *ParticipantRepository) FindByEmail(_ context.Context, email string) (*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.participants {
		if p.Email == email {
			found := *p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("participant email %q: %w", email, apperrors.ErrNotFound)
}

func (r *ParticipantRepository) Update(_ context.Context, participant *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.ID != participant.ID && p.Email == participant.Email {
			return fmt.Errorf("participant email %q: %w", participant.Email, apperrors.ErrDuplicate)
		}
	}
	for i, p := range r.participants {
		if p.ID == participant.ID {
			participant.UpdatedAt = time.Now()
			stored := *participant
			r.participants[i] = &stored
			return nil
		}
	}
	return fmt.Errorf("participant %s: %w", participant.ID.Hex(), apperrors.ErrNotFound)
}

func (r *ParticipantRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.participants {
		if p.ID == id {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("participant %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *ParticipantRepository) FindAll(_ context.Context, offset, limit int64) ([]*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pagePointers(r.participants, offset, limit), nil
}

// pagePointers copies an offset/limit window of a slice so callers never
// alias the stored records.
func pagePointers[T any](items []*T, offset, limit int64) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset >= int64(len(items)) {
		return []*T{}
	}
	end := int64(len(items))
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := make([]*T, 0, end-offset)
	for _, item := range items[offset:end] {
		copied := *item
		page = append(page, &copied)
	}
	return page
}
