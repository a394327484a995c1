package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BallotRepository is an in-memory repositories.BallotRepository.
type BallotRepository struct {
	mu      sync.RWMutex
	ballots []*models.Ballot
}

// NewBallotRepository creates an empty in-memory ballot store.
func NewBallotRepository() repositories.BallotRepository {
	return &BallotRepository{}
}

func (r *BallotRepository) Create(_ context.Context, ballot *models.Ballot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ballot.ID = primitive.NewObjectID()
	stored := *ballot
	r.ballots = append(r.ballots, &stored)
	return nil
}

func (r *BallotRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Ballot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ballot := range r.ballots {
		if ballot.ID == id {
			found := *ballot
			return &found, nil
		}
	}
	return nil, fmt.Errorf("ballot %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *BallotRepository) FindByDrawID(_ context.Context, drawID primitive.ObjectID) ([]*models.Ballot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := []*models.Ballot{}
	for _, ballot := range r.ballots {
		if ballot.DrawID == drawID {
			copied := *ballot
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *BallotRepository) CountByParticipant(_ context.Context, participantID primitive.ObjectID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, ballot := range r.ballots {
		if ballot.ParticipantID == participantID {
			count++
		}
	}
	return count, nil
}

func (r *BallotRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ballot := range r.ballots {
		if ballot.ID == id {
			r.ballots = append(r.ballots[:i], r.ballots[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("ballot %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *BallotRepository) FindAll(_ context.Context, offset, limit int64) ([]*models.Ballot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pagePointers(r.ballots, offset, limit), nil
}
