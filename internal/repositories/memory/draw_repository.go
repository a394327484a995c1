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

// DrawRepository is an in-memory repositories.DrawRepository. It enforces
// the one-draw-per-date constraint and the conditional winner write under
// its own lock, mirroring the unique index and filtered update the Mongo
// implementation relies on.
type DrawRepository struct {
	mu    sync.RWMutex
	draws []*models.Draw
}

// NewDrawRepository creates an empty in-memory draw store.
func NewDrawRepository() repositories.DrawRepository {
	return &DrawRepository{}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func (r *DrawRepository) Create(_ context.Context, draw *models.Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.draws {
		if sameDay(existing.DrawDate, draw.DrawDate) {
			return fmt.Errorf("draw for %s: %w", draw.DrawDate.Format("2006-01-02"), apperrors.ErrDuplicate)
		}
	}
	draw.ID = primitive.NewObjectID()
	draw.CreatedAt = time.Now()
	draw.UpdatedAt = time.Now()
	stored := *draw
	r.draws = append(r.draws, &stored)
	return nil
}

func (r *DrawRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, draw := range r.draws {
		if draw.ID == id {
			found := *draw
			return &found, nil
		}
	}
	return nil, fmt.Errorf("draw %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *DrawRepository) FindByDate(_ context.Context, date time.Time) (*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, draw := range r.draws {
		if sameDay(draw.DrawDate, date) {
			found := *draw
			return &found, nil
		}
	}
	return nil, fmt.Errorf("draw for %s: %w", date.Format("2006-01-02"), apperrors.ErrNotFound)
}

func (r *DrawRepository) SetWinner(_ context.Context, drawID, participantID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, draw := range r.draws {
		if draw.ID != drawID {
			continue
		}
		if draw.WinnerID != nil {
			return fmt.Errorf("draw %s: %w", drawID.Hex(), apperrors.ErrAlreadyResolved)
		}
		winner := participantID
		draw.WinnerID = &winner
		draw.UpdatedAt = time.Now()
		return nil
	}
	return fmt.Errorf("draw %s: %w", drawID.Hex(), apperrors.ErrNotFound)
}

func (r *DrawRepository) CountByWinner(_ context.Context, participantID primitive.ObjectID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, draw := range r.draws {
		if draw.WinnerID != nil && *draw.WinnerID == participantID {
			count++
		}
	}
	return count, nil
}

func (r *DrawRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, draw := range r.draws {
		if draw.ID == id {
			r.draws = append(r.draws[:i], r.draws[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("draw %s: %w", id.Hex(), apperrors.ErrNotFound)
}

func (r *DrawRepository) FindAll(_ context.Context, offset, limit int64) ([]*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pagePointers(r.draws, offset, limit), nil
}
