package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"github.com/midnighthq/lottery-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl handles the draw ledger: the sequence of daily draws and
// the one-draw-per-date rule. "Today" is evaluated in the configured
// lottery timezone.
type DrawServiceImpl struct {
	drawRepo        repositories.DrawRepository
	participantRepo repositories.ParticipantRepository
	loc             *time.Location
}

// NewDrawService creates a new DrawServiceImpl.
func NewDrawService(
	drawRepo repositories.DrawRepository,
	participantRepo repositories.ParticipantRepository,
	loc *time.Location,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		drawRepo:        drawRepo,
		participantRepo: participantRepo,
		loc:             loc,
	}
}

// CreateDraw opens today's draw with create-strict semantics. The unique
// index on the draw date is what actually rejects a concurrent duplicate.
func (s *DrawServiceImpl) CreateDraw(ctx context.Context) (*models.Draw, error) {
	today := utils.Today(s.loc)
	draw := &models.Draw{DrawDate: today}
	if err := s.drawRepo.Create(ctx, draw); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("a draw with date %q already exists: %w", today.Format("2006-01-02"), apperrors.ErrDuplicate)
		}
		slog.Error("Failed to create draw", "error", err, "date", today.Format("2006-01-02"))
		return nil, fmt.Errorf("failed to create draw: %w", err)
	}
	slog.Info("Draw opened", "drawId", draw.ID, "date", today.Format("2006-01-02"))
	return draw, nil
}

// EnsureDraw opens a draw for the given date if none exists yet. A
// concurrent creator winning the race is fine; the existing draw is
// fetched and returned.
func (s *DrawServiceImpl) EnsureDraw(ctx context.Context, date time.Time) (*models.Draw, error) {
	day := utils.StartOfDay(date, s.loc)
	draw, err := s.drawRepo.FindByDate(ctx, day)
	if err == nil {
		return draw, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up draw for %s: %w", day.Format("2006-01-02"), err)
	}

	draw = &models.Draw{DrawDate: day}
	createErr := s.drawRepo.Create(ctx, draw)
	if createErr == nil {
		slog.Info("Draw opened", "drawId", draw.ID, "date", day.Format("2006-01-02"))
		return draw, nil
	}
	if errors.Is(createErr, apperrors.ErrDuplicate) {
		return s.drawRepo.FindByDate(ctx, day)
	}
	return nil, fmt.Errorf("failed to open draw for %s: %w", day.Format("2006-01-02"), createErr)
}

// GetOpenDraw returns today's draw, pending or not. Callers casting
// ballots get a not-found error until the lottery is created for today.
func (s *DrawServiceImpl) GetOpenDraw(ctx context.Context) (*models.Draw, error) {
	today := utils.Today(s.loc)
	draw, err := s.drawRepo.FindByDate(ctx, today)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("a lottery with date %q has not been created yet: %w", today.Format("2006-01-02"), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return draw, nil
}

// GetDrawByID retrieves a draw by its ID.
func (s *DrawServiceImpl) GetDrawByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	return s.drawRepo.FindByID(ctx, id)
}

// SetWinner records the winning participant on a pending draw. The write
// is conditional on the winner still being unset, so a recorded winner is
// never overwritten by a second resolution attempt.
func (s *DrawServiceImpl) SetWinner(ctx context.Context, drawID, participantID primitive.ObjectID) error {
	if _, err := s.participantRepo.FindByID(ctx, participantID); err != nil {
		return err
	}
	if err := s.drawRepo.SetWinner(ctx, drawID, participantID); err != nil {
		return err
	}
	slog.Info("Draw winner recorded", "drawId", drawID, "winnerId", participantID)
	return nil
}

// DeleteDraw removes a draw.
func (s *DrawServiceImpl) DeleteDraw(ctx context.Context, id primitive.ObjectID) error {
	return s.drawRepo.Delete(ctx, id)
}

// GetAllDraws lists draws in insertion order.
func (s *DrawServiceImpl) GetAllDraws(ctx context.Context, offset, limit int64) ([]*models.Draw, error) {
	return s.drawRepo.FindAll(ctx, offset, limit)
}
