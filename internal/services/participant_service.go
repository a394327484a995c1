package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ParticipantServiceImpl implements ParticipantService
var _ ParticipantService = (*ParticipantServiceImpl)(nil)

// ParticipantServiceImpl handles participant business logic.
type ParticipantServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	ballotRepo      repositories.BallotRepository
	drawRepo        repositories.DrawRepository
}

// NewParticipantService creates a new ParticipantServiceImpl.
func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	ballotRepo repositories.BallotRepository,
	drawRepo repositories.DrawRepository,
) *ParticipantServiceImpl {
	return &ParticipantServiceImpl{
		participantRepo: participantRepo,
		ballotRepo:      ballotRepo,
		drawRepo:        drawRepo,
	}
}

// Register creates a new participant with a unique email.
func (s *ParticipantServiceImpl) Register(ctx context.Context, name, email string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("name must not be empty: %w", apperrors.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("email %q is not valid: %w", email, apperrors.ErrInvalidInput)
	}

	participant := &models.Participant{
		Name:  name,
		Email: email,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("a participant with email %q already exists: %w", email, apperrors.ErrDuplicate)
		}
		slog.Error("Failed to create participant", "error", err, "email", email)
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	slog.Info("Participant registered", "participantId", participant.ID, "email", email)
	return participant, nil
}

// GetParticipantByID retrieves a participant by its ID.
func (s *ParticipantServiceImpl) GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	return s.participantRepo.FindByID(ctx, id)
}

// UpdateParticipant merges the non-nil fields of update into the record.
func (s *ParticipantServiceImpl) UpdateParticipant(ctx context.Context, id primitive.ObjectID, update models.ParticipantUpdate) (*models.Participant, error) {
	participant, err := s.participantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty: %w", apperrors.ErrInvalidInput)
		}
		participant.Name = name
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("email %q is not valid: %w", email, apperrors.ErrInvalidInput)
		}
		participant.Email = email
	}
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// DeleteParticipant removes a participant. Deletion is restricted while the
// participant still has ballots or is recorded as a draw winner, so draws
// and ballots never end up referencing a missing participant.
func (s *ParticipantServiceImpl) DeleteParticipant(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.participantRepo.FindByID(ctx, id); err != nil {
		return err
	}
	ballots, err := s.ballotRepo.CountByParticipant(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count ballots for participant: %w", err)
	}
	if ballots > 0 {
		return fmt.Errorf("participant %s has %d ballots: %w", id.Hex(), ballots, apperrors.ErrConflict)
	}
	wins, err := s.drawRepo.CountByWinner(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count wins for participant: %w", err)
	}
	if wins > 0 {
		return fmt.Errorf("participant %s won %d draws: %w", id.Hex(), wins, apperrors.ErrConflict)
	}
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Participant deleted", "participantId", id)
	return nil
}

// GetAllParticipants lists participants in insertion order.
func (s *ParticipantServiceImpl) GetAllParticipants(ctx context.Context, offset, limit int64) ([]*models.Participant, error) {
	return s.participantRepo.FindAll(ctx, offset, limit)
}
