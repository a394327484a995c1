package services

import (
	"context"
	"time"

	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure BallotServiceImpl implements BallotService
var _ BallotService = (*BallotServiceImpl)(nil)

// BallotServiceImpl handles the ballot book. Ballots are validated against
// the open draw at creation time only; they are immutable afterwards.
type BallotServiceImpl struct {
	ballotRepo      repositories.BallotRepository
	participantRepo repositories.ParticipantRepository
	drawService     DrawService
}

// NewBallotService creates a new BallotServiceImpl.
func NewBallotService(
	ballotRepo repositories.BallotRepository,
	participantRepo repositories.ParticipantRepository,
	drawService DrawService,
) *BallotServiceImpl {
	return &BallotServiceImpl{
		ballotRepo:      ballotRepo,
		participantRepo: participantRepo,
		drawService:     drawService,
	}
}

// CastBallot enters a participant into today's open draw. Casting requires
// an already-opened draw; the ballot book never opens one itself.
func (s *BallotServiceImpl) CastBallot(ctx context.Context, participantID primitive.ObjectID) (*models.Ballot, error) {
	if _, err := s.participantRepo.FindByID(ctx, participantID); err != nil {
		return nil, err
	}
	openDraw, err := s.drawService.GetOpenDraw(ctx)
	if err != nil {
		return nil, err
	}

	ballot := &models.Ballot{
		ParticipantID: participantID,
		DrawID:        openDraw.ID,
		SubmittedAt:   time.Now(),
	}
	if err := s.ballotRepo.Create(ctx, ballot); err != nil {
		slog.Error("Failed to create ballot", "error", err, "participantId", participantID, "drawId", openDraw.ID)
		return nil, err
	}
	slog.Info("Ballot cast", "ballotId", ballot.ID, "participantId", participantID, "drawId", openDraw.ID)
	return ballot, nil
}

// GetBallotByID retrieves a ballot by its ID.
func (s *BallotServiceImpl) GetBallotByID(ctx context.Context, id primitive.ObjectID) (*models.Ballot, error) {
	return s.ballotRepo.FindByID(ctx, id)
}

// GetBallotsByDrawID lists all ballots cast into a draw, in insertion order.
func (s *BallotServiceImpl) GetBallotsByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Ballot, error) {
	return s.ballotRepo.FindByDrawID(ctx, drawID)
}

// DeleteBallot removes a ballot.
func (s *BallotServiceImpl) DeleteBallot(ctx context.Context, id primitive.ObjectID) error {
	return s.ballotRepo.Delete(ctx, id)
}

// GetAllBallots lists ballots in insertion order.
func (s *BallotServiceImpl) GetAllBallots(ctx context.Context, offset, limit int64) ([]*models.Ballot, error) {
	return s.ballotRepo.FindAll(ctx, offset, limit)
}
