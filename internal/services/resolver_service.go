package services

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ResolverServiceImpl implements ResolverService
var _ ResolverService = (*ResolverServiceImpl)(nil)

// ResolutionOutcome classifies what a resolution cycle did.
type ResolutionOutcome string

const (
	// OutcomeWinnerSelected means this cycle picked and recorded a winner.
	OutcomeWinnerSelected ResolutionOutcome = "WINNER_SELECTED"
	// OutcomeAlreadyResolved means the draw already had a winner, either
	// from an earlier cycle or from a concurrent resolver that won the race.
	OutcomeAlreadyResolved ResolutionOutcome = "ALREADY_RESOLVED"
	// OutcomeNoOpenDraw means no draw existed for today. The resolver opens
	// one so casting can start, but there was nothing to resolve.
	OutcomeNoOpenDraw ResolutionOutcome = "NO_OPEN_DRAW"
)

// Resolution summarizes one resolution cycle.
type Resolution struct {
	Outcome  ResolutionOutcome   `json:"outcome"`
	Draw     *models.Draw        `json:"draw,omitempty"`
	WinnerID *primitive.ObjectID `json:"winnerId,omitempty"`
	NextDraw *models.Draw        `json:"nextDraw,omitempty"`
}

// ResolverServiceImpl runs the daily draw resolution workflow. It touches
// storage only through the draw ledger and ballot book interfaces, so it
// can be exercised against any store.
type ResolverServiceImpl struct {
	drawService   DrawService
	ballotService BallotService
}

// NewResolverService creates a new ResolverServiceImpl.
func NewResolverService(drawService DrawService, ballotService BallotService) *ResolverServiceImpl {
	return &ResolverServiceImpl{
		drawService:   drawService,
		ballotService: ballotService,
	}
}

// ResolveAndAdvance resolves today's open draw and opens the next cycle.
//
// An empty ballot pool is the one expected business failure: it is
// reported as apperrors.ErrNoBallotsCast and the draw stays pending.
// Tomorrow's draw is opened regardless of how resolution went, so casting
// can resume immediately after midnight.
func (s *ResolverServiceImpl) ResolveAndAdvance(ctx context.Context) (*Resolution, error) {
	draw, err := s.drawService.GetOpenDraw(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch open draw: %w", err)
		}
		// First-ever run, or the previous cycle failed to open today's
		// draw. Nothing to resolve; open today's draw so casting can start.
		slog.Warn("No open draw to resolve, opening one")
		todayDraw, ensureErr := s.drawService.EnsureDraw(ctx, time.Now())
		if ensureErr != nil {
			return nil, fmt.Errorf("failed to open bootstrap draw: %w", ensureErr)
		}
		return &Resolution{Outcome: OutcomeNoOpenDraw, NextDraw: todayDraw}, nil
	}

	resolution := &Resolution{Draw: draw}
	switch {
	case draw.WinnerID != nil:
		// Idempotent guard: never re-resolve.
		slog.Info("Draw already resolved, skipping winner selection", "drawId", draw.ID, "winnerId", *draw.WinnerID)
		resolution.Outcome = OutcomeAlreadyResolved
		resolution.WinnerID = draw.WinnerID

	default:
		ballots, listErr := s.ballotService.GetBallotsByDrawID(ctx, draw.ID)
		if listErr != nil {
			return nil, fmt.Errorf("failed to list ballots for draw %s: %w", draw.ID.Hex(), listErr)
		}
		if len(ballots) == 0 {
			slog.Error("No ballots cast for draw, leaving it pending", "drawId", draw.ID, "date", draw.DrawDate.Format("2006-01-02"))
			if nextDraw, ensureErr := s.advance(ctx, draw); ensureErr == nil {
				resolution.NextDraw = nextDraw
			}
			return resolution, fmt.Errorf("draw %s: %w", draw.ID.Hex(), apperrors.ErrNoBallotsCast)
		}

		winner, pickErr := pickBallot(ballots)
		if pickErr != nil {
			return nil, pickErr
		}
		setErr := s.drawService.SetWinner(ctx, draw.ID, winner.ParticipantID)
		switch {
		case setErr == nil:
			slog.Info("Draw resolved",
				"drawId", draw.ID,
				"ballotId", winner.ID,
				"winnerId", winner.ParticipantID,
				"ballotCount", len(ballots))
			winnerID := winner.ParticipantID
			resolution.Outcome = OutcomeWinnerSelected
			resolution.WinnerID = &winnerID
			draw.WinnerID = &winnerID
		case errors.Is(setErr, apperrors.ErrAlreadyResolved):
			// A concurrent resolver won the race; its winner stands.
			slog.Warn("Draw was resolved concurrently, keeping recorded winner", "drawId", draw.ID)
			resolved, findErr := s.drawService.GetDrawByID(ctx, draw.ID)
			if findErr != nil {
				return nil, findErr
			}
			resolution.Outcome = OutcomeAlreadyResolved
			resolution.Draw = resolved
			resolution.WinnerID = resolved.WinnerID
		default:
			return nil, fmt.Errorf("failed to record winner for draw %s: %w", draw.ID.Hex(), setErr)
		}
	}

	nextDraw, err := s.advance(ctx, draw)
	if err != nil {
		return resolution, err
	}
	resolution.NextDraw = nextDraw
	return resolution, nil
}

// advance opens the draw for the calendar day after the given draw.
func (s *ResolverServiceImpl) advance(ctx context.Context, draw *models.Draw) (*models.Draw, error) {
	nextDraw, err := s.drawService.EnsureDraw(ctx, draw.DrawDate.AddDate(0, 0, 1))
	if err != nil {
		slog.Error("Failed to open next draw", "error", err, "afterDrawId", draw.ID)
		return nil, fmt.Errorf("failed to open next draw: %w", err)
	}
	return nextDraw, nil
}

// pickBallot selects one ballot uniformly at random. Every ballot has the
// same 1/N probability; a participant with multiple ballots is
// proportionally more likely to win.
func pickBallot(ballots []*models.Ballot) (*models.Ballot, error) {
	n, err := crand.Int(crand.Reader, big.NewInt(int64(len(ballots))))
	if err != nil {
		return nil, fmt.Errorf("failed to draw random ballot index: %w", err)
	}
	return ballots[n.Int64()], nil
}
