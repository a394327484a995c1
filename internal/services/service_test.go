package services

import (
	"context"
	"testing"
	"time"

	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/repositories/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixture wires the full service stack over fresh in-memory repositories.
type fixture struct {
	participants *ParticipantServiceImpl
	restaurants  *RestaurantServiceImpl
	draws        *DrawServiceImpl
	ballots      *BallotServiceImpl
	resolver     *ResolverServiceImpl
}

func newFixture() *fixture {
	participantRepo := memory.NewParticipantRepository()
	restaurantRepo := memory.NewRestaurantRepository()
	drawRepo := memory.NewDrawRepository()
	ballotRepo := memory.NewBallotRepository()

	participants := NewParticipantService(participantRepo, ballotRepo, drawRepo)
	restaurants := NewRestaurantService(restaurantRepo)
	draws := NewDrawService(drawRepo, participantRepo, time.UTC)
	ballots := NewBallotService(ballotRepo, participantRepo, draws)
	resolver := NewResolverService(draws, ballots)

	return &fixture{
		participants: participants,
		restaurants:  restaurants,
		draws:        draws,
		ballots:      ballots,
		resolver:     resolver,
	}
}

func (f *fixture) register(t *testing.T, name, email string) *models.Participant {
	t.Helper()
	participant, err := f.participants.Register(context.Background(), name, email)
	if err != nil {
		t.Fatalf("Register(%s, %s): %v", name, email, err)
	}
	return participant
}

func (f *fixture) openToday(t *testing.T) *models.Draw {
	t.Helper()
	draw, err := f.draws.CreateDraw(context.Background())
	if err != nil {
		t.Fatalf("CreateDraw: %v", err)
	}
	return draw
}

func (f *fixture) cast(t *testing.T, participantID primitive.ObjectID) *models.Ballot {
	t.Helper()
	ballot, err := f.ballots.CastBallot(context.Background(), participantID)
	if err != nil {
		t.Fatalf("CastBallot(%s): %v", participantID.Hex(), err)
	}
	return ballot
}
