package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"github.com/midnighthq/lottery-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveAndAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("selects a winner and opens tomorrow's draw", func(t *testing.T) {
		f := newFixture()
		alice := f.register(t, "Alice", "alice@example.com")
		bob := f.register(t, "Bob", "bob@example.com")
		draw := f.openToday(t)
		f.cast(t, alice.ID)
		f.cast(t, bob.ID)

		resolution, err := f.resolver.ResolveAndAdvance(ctx)
		if err != nil {
			t.Fatalf("ResolveAndAdvance: %v", err)
		}
		if resolution.Outcome != OutcomeWinnerSelected {
			t.Fatalf("expected %s, got %s", OutcomeWinnerSelected, resolution.Outcome)
		}
		if resolution.WinnerID == nil {
			t.Fatal("expected a winner")
		}
		if *resolution.WinnerID != alice.ID && *resolution.WinnerID != bob.ID {
			t.Errorf("winner %s is not one of the entrants", resolution.WinnerID.Hex())
		}

		resolved, err := f.draws.GetDrawByID(ctx, draw.ID)
		if err != nil {
			t.Fatalf("GetDrawByID: %v", err)
		}
		if resolved.Status() != models.DrawStatusResolved {
			t.Errorf("expected draw to be resolved, got %s", resolved.Status())
		}

		if resolution.NextDraw == nil {
			t.Fatal("expected tomorrow's draw to be opened")
		}
		tomorrow := utils.Today(time.UTC).AddDate(0, 0, 1)
		if !resolution.NextDraw.DrawDate.Equal(tomorrow) {
			t.Errorf("expected next draw on %v, got %v", tomorrow, resolution.NextDraw.DrawDate)
		}
		if resolution.NextDraw.Status() != models.DrawStatusPending {
			t.Errorf("next draw must start pending, got %s", resolution.NextDraw.Status())
		}
	})

	t.Run("single entrant wins", func(t *testing.T) {
		f := newFixture()
		alice := f.register(t, "Alice", "alice@example.com")
		f.openToday(t)
		f.cast(t, alice.ID)

		resolution, err := f.resolver.ResolveAndAdvance(ctx)
		if err != nil {
			t.Fatalf("ResolveAndAdvance: %v", err)
		}
		if resolution.Outcome != OutcomeWinnerSelected || resolution.WinnerID == nil || *resolution.WinnerID != alice.ID {
			t.Errorf("expected Alice to win, got %+v", resolution)
		}
	})

	t.Run("empty ballot pool leaves the draw pending and still advances", func(t *testing.T) {
		f := newFixture()
		draw := f.openToday(t)

		resolution, err := f.resolver.ResolveAndAdvance(ctx)
		if !errors.Is(err, apperrors.ErrNoBallotsCast) {
			t.Fatalf("expected ErrNoBallotsCast, got %v", err)
		}
		if resolution == nil {
			t.Fatal("expected a resolution alongside the error")
		}

		unresolved, err := f.draws.GetDrawByID(ctx, draw.ID)
		if err != nil {
			t.Fatalf("GetDrawByID: %v", err)
		}
		if unresolved.Status() != models.DrawStatusPending {
			t.Errorf("expected draw to stay pending, got %s", unresolved.Status())
		}
		if resolution.NextDraw == nil {
			t.Error("expected tomorrow's draw to be opened anyway")
		}
	})

	t.Run("no open draw bootstraps today's draw", func(t *testing.T) {
		f := newFixture()

		resolution, err := f.resolver.ResolveAndAdvance(ctx)
		if err != nil {
			t.Fatalf("ResolveAndAdvance: %v", err)
		}
		if resolution.Outcome != OutcomeNoOpenDraw {
			t.Fatalf("expected %s, got %s", OutcomeNoOpenDraw, resolution.Outcome)
		}
		if resolution.NextDraw == nil {
			t.Fatal("expected today's draw to be opened")
		}
		if !resolution.NextDraw.DrawDate.Equal(utils.Today(time.UTC)) {
			t.Errorf("expected today's date, got %v", resolution.NextDraw.DrawDate)
		}

		// Casting works immediately after the bootstrap.
		alice := f.register(t, "Alice", "alice@example.com")
		f.cast(t, alice.ID)
	})

	t.Run("repeated resolution is a no-op on the winner", func(t *testing.T) {
		f := newFixture()
		alice := f.register(t, "Alice", "alice@example.com")
		f.openToday(t)
		f.cast(t, alice.ID)

		first, err := f.resolver.ResolveAndAdvance(ctx)
		if err != nil {
			t.Fatalf("first ResolveAndAdvance: %v", err)
		}
		second, err := f.resolver.ResolveAndAdvance(ctx)
		if err != nil {
			t.Fatalf("second ResolveAndAdvance: %v", err)
		}
		if second.Outcome != OutcomeAlreadyResolved {
			t.Errorf("expected %s, got %s", OutcomeAlreadyResolved, second.Outcome)
		}
		if second.WinnerID == nil || *second.WinnerID != *first.WinnerID {
			t.Errorf("expected the recorded winner to stand, got %v", second.WinnerID)
		}
	})
}

func TestPickBallot(t *testing.T) {
	t.Run("picks from the pool", func(t *testing.T) {
		ballots := []*models.Ballot{
			{ID: primitive.NewObjectID()},
			{ID: primitive.NewObjectID()},
			{ID: primitive.NewObjectID()},
		}
		picked, err := pickBallot(ballots)
		if err != nil {
			t.Fatalf("pickBallot: %v", err)
		}
		found := false
		for _, ballot := range ballots {
			if ballot.ID == picked.ID {
				found = true
			}
		}
		if !found {
			t.Error("picked ballot is not in the pool")
		}
	})

	t.Run("every ballot is reachable", func(t *testing.T) {
		ballots := []*models.Ballot{
			{ID: primitive.NewObjectID()},
			{ID: primitive.NewObjectID()},
		}
		hits := make(map[primitive.ObjectID]int, len(ballots))
		const rounds = 10000
		for i := 0; i < rounds; i++ {
			picked, err := pickBallot(ballots)
			if err != nil {
				t.Fatalf("pickBallot: %v", err)
			}
			hits[picked.ID]++
		}
		for _, ballot := range ballots {
			count := hits[ballot.ID]
			if count == 0 {
				t.Errorf("ballot %s was never picked", ballot.ID.Hex())
			}
			// With 10k uniform picks over 2 ballots, each side should land
			// well inside 40-60%.
			if count < rounds*4/10 || count > rounds*6/10 {
				t.Errorf("ballot %s picked %d of %d times, selection looks skewed", ballot.ID.Hex(), count, rounds)
			}
		}
	})
}
