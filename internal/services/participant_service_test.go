package services

import (
	"context"
	"errors"
	"testing"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParticipantRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a participant", func(t *testing.T) {
		f := newFixture()
		participant := f.register(t, "Alice", "alice@example.com")
		if participant.ID.IsZero() {
			t.Error("expected a generated ID")
		}
		if participant.Name != "Alice" || participant.Email != "alice@example.com" {
			t.Errorf("unexpected participant: %+v", participant)
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		f := newFixture()
		f.register(t, "Alice", "alice@example.com")
		_, err := f.participants.Register(ctx, "Alice Again", "alice@example.com")
		if !errors.Is(err, apperrors.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		f := newFixture()
		_, err := f.participants.Register(ctx, "   ", "alice@example.com")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		f := newFixture()
		_, err := f.participants.Register(ctx, "Alice", "not-an-email")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestParticipantUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges only the provided fields", func(t *testing.T) {
		f := newFixture()
		participant := f.register(t, "Alice", "alice@example.com")

		newName := "Alice B"
		updated, err := f.participants.UpdateParticipant(ctx, participant.ID, models.ParticipantUpdate{Name: &newName})
		if err != nil {
			t.Fatalf("UpdateParticipant: %v", err)
		}
		if updated.Name != "Alice B" {
			t.Errorf("expected name to change, got %q", updated.Name)
		}
		if updated.Email != "alice@example.com" {
			t.Errorf("expected email to be untouched, got %q", updated.Email)
		}
	})

	t.Run("rejects changing to an existing email", func(t *testing.T) {
		f := newFixture()
		f.register(t, "Alice", "alice@example.com")
		bob := f.register(t, "Bob", "bob@example.com")

		taken := "alice@example.com"
		_, err := f.participants.UpdateParticipant(ctx, bob.ID, models.ParticipantUpdate{Email: &taken})
		if !errors.Is(err, apperrors.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("fails for an unknown participant", func(t *testing.T) {
		f := newFixture()
		name := "Nobody"
		_, err := f.participants.UpdateParticipant(ctx, primitive.NewObjectID(), models.ParticipantUpdate{Name: &name})
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestParticipantDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a participant without history", func(t *testing.T) {
		f := newFixture()
		participant := f.register(t, "Alice", "alice@example.com")
		if err := f.participants.DeleteParticipant(ctx, participant.ID); err != nil {
			t.Fatalf("DeleteParticipant: %v", err)
		}
		if _, err := f.participants.GetParticipantByID(ctx, participant.ID); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("refuses while the participant has ballots", func(t *testing.T) {
		f := newFixture()
		participant := f.register(t, "Alice", "alice@example.com")
		f.openToday(t)
		f.cast(t, participant.ID)

		err := f.participants.DeleteParticipant(ctx, participant.ID)
		if !errors.Is(err, apperrors.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("refuses while the participant holds a win", func(t *testing.T) {
		f := newFixture()
		participant := f.register(t, "Alice", "alice@example.com")
		draw := f.openToday(t)
		f.cast(t, participant.ID)
		if _, err := f.resolver.ResolveAndAdvance(ctx); err != nil {
			t.Fatalf("ResolveAndAdvance: %v", err)
		}

		// The ballot still blocks deletion; remove it to isolate the win check.
		ballots, err := f.ballots.GetBallotsByDrawID(ctx, draw.ID)
		if err != nil {
			t.Fatalf("GetBallotsByDrawID: %v", err)
		}
		for _, ballot := range ballots {
			if err := f.ballots.DeleteBallot(ctx, ballot.ID); err != nil {
				t.Fatalf("DeleteBallot: %v", err)
			}
		}

		err = f.participants.DeleteParticipant(ctx, participant.ID)
		if !errors.Is(err, apperrors.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestParticipantList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.register(t, "Alice", "alice@example.com")
	f.register(t, "Bob", "bob@example.com")
	f.register(t, "Carol", "carol@example.com")

	t.Run("pages in insertion order", func(t *testing.T) {
		page, err := f.participants.GetAllParticipants(ctx, 1, 1)
		if err != nil {
			t.Fatalf("GetAllParticipants: %v", err)
		}
		if len(page) != 1 || page[0].Name != "Bob" {
			t.Errorf("expected [Bob], got %+v", page)
		}
	})

	t.Run("returns empty past the end", func(t *testing.T) {
		page, err := f.participants.GetAllParticipants(ctx, 10, 5)
		if err != nil {
			t.Fatalf("GetAllParticipants: %v", err)
		}
		if len(page) != 0 {
			t.Errorf("expected empty page, got %+v", page)
		}
	})
}
