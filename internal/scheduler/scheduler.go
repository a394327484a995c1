// Package scheduler owns the daily trigger for draw resolution. The core
// services hold no timer state; this component calls the resolver through
// its public interface, and a failed cycle only logs — the next trigger
// always fires.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/midnighthq/lottery-backend/internal/apperrors"
	"github.com/midnighthq/lottery-backend/internal/services"
	"github.com/robfig/cron/v3"
	"golang.org/x/exp/slog"
)

// resolveTimeout bounds one resolution cycle against a slow store.
const resolveTimeout = time.Minute

// Scheduler fires the draw resolver on a cron schedule in a fixed timezone.
type Scheduler struct {
	cron     *cron.Cron
	resolver services.ResolverService
}

// New creates a Scheduler that runs ResolveAndAdvance on the given cron
// spec (typically "0 0 * * *" for midnight) in loc.
func New(resolver services.ResolverService, spec string, loc *time.Location) (*Scheduler, error) {
	s := &Scheduler{
		resolver: resolver,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger{})),
		),
	}
	if _, err := s.cron.AddFunc(spec, s.runCycle); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Draw scheduler started")
}

// Stop halts the cron loop and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Draw scheduler stopped")
}

func (s *Scheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	resolution, err := s.resolver.ResolveAndAdvance(ctx)
	switch {
	case err == nil:
		slog.Info("Scheduled draw resolution completed", "outcome", resolution.Outcome)
	case errors.Is(err, apperrors.ErrNoBallotsCast):
		// Operator-facing condition, not a user error. The draw stays
		// pending; the next cycle will not fix it on its own.
		slog.Error("Scheduled draw resolution found no ballots", "error", err)
	default:
		slog.Error("Scheduled draw resolution failed", "error", err)
	}
}

// cronLogger adapts slog to the cron.Logger interface so panics recovered
// inside a cycle end up in the same log stream.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Info(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
