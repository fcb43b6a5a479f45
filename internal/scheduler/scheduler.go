// Package scheduler ties the sweep to the wall clock.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"telegram-task-bot/internal/engine"
)

// Start runs the engine sweep every period. Singleton mode makes sure a
// slow tick is never overlapped by the next one; the engine's own lock is
// the second line of defense.
func Start(e *engine.Engine, period time.Duration, clock clockwork.Clock, log zerolog.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(period),
		gocron.NewTask(func() {
			e.Sweep(clock.Now())
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	log.Info().Dur("period", period).Msg("sweep scheduled")
	return s, nil
}
