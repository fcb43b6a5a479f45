package scheduler

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"telegram-task-bot/internal/engine"
	"telegram-task-bot/internal/models"
	"telegram-task-bot/internal/storage"
)

type countingDispatcher struct{ reminders atomic.Int64 }

func (c *countingDispatcher) SendQuestion(models.Task) {}
func (c *countingDispatcher) SendReminder(models.Task) { c.reminders.Add(1) }

// End to end through the timer: an overdue task gets its reminder once the
// fake clock crosses the sweep period.
func TestSweepRunsOnPeriod(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	defer db.Close()

	clock := clockwork.NewFakeClock()
	task := &models.Task{
		ChatID:      1,
		Description: "overdue",
		DueAt:       models.FormatStamp(clock.Now().Add(-time.Minute)),
	}
	require.NoError(t, db.CreateTask(task))

	disp := &countingDispatcher{}
	eng := engine.New(db, disp, zerolog.Nop())

	s, err := Start(eng, time.Minute, clock, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Shutdown() }()

	for i := 0; i < 100 && disp.reminders.Load() == 0; i++ {
		clock.Advance(time.Minute)
		time.Sleep(10 * time.Millisecond)
	}
	require.GreaterOrEqual(t, disp.reminders.Load(), int64(1))
}
