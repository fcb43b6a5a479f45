// Package engine holds the reminder scheduling core: one Sweep pass decides,
// for every unfinished task, whether its question and reminder channels fire
// and where their next-fire timestamps move.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-task-bot/internal/models"
)

// reminderFallback bumps next_reminder_at when no question interval is set.
const reminderFallback = time.Minute

// SnoozeOffset is how far a snooze pushes both channels, anchored at the
// stored next_reminder_at.
const SnoozeOffset = 10 * time.Minute

// Store is the slice of the task table the engine is allowed to touch:
// the non-done scan and the scheduling fields.
type Store interface {
	ListActiveTasks() ([]models.Task, error)
	GetTask(id int64) (*models.Task, error)
	SetNextQuestionAt(id int64, at string) error
	SetNextReminderAt(id int64, at string) error
	SetQuestionPrefs(id int64, intervalMin int64, nextQuestionAt string) error
	DisableQuestions(id int64) error
}

// Dispatcher delivers notifications. Implementations must not block the
// caller on transport I/O; the sweep calls these inline.
type Dispatcher interface {
	SendQuestion(t models.Task)
	SendReminder(t models.Task)
}

type Engine struct {
	store Store
	disp  Dispatcher
	log   zerolog.Logger

	mu sync.Mutex // serializes sweeps; a tick that finds one running is skipped
}

func New(store Store, disp Dispatcher, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		disp:  disp,
		log:   log.With().Str("component", "engine").Logger(),
	}
}

// Sweep runs one tick at the given time. Every decision derives from
// persisted state, so a crash mid-sweep just re-evaluates on the next tick.
// Per-task failures are logged and skipped, never aborting the pass.
func (e *Engine) Sweep(now time.Time) {
	if !e.mu.TryLock() {
		e.log.Warn().Msg("sweep still running, skipping tick")
		return
	}
	defer e.mu.Unlock()

	tasks, err := e.store.ListActiveTasks()
	if err != nil {
		e.log.Error().Err(err).Msg("sweep: listing tasks")
		return
	}
	e.log.Debug().Int("tasks", len(tasks)).Time("now", now).Msg("sweep")

	for i := range tasks {
		e.sweepTask(&tasks[i], now)
	}
}

// sweepTask evaluates both channels for one task. The checks are orthogonal:
// a question and a reminder may both go out on the same tick.
func (e *Engine) sweepTask(t *models.Task, now time.Time) {
	nextQ, hasQ := e.parseField(t.ID, "next_question_at", t.NextQuestionAt)

	// An absent or corrupt reminder timestamp reads as due right now:
	// fail open toward over-notifying rather than going dark.
	nextR, hasR := e.parseField(t.ID, "next_reminder_at", t.NextReminderAt)
	if !hasR {
		nextR = now
	}

	// Questions are a pre-deadline nudge; once the reminder phase of the
	// current cycle has begun they stay quiet.
	if t.QuestionEnabled && hasQ && !nextQ.After(now) && nextR.After(now) {
		e.disp.SendQuestion(*t)
		adv := nextQ.Add(time.Duration(t.QuestionInterval) * time.Minute)
		if err := e.store.SetNextQuestionAt(t.ID, models.FormatStamp(adv)); err != nil {
			e.log.Error().Err(err).Int64("task", t.ID).Msg("advancing next_question_at")
		}
	}

	if !nextR.After(now) {
		e.disp.SendReminder(*t)
		bump := reminderFallback
		if t.QuestionInterval > 0 {
			bump = time.Duration(t.QuestionInterval) * time.Minute
		}
		// Anchor at the previous value, not now: firing times form an
		// arithmetic progression regardless of sweep jitter.
		if err := e.store.SetNextReminderAt(t.ID, models.FormatStamp(nextR.Add(bump))); err != nil {
			e.log.Error().Err(err).Int64("task", t.ID).Msg("advancing next_reminder_at")
		}
	}
}

// parseField reads a stored timestamp leniently: empty means absent, and a
// malformed value is logged and treated the same way.
func (e *Engine) parseField(taskID int64, field, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := models.ParseStamp(raw)
	if err != nil {
		e.log.Warn().Int64("task", taskID).Str("field", field).Str("value", raw).
			Msg("malformed stored timestamp, treating as absent")
		return time.Time{}, false
	}
	return ts, true
}

// SetQuestionPrefs is the command layer's one entry point into the question
// channel. Enabling restarts the progression at now+interval; disabling
// clears the next-fire mark but keeps the stored interval remembered. The
// reminder channel is untouched either way.
func (e *Engine) SetQuestionPrefs(taskID int64, interval time.Duration, now time.Time) error {
	minutes := int64(interval / time.Minute)
	if minutes > 0 {
		next := models.FormatStamp(now.Add(interval))
		return e.store.SetQuestionPrefs(taskID, minutes, next)
	}
	return e.store.DisableQuestions(taskID)
}

// Snooze pushes both channels forward by SnoozeOffset, anchored at the
// stored next_reminder_at rather than the moment the button was pressed.
func (e *Engine) Snooze(taskID int64, now time.Time) error {
	t, err := e.store.GetTask(taskID)
	if err != nil {
		return err
	}
	if t == nil || t.IsDone {
		return nil
	}
	nextR, hasR := e.parseField(t.ID, "next_reminder_at", t.NextReminderAt)
	if !hasR {
		nextR = now
	}
	target := models.FormatStamp(nextR.Add(SnoozeOffset))
	if err := e.store.SetNextReminderAt(t.ID, target); err != nil {
		return err
	}
	if t.QuestionEnabled && t.NextQuestionAt != "" {
		return e.store.SetNextQuestionAt(t.ID, target)
	}
	return nil
}
