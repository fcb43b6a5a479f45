package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-task-bot/internal/messages"
	"telegram-task-bot/internal/models"
)

func TestWizardTransitionTable(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	w := &models.WizardSession{UserID: 7, ChatID: 1, Step: models.StepDescription}

	// blank description re-prompts and stays put
	errReply, next := wizardTable[models.StepDescription].apply(w, "   ", now)
	assert.Equal(t, messages.AskDescription, errReply)
	assert.Equal(t, models.StepDescription, next)

	errReply, next = wizardTable[models.StepDescription].apply(w, "write report", now)
	assert.Empty(t, errReply)
	assert.Equal(t, models.StepDue, next)
	assert.Equal(t, "write report", w.Description)

	errReply, next = wizardTable[models.StepDue].apply(w, "not a date", now)
	assert.Equal(t, messages.BadDue, errReply)
	assert.Equal(t, models.StepDue, next)

	errReply, next = wizardTable[models.StepDue].apply(w, "2026-09-01 18:00", now)
	assert.Empty(t, errReply)
	assert.Equal(t, models.StepTopic, next)
	assert.Equal(t, "2026-09-01T18:00:00", w.DueAt)

	errReply, next = wizardTable[models.StepTopic].apply(w, "quarterly", now)
	assert.Empty(t, errReply)
	assert.Equal(t, models.StepNone, next)
	assert.Equal(t, "quarterly", w.Topic)
}

func TestWizardTopicSkip(t *testing.T) {
	w := &models.WizardSession{Step: models.StepTopic}
	errReply, next := wizardTable[models.StepTopic].apply(w, "/skip", time.Now())
	assert.Empty(t, errReply)
	assert.Equal(t, models.StepNone, next)
	assert.Empty(t, w.Topic)
}

func TestWizardEditDueStep(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	w := &models.WizardSession{Step: models.StepEditDue, TaskID: 3}

	errReply, next := wizardTable[models.StepEditDue].apply(w, "??", now)
	assert.Equal(t, messages.BadDue, errReply)
	assert.Equal(t, models.StepEditDue, next)

	errReply, next = wizardTable[models.StepEditDue].apply(w, "2026-09-02T09:30", now)
	assert.Empty(t, errReply)
	assert.Equal(t, models.StepNone, next)
	assert.Equal(t, "2026-09-02T09:30:00", w.DueAt)
}

func TestParseDue(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-09-01 18:00", time.Date(2026, 9, 1, 18, 0, 0, 0, time.Local)},
		{"2026-09-01T18:00", time.Date(2026, 9, 1, 18, 0, 0, 0, time.Local)},
		{"02.10.2026 08:15", time.Date(2026, 10, 2, 8, 15, 0, 0, time.Local)},
		// bare time later today
		{"18:00", time.Date(2026, 9, 1, 18, 0, 0, 0, time.Local)},
		// bare time already past rolls to tomorrow
		{"09:00", time.Date(2026, 9, 2, 9, 0, 0, 0, time.Local)},
	}
	for _, c := range cases {
		got, ok := parseDue(c.in, now)
		require.True(t, ok, "input %q", c.in)
		assert.True(t, c.want.Equal(got), "input %q: got %v", c.in, got)
	}

	for _, in := range []string{"", "soonish", "2026-99-01 18:00"} {
		_, ok := parseDue(in, now)
		assert.False(t, ok, "input %q", in)
	}
}
