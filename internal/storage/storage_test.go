package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"telegram-task-bot/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func mkTask(chatID int64, owner *int64, desc string) *models.Task {
	return &models.Task{
		ChatID:      chatID,
		OwnerID:     owner,
		Description: desc,
		DueAt:       "2026-09-01T18:00:00",
	}
}

func ptr(v int64) *int64 { return &v }

func TestDisplayNumbersArePerOwnerPerChat(t *testing.T) {
	db := newTestDB(t)

	a1 := mkTask(1, ptr(10), "a1")
	a2 := mkTask(1, ptr(10), "a2")
	b1 := mkTask(1, ptr(20), "b1")
	c1 := mkTask(2, ptr(10), "c1") // same owner, other chat
	for _, task := range []*models.Task{a1, a2, b1, c1} {
		require.NoError(t, db.CreateTask(task))
	}

	require.EqualValues(t, 1, a1.DisplayNum)
	require.EqualValues(t, 2, a2.DisplayNum)
	require.EqualValues(t, 1, b1.DisplayNum, "second owner starts from 1")
	require.EqualValues(t, 1, c1.DisplayNum, "numbering is scoped to the chat")
}

func TestCreateInitializesReminderToDue(t *testing.T) {
	db := newTestDB(t)
	task := mkTask(1, ptr(10), "x")
	require.NoError(t, db.CreateTask(task))

	got, err := db.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, task.DueAt, got.NextReminderAt)
	require.Empty(t, got.NextQuestionAt)
	require.False(t, got.QuestionEnabled)
}

func TestGetTaskByDisplay(t *testing.T) {
	db := newTestDB(t)
	task := mkTask(1, ptr(10), "findme")
	require.NoError(t, db.CreateTask(task))

	got, err := db.GetTaskByDisplay(1, 10, task.DisplayNum)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, task.ID, got.ID)

	// done rows are not addressable by display number anymore
	require.NoError(t, db.MarkDone(task.ID))
	got, err = db.GetTaskByDisplay(1, 10, task.DisplayNum)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLegacyRowsFallBackToChatOwner(t *testing.T) {
	db := newTestDB(t)
	legacy := mkTask(5, nil, "old row")
	require.NoError(t, db.CreateTask(legacy))
	require.EqualValues(t, 5, legacy.Owner())

	// visible when listing the chat id as owner
	tasks, err := db.ListTasks(5, ptr(5))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestListScopes(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateTask(mkTask(1, ptr(10), "mine")))
	require.NoError(t, db.CreateTask(mkTask(1, ptr(20), "theirs")))

	mine, err := db.ListTasks(1, ptr(10))
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := db.ListTasks(1, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListActiveSkipsDone(t *testing.T) {
	db := newTestDB(t)
	keep := mkTask(1, ptr(10), "keep")
	drop := mkTask(1, ptr(10), "drop")
	require.NoError(t, db.CreateTask(keep))
	require.NoError(t, db.CreateTask(drop))
	require.NoError(t, db.MarkDone(drop.ID))

	tasks, err := db.ListActiveTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, keep.ID, tasks[0].ID)
}

func TestDeleteTasksByOwnerScopedToChat(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateTask(mkTask(1, ptr(10), "chat1")))
	require.NoError(t, db.CreateTask(mkTask(2, ptr(10), "chat2")))

	chat := int64(1)
	require.NoError(t, db.DeleteTasksByOwner(10, &chat))
	left, err := db.ListActiveTasks()
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.EqualValues(t, 2, left[0].ChatID)

	require.NoError(t, db.DeleteTasksByOwner(10, nil))
	left, err = db.ListActiveTasks()
	require.NoError(t, err)
	require.Empty(t, left)
}

func TestSetDueAtRestartsReminderCycle(t *testing.T) {
	db := newTestDB(t)
	task := mkTask(1, ptr(10), "move me")
	require.NoError(t, db.CreateTask(task))
	require.NoError(t, db.SetNextReminderAt(task.ID, "2026-09-01T19:00:00"))

	require.NoError(t, db.SetDueAt(task.ID, "2026-09-02T12:00:00"))
	got, err := db.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, "2026-09-02T12:00:00", got.DueAt)
	require.Equal(t, "2026-09-02T12:00:00", got.NextReminderAt)
}

func TestAdminSessionsAndBlocklist(t *testing.T) {
	db := newTestDB(t)

	require.False(t, db.IsAdmin(99))
	require.NoError(t, db.UpsertAdminSession(99, "ops"))
	require.True(t, db.IsAdmin(99))
	require.NoError(t, db.DeleteAdminSession(99))
	require.False(t, db.IsAdmin(99))

	require.False(t, db.IsBlocked(50))
	require.NoError(t, db.BlockUser(50))
	require.NoError(t, db.BlockUser(50)) // idempotent
	require.True(t, db.IsBlocked(50))
	require.NoError(t, db.UnblockUser(50))
	require.False(t, db.IsBlocked(50))
}

func TestWizardRoundTrip(t *testing.T) {
	db := newTestDB(t)

	w, err := db.GetWizard(7)
	require.NoError(t, err)
	require.Nil(t, w)

	sess := &models.WizardSession{
		UserID:      7,
		ChatID:      1,
		Step:        models.StepDue,
		Description: "half-typed",
	}
	require.NoError(t, db.SaveWizard(sess))

	w, err = db.GetWizard(7)
	require.NoError(t, err)
	require.Equal(t, models.StepDue, w.Step)
	require.Equal(t, "half-typed", w.Description)

	require.NoError(t, db.DeleteWizard(7))
	w, err = db.GetWizard(7)
	require.NoError(t, err)
	require.Nil(t, w)
}

// Re-opening an existing file must not fail: the migration is create-if-
// missing plus per-column ALTERs.
func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	db, err := New(path)
	require.NoError(t, err)
	task := mkTask(1, ptr(10), "survives reopen")
	require.NoError(t, db.CreateTask(task))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, "survives reopen", got.Description)
}
