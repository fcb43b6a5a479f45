package models

// Task is the central entity: something the user wants to be reminded about.
//
// DueAt, NextQuestionAt and NextReminderAt are ISO-8601 local-naive strings
// ("2006-01-02T15:04:05") at the persistence boundary; an empty string means
// NULL. The sweep parses them leniently, see internal/engine.
type Task struct {
	ID          int64   `db:"id"`
	ChatID      int64   `db:"chat_id"`
	OwnerID     *int64  `db:"owner_id"`    // nil on legacy rows -> chat id owns the task
	DisplayNum  int64   `db:"display_num"` // per-(chat, owner) sequential, user-facing
	Description string  `db:"description"`
	Topic       *string `db:"topic"`
	Subject     *string `db:"subject"`

	DueAt            string `db:"due_at"`
	IsDone           bool   `db:"is_done"`
	QuestionInterval int64  `db:"question_interval"` // minutes, 0 = off
	QuestionEnabled  bool   `db:"question_enabled"`
	NextQuestionAt   string `db:"next_question_at"` // "" = disabled
	NextReminderAt   string `db:"next_reminder_at"` // "" = due immediately
}

// Owner returns the effective owning user id, falling back to the chat id
// for rows created before per-user ownership existed.
func (t *Task) Owner() int64 {
	if t.OwnerID != nil {
		return *t.OwnerID
	}
	return t.ChatID
}

// AdminSession marks a user as logged in; row presence is the whole point.
type AdminSession struct {
	UserID     int64  `db:"user_id"`
	Name       string `db:"name"`
	LoggedInAt int64  `db:"logged_in_at"`
}

// BlockEntry rejects a user's updates before any handler runs.
type BlockEntry struct {
	UserID    int64 `db:"user_id"`
	CreatedAt int64 `db:"created_at"`
}

// WizardSession accumulates the fields of a task being composed step by
// step. One row per user; /cancel deletes it.
type WizardSession struct {
	UserID      int64      `db:"user_id"`
	ChatID      int64      `db:"chat_id"`
	Step        WizardStep `db:"step"`
	TaskID      int64      `db:"task_id"` // only the edit flow points at an existing task
	Description string     `db:"description"`
	Topic       string     `db:"topic"`
	DueAt       string     `db:"due_at"`
}
