package storage

import (
	"database/sql"
	"errors"

	"telegram-task-bot/internal/models"
)

const taskCols = `id, chat_id, owner_id, display_num, description, topic, subject,
        due_at, is_done, question_interval, question_enabled,
        COALESCE(next_question_at, ''), COALESCE(next_reminder_at, '')`

// CreateTask inserts the task and assigns its per-(chat, owner) display
// number in the same statement, so concurrent creates for one owner cannot
// race to the same number. next_reminder_at starts at the due time.
func (d *DB) CreateTask(t *models.Task) error {
	owner := t.Owner()
	res, err := d.Exec(`
        INSERT INTO tasks (chat_id, owner_id, display_num, description, topic, subject,
                           due_at, question_interval, question_enabled, next_question_at, next_reminder_at)
        VALUES (?,?,
            (SELECT COALESCE(MAX(display_num),0)+1 FROM tasks
              WHERE chat_id=? AND COALESCE(owner_id, chat_id)=?),
            ?,?,?,?,?,?,NULLIF(?,''),?)
    `, t.ChatID, t.OwnerID, t.ChatID, owner,
		t.Description, t.Topic, t.Subject,
		t.DueAt, t.QuestionInterval, t.QuestionEnabled, t.NextQuestionAt, t.DueAt)
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	t.NextReminderAt = t.DueAt
	return d.QueryRow(`SELECT display_num FROM tasks WHERE id=?`, t.ID).Scan(&t.DisplayNum)
}

func (d *DB) GetTask(id int64) (*models.Task, error) {
	row := d.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id=?`, id)
	return scanTask(row)
}

// GetTaskByDisplay resolves the user-facing number back to a row.
func (d *DB) GetTaskByDisplay(chatID, ownerID, displayNum int64) (*models.Task, error) {
	row := d.QueryRow(`
        SELECT `+taskCols+` FROM tasks
        WHERE chat_id=? AND COALESCE(owner_id, chat_id)=? AND display_num=? AND is_done=0
    `, chatID, ownerID, displayNum)
	return scanTask(row)
}

// ListTasks returns a chat's active tasks. A nil owner lists every owner in
// the chat (admin scope); otherwise only the owner's rows.
func (d *DB) ListTasks(chatID int64, owner *int64) ([]models.Task, error) {
	q := `SELECT ` + taskCols + ` FROM tasks WHERE chat_id=? AND is_done=0`
	args := []any{chatID}
	if owner != nil {
		q += ` AND COALESCE(owner_id, chat_id)=?`
		args = append(args, *owner)
	}
	q += ` ORDER BY display_num`
	rows, err := d.Query(q, args...)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// ListActiveTasks is the sweep's scan: every non-done task in every chat.
// Done rows never come back here, which is what keeps them out of the
// engine entirely.
func (d *DB) ListActiveTasks() ([]models.Task, error) {
	rows, err := d.Query(`SELECT ` + taskCols + ` FROM tasks WHERE is_done=0`)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// MarkDone is one-way; nothing un-does a task.
func (d *DB) MarkDone(id int64) error {
	_, err := d.Exec(`UPDATE tasks SET is_done=1 WHERE id=?`, id)
	return err
}

func (d *DB) DeleteTask(id int64) error {
	_, err := d.Exec(`DELETE FROM tasks WHERE id=?`, id)
	return err
}

// DeleteTasksByOwner removes all of an owner's tasks, optionally scoped to
// one chat.
func (d *DB) DeleteTasksByOwner(ownerID int64, chatID *int64) error {
	q := `DELETE FROM tasks WHERE COALESCE(owner_id, chat_id)=?`
	args := []any{ownerID}
	if chatID != nil {
		q += ` AND chat_id=?`
		args = append(args, *chatID)
	}
	_, err := d.Exec(q, args...)
	return err
}

func (d *DB) UpdateDescription(id int64, desc string) error {
	_, err := d.Exec(`UPDATE tasks SET description=? WHERE id=?`, desc, id)
	return err
}

// SetDueAt is the one explicit due-time edit; the reminder cycle restarts
// from the new due time.
func (d *DB) SetDueAt(id int64, at string) error {
	_, err := d.Exec(`UPDATE tasks SET due_at=?, next_reminder_at=? WHERE id=?`, at, at, id)
	return err
}

// ---------- scheduling fields (engine-owned) --------------------------------

func (d *DB) SetNextQuestionAt(id int64, at string) error {
	_, err := d.Exec(`UPDATE tasks SET next_question_at=NULLIF(?,'') WHERE id=?`, at, id)
	return err
}

func (d *DB) SetNextReminderAt(id int64, at string) error {
	_, err := d.Exec(`UPDATE tasks SET next_reminder_at=? WHERE id=?`, at, id)
	return err
}

func (d *DB) SetQuestionPrefs(id int64, intervalMin int64, nextQuestionAt string) error {
	_, err := d.Exec(`
        UPDATE tasks SET question_interval=?, question_enabled=1, next_question_at=NULLIF(?,'')
        WHERE id=?`, intervalMin, nextQuestionAt, id)
	return err
}

// DisableQuestions pauses the channel but leaves question_interval alone,
// so re-enabling (and the reminder bump) still see the remembered value.
func (d *DB) DisableQuestions(id int64) error {
	_, err := d.Exec(`UPDATE tasks SET question_enabled=0, next_question_at=NULL WHERE id=?`, id)
	return err
}

// ---------- scanning --------------------------------------------------------

type scanner interface{ Scan(dest ...any) error }

func scanTask(row scanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID, &t.ChatID, &t.OwnerID, &t.DisplayNum, &t.Description, &t.Topic, &t.Subject,
		&t.DueAt, &t.IsDone, &t.QuestionInterval, &t.QuestionEnabled,
		&t.NextQuestionAt, &t.NextReminderAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	defer rows.Close()
	var res []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *t)
	}
	return res, rows.Err()
}
