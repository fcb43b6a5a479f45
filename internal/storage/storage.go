package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"telegram-task-bot/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct{ *sql.DB }

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err = db.Exec(string(b)); err != nil {
		return err
	}
	// Old task tables predate some columns; CREATE IF NOT EXISTS leaves
	// them untouched, so patch per column.
	for col, typ := range map[string]string{
		"owner_id":         "INTEGER",
		"display_num":      "INTEGER NOT NULL DEFAULT 0",
		"topic":            "TEXT",
		"subject":          "TEXT",
		"next_question_at": "TEXT",
		"next_reminder_at": "TEXT",
	} {
		if err := addColumnIfMissing(db, "tasks", col, typ); err != nil {
			return err
		}
	}
	return nil
}

func addColumnIfMissing(db *sql.DB, table, col, typ string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if name == col {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col, typ))
	return err
}

// ---------- admin sessions --------------------------------------------------

func (d *DB) UpsertAdminSession(userID int64, name string) error {
	_, err := d.Exec(`
        INSERT INTO admin_sessions (user_id, name, logged_in_at) VALUES (?,?,?)
        ON CONFLICT(user_id) DO UPDATE SET name=excluded.name,
            logged_in_at=excluded.logged_in_at
    `, userID, name, time.Now().Unix())
	return err
}

func (d *DB) DeleteAdminSession(userID int64) error {
	_, err := d.Exec(`DELETE FROM admin_sessions WHERE user_id=?`, userID)
	return err
}

// IsAdmin: row presence is the entire authorization check.
func (d *DB) IsAdmin(userID int64) bool {
	var one int
	err := d.QueryRow(`SELECT 1 FROM admin_sessions WHERE user_id=?`, userID).Scan(&one)
	return err == nil
}

// ---------- blocklist -------------------------------------------------------

func (d *DB) BlockUser(userID int64) error {
	_, err := d.Exec(`
        INSERT INTO blocklist (user_id, created_at) VALUES (?,?)
        ON CONFLICT(user_id) DO NOTHING
    `, userID, time.Now().Unix())
	return err
}

func (d *DB) UnblockUser(userID int64) error {
	_, err := d.Exec(`DELETE FROM blocklist WHERE user_id=?`, userID)
	return err
}

func (d *DB) IsBlocked(userID int64) bool {
	var one int
	err := d.QueryRow(`SELECT 1 FROM blocklist WHERE user_id=?`, userID).Scan(&one)
	return err == nil
}

// ---------- wizard sessions -------------------------------------------------

func (d *DB) SaveWizard(w *models.WizardSession) error {
	_, err := d.Exec(`
        INSERT INTO wizard_sessions (user_id, chat_id, step, task_id, description, topic, due_at)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT(user_id) DO UPDATE SET chat_id=excluded.chat_id,
            step=excluded.step,
            task_id=excluded.task_id,
            description=excluded.description,
            topic=excluded.topic,
            due_at=excluded.due_at
    `, w.UserID, w.ChatID, w.Step, w.TaskID, w.Description, w.Topic, w.DueAt)
	return err
}

func (d *DB) GetWizard(userID int64) (*models.WizardSession, error) {
	var w models.WizardSession
	err := d.QueryRow(`
        SELECT user_id, chat_id, step, task_id, description, topic, due_at
        FROM wizard_sessions WHERE user_id=?`, userID,
	).Scan(&w.UserID, &w.ChatID, &w.Step, &w.TaskID, &w.Description, &w.Topic, &w.DueAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (d *DB) DeleteWizard(userID int64) error {
	_, err := d.Exec(`DELETE FROM wizard_sessions WHERE user_id=?`, userID)
	return err
}
