package handlers

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-task-bot/internal/interval"
	"telegram-task-bot/internal/messages"
	"telegram-task-bot/internal/models"
)

// The add-task wizard is an explicit FSM: one table entry per step, each
// naming its prompt and how user text moves the session forward. A step
// that rejects its input re-prompts and stays put.
type stepSpec struct {
	prompt string
	apply  func(w *models.WizardSession, text string, now time.Time) (errReply string, next models.WizardStep)
}

var wizardTable = map[models.WizardStep]stepSpec{
	models.StepDescription: {
		prompt: messages.AskDescription,
		apply: func(w *models.WizardSession, text string, _ time.Time) (string, models.WizardStep) {
			text = strings.TrimSpace(text)
			if text == "" {
				return messages.AskDescription, models.StepDescription
			}
			w.Description = text
			return "", models.StepDue
		},
	},
	models.StepDue: {
		prompt: messages.AskDue,
		apply: func(w *models.WizardSession, text string, now time.Time) (string, models.WizardStep) {
			due, ok := parseDue(text, now)
			if !ok {
				return messages.BadDue, models.StepDue
			}
			w.DueAt = models.FormatStamp(due)
			return "", models.StepTopic
		},
	},
	models.StepTopic: {
		prompt: messages.AskTopic,
		apply: func(w *models.WizardSession, text string, _ time.Time) (string, models.WizardStep) {
			text = strings.TrimSpace(text)
			if text != "/skip" {
				w.Topic = text
			}
			return "", models.StepNone
		},
	},
	models.StepEditDue: {
		prompt: messages.AskNewDue,
		apply: func(w *models.WizardSession, text string, now time.Time) (string, models.WizardStep) {
			due, ok := parseDue(text, now)
			if !ok {
				return messages.BadDue, models.StepEditDue
			}
			w.DueAt = models.FormatStamp(due)
			return "", models.StepNone
		},
	},
}

var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02.01.2006 15:04",
}

// parseDue accepts a handful of date layouts plus a bare "HH:MM" meaning
// today (or tomorrow if that time already passed).
func parseDue(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("15:04", text, time.Local); err == nil {
		due := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
		if !due.After(now) {
			due = due.AddDate(0, 0, 1)
		}
		return due, true
	}
	return time.Time{}, false
}

// HandleText feeds non-command text into whatever dialog the user has open.
func (h *Handler) HandleText(msg *tgbotapi.Message) {
	w, err := h.DB.GetWizard(msg.From.ID)
	if err != nil {
		h.Log.Error().Err(err).Int64("user", msg.From.ID).Msg("loading wizard state")
		return
	}
	if w == nil {
		return
	}

	step, ok := wizardTable[w.Step]
	if !ok {
		_ = h.DB.DeleteWizard(w.UserID)
		return
	}

	errReply, next := step.apply(w, msg.Text, time.Now())
	if errReply != "" {
		h.reply(w.ChatID, errReply)
		return
	}

	if next != models.StepNone {
		w.Step = next
		if err := h.DB.SaveWizard(w); err != nil {
			h.Log.Error().Err(err).Int64("user", w.UserID).Msg("saving wizard state")
			return
		}
		h.reply(w.ChatID, wizardTable[next].prompt)
		return
	}

	h.finishWizard(w)
}

func (h *Handler) startWizard(w *models.WizardSession) {
	if err := h.DB.SaveWizard(w); err != nil {
		h.Log.Error().Err(err).Int64("user", w.UserID).Msg("saving wizard state")
		return
	}
	h.reply(w.ChatID, wizardTable[w.Step].prompt)
}

func (h *Handler) finishWizard(w *models.WizardSession) {
	defer func() { _ = h.DB.DeleteWizard(w.UserID) }()

	if w.Step == models.StepEditDue {
		if err := h.DB.SetDueAt(w.TaskID, w.DueAt); err != nil {
			h.Log.Error().Err(err).Int64("task", w.TaskID).Msg("updating due time")
			return
		}
		h.reply(w.ChatID, messages.DueUpdated)
		return
	}

	owner := w.UserID
	t := &models.Task{
		ChatID:      w.ChatID,
		OwnerID:     &owner,
		Description: w.Description,
		DueAt:       w.DueAt,
	}
	if w.Topic != "" {
		t.Topic = &w.Topic
	}
	if err := h.DB.CreateTask(t); err != nil {
		h.Log.Error().Err(err).Int64("chat", w.ChatID).Msg("creating task")
		return
	}

	h.sendIntervalKeyboard(t)
}

// sendIntervalKeyboard offers check-in intervals suited to the task's
// urgency, plus an off switch.
func (h *Handler) sendIntervalKeyboard(t *models.Task) {
	due, err := models.ParseStamp(t.DueAt)
	if err != nil {
		due = time.Now()
	}

	var row []tgbotapi.InlineKeyboardButton
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range interval.Suggest(due, time.Now()) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			interval.Label(d), cbInterval(t.ID, d)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData("Off", cbInterval(t.ID, 0)))
	rows = append(rows, row)

	msg := tgbotapi.NewMessage(t.ChatID,
		"✅ Task *#"+itoa(t.DisplayNum)+"* scheduled: _"+t.Description+"_ at "+t.DueAt+"\n"+messages.PickInterval)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Error().Err(err).Int64("chat", t.ChatID).Msg("interval keyboard failed")
	}
}
