package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-task-bot/internal/dispatch"
	"telegram-task-bot/internal/interval"
	"telegram-task-bot/internal/messages"
	"telegram-task-bot/internal/models"
)

const cbIntervalPrefix = "qi"

func cbInterval(taskID int64, d time.Duration) string {
	return fmt.Sprintf("%s|%d|%d", cbIntervalPrefix, taskID, int64(d/time.Minute))
}

func (h *Handler) HandleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	// always answer, otherwise the client keeps spinning
	_, _ = h.Bot.Request(tgbotapi.NewCallback(cq.ID, ""))

	parts := strings.Split(cq.Data, "|")
	if len(parts) < 2 {
		return
	}
	taskID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return
	}

	switch parts[0] {
	case cbIntervalPrefix:
		if len(parts) != 3 {
			return
		}
		mins, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil || mins < 0 {
			h.reply(chatID, messages.IntervalInvalid)
			return
		}
		h.setInterval(chatID, taskID, time.Duration(mins)*time.Minute)

	case dispatch.CbDone:
		t, err := h.DB.GetTask(taskID)
		if err != nil || t == nil {
			return
		}
		if err := h.DB.MarkDone(taskID); err != nil {
			h.Log.Error().Err(err).Int64("task", taskID).Msg("marking done")
			return
		}
		h.reply(chatID, fmt.Sprintf(messages.TaskDone, t.DisplayNum))

	case dispatch.CbSnooze:
		if err := h.Engine.Snooze(taskID, time.Now()); err != nil {
			h.Log.Error().Err(err).Int64("task", taskID).Msg("snoozing")
			return
		}
		h.reply(chatID, messages.Snoozed)

	case dispatch.CbEdit:
		h.startWizard(&models.WizardSession{
			UserID: cq.From.ID,
			ChatID: chatID,
			Step:   models.StepEditDue,
			TaskID: taskID,
		})
	}
}

func (h *Handler) setInterval(chatID, taskID int64, d time.Duration) {
	if err := h.Engine.SetQuestionPrefs(taskID, d, time.Now()); err != nil {
		h.Log.Error().Err(err).Int64("task", taskID).Msg("setting question prefs")
		return
	}
	t, err := h.DB.GetTask(taskID)
	if err != nil || t == nil {
		return
	}
	if d == 0 {
		h.reply(chatID, fmt.Sprintf(messages.QuestionsOff, t.DisplayNum))
		return
	}
	h.reply(chatID, fmt.Sprintf(messages.QuestionsEvery, t.DisplayNum, interval.Label(d)))
}
