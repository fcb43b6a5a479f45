package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-task-bot/internal/messages"
	"telegram-task-bot/internal/models"
)

func (h *Handler) HandleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		h.reply(chatID, messages.Welcome)
	case "add":
		h.startWizard(&models.WizardSession{
			UserID: userID,
			ChatID: chatID,
			Step:   models.StepDescription,
		})
	case "list":
		h.listTasks(chatID, userID, ScopeSelf)
	case "done":
		h.markDone(chatID, userID, msg.CommandArguments())
	case "settings":
		h.settings(chatID, userID, msg.CommandArguments())
	case "cancel", "skip":
		// /skip outside the topic step behaves like cancel
		h.cancel(chatID, userID, msg)
	case "admin":
		h.handleAdmin(msg)
	}
}

// listTasks serves both /list and the admin chat-wide listing; only the
// scope differs.
func (h *Handler) listTasks(chatID, userID int64, scope Scope) {
	owner := &userID
	if scope == ScopeAdmin {
		owner = nil
	}
	tasks, err := h.DB.ListTasks(chatID, owner)
	if err != nil {
		h.Log.Error().Err(err).Int64("chat", chatID).Msg("listing tasks")
		return
	}
	if len(tasks) == 0 {
		h.reply(chatID, messages.NoTasks)
		return
	}

	var b strings.Builder
	for _, t := range tasks {
		qtext := "off"
		if t.QuestionEnabled {
			qtext = fmt.Sprintf("%d min", t.QuestionInterval)
		}
		fmt.Fprintf(&b, "⌛ #%d – %s\n    • due: %s  |  check-ins: %s", t.DisplayNum, t.Description, t.DueAt, qtext)
		if t.Topic != nil {
			fmt.Fprintf(&b, "  |  topic: %s", *t.Topic)
		}
		if scope == ScopeAdmin {
			fmt.Fprintf(&b, "  |  owner: %d  (id %d)", t.Owner(), t.ID)
		}
		b.WriteString("\n\n")
	}
	h.reply(chatID, strings.TrimRight(b.String(), "\n"))
}

func (h *Handler) markDone(chatID, userID int64, args string) {
	num, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.reply(chatID, messages.UsageDone)
		return
	}
	t, err := h.DB.GetTaskByDisplay(chatID, userID, num)
	if err != nil {
		h.Log.Error().Err(err).Int64("chat", chatID).Msg("resolving task")
		return
	}
	if t == nil {
		h.reply(chatID, messages.NoSuchTask)
		return
	}
	if err := h.DB.MarkDone(t.ID); err != nil {
		h.Log.Error().Err(err).Int64("task", t.ID).Msg("marking done")
		return
	}
	h.reply(chatID, fmt.Sprintf(messages.TaskDone, t.DisplayNum))
}

// settings re-offers the interval keyboard for an existing task.
func (h *Handler) settings(chatID, userID int64, args string) {
	num, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.reply(chatID, "Usage: /settings TASK_NUMBER")
		return
	}
	t, err := h.DB.GetTaskByDisplay(chatID, userID, num)
	if err != nil || t == nil {
		h.reply(chatID, messages.NoSuchTask)
		return
	}
	h.sendIntervalKeyboard(t)
}

func (h *Handler) cancel(chatID, userID int64, msg *tgbotapi.Message) {
	w, _ := h.DB.GetWizard(userID)
	if w == nil {
		h.reply(chatID, messages.NothingToDo)
		return
	}
	// /skip inside the topic step is wizard input, not a cancel
	if msg.Command() == "skip" && w.Step == models.StepTopic {
		h.HandleText(msg)
		return
	}
	if err := h.DB.DeleteWizard(userID); err != nil {
		h.Log.Error().Err(err).Int64("user", userID).Msg("discarding wizard state")
		return
	}
	h.reply(chatID, messages.WizardCanceled)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
