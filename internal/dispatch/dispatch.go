// Package dispatch delivers engine notifications to Telegram. Delivery is
// best-effort and runs off the sweep goroutine; the engine never waits on
// transport I/O and never learns whether a send worked.
package dispatch

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-task-bot/internal/models"
)

// Callback data prefixes shared with the handler layer.
const (
	CbDone   = "done"
	CbSnooze = "snooze"
	CbEdit   = "edit"
)

type Telegram struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

func NewTelegram(bot *tgbotapi.BotAPI, log zerolog.Logger) *Telegram {
	return &Telegram{bot: bot, log: log.With().Str("component", "dispatch").Logger()}
}

func (d *Telegram) SendQuestion(t models.Task) {
	text := fmt.Sprintf("❓ Are you still working on *%s*? (next check-in in %d min)",
		t.Description, t.QuestionInterval)
	go d.send(t, text)
}

func (d *Telegram) SendReminder(t models.Task) {
	text := fmt.Sprintf("⏰ Reminder: *%s* (task #%d)", t.Description, t.DisplayNum)
	go d.send(t, text)
}

func (d *Telegram) send(t models.Task, text string) {
	msg := tgbotapi.NewMessage(t.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = TaskKeyboard(t.ID)
	if _, err := d.bot.Send(msg); err != nil {
		d.log.Error().Err(err).Int64("chat", t.ChatID).Int64("task", t.ID).Msg("send failed")
	}
}

// TaskKeyboard is the affordance row attached to every notification.
func TaskKeyboard(taskID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Done", fmt.Sprintf("%s|%d", CbDone, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("Snooze +10m", fmt.Sprintf("%s|%d", CbSnooze, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("Edit", fmt.Sprintf("%s|%d", CbEdit, taskID)),
		),
	)
}
