// Package handlers is the command layer: it owns every task field except
// the scheduling ones, which it only touches through the engine.
package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-task-bot/internal/engine"
	"telegram-task-bot/internal/storage"
)

// Scope widens or narrows whose tasks an operation sees. One handler per
// operation, parameterized, instead of user/admin twins.
type Scope int

const (
	ScopeSelf Scope = iota
	ScopeAdmin
)

type Handler struct {
	Bot         *tgbotapi.BotAPI
	DB          *storage.DB
	Engine      *engine.Engine
	Log         zerolog.Logger
	AdminSecret string
}

func New(bot *tgbotapi.BotAPI, db *storage.DB, eng *engine.Engine, secret string, log zerolog.Logger) *Handler {
	return &Handler{
		Bot:         bot,
		DB:          db,
		Engine:      eng,
		Log:         log.With().Str("component", "handlers").Logger(),
		AdminSecret: secret,
	}
}

// HandleUpdate is the single entry point for the polling loop. Blocked
// users are dropped here, before any routing.
func (h *Handler) HandleUpdate(upd tgbotapi.Update) {
	if uid := updateUserID(upd); uid != 0 && h.DB.IsBlocked(uid) {
		return
	}

	switch {
	case upd.Message != nil && upd.Message.IsCommand():
		h.HandleCommand(upd.Message)
	case upd.Message != nil:
		h.HandleText(upd.Message)
	case upd.CallbackQuery != nil:
		h.HandleCallback(upd.CallbackQuery)
	}
}

func updateUserID(upd tgbotapi.Update) int64 {
	if upd.Message != nil && upd.Message.From != nil {
		return upd.Message.From.ID
	}
	if upd.CallbackQuery != nil && upd.CallbackQuery.From != nil {
		return upd.CallbackQuery.From.ID
	}
	return 0
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Error().Err(err).Int64("chat", chatID).Msg("reply failed")
	}
}
