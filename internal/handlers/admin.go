package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-task-bot/internal/messages"
)

// handleAdmin routes /admin subcommands. Login is the only one that works
// without an open session; everything else is gated on the session row.
func (h *Handler) handleAdmin(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		h.reply(chatID, messages.AdminUsage)
		return
	}

	if args[0] == "login" {
		h.adminLogin(chatID, msg.From, args[1:])
		return
	}

	if !h.DB.IsAdmin(userID) {
		h.reply(chatID, messages.AdminDenied)
		return
	}

	switch args[0] {
	case "logout":
		if err := h.DB.DeleteAdminSession(userID); err != nil {
			h.Log.Error().Err(err).Int64("user", userID).Msg("closing admin session")
			return
		}
		h.reply(chatID, messages.AdminBye)

	case "list":
		h.listTasks(chatID, userID, ScopeAdmin)

	case "del":
		h.adminDelete(chatID, args[1:])

	case "block", "unblock":
		h.adminBlock(chatID, args[0], args[1:])

	case "clear":
		h.adminClear(chatID, args[1:])

	default:
		h.reply(chatID, messages.AdminUsage)
	}
}

func (h *Handler) adminLogin(chatID int64, from *tgbotapi.User, args []string) {
	if h.AdminSecret == "" || len(args) == 0 || args[0] != h.AdminSecret {
		h.reply(chatID, messages.AdminBadSecret)
		return
	}
	name := from.UserName
	if name == "" {
		name = from.FirstName
	}
	if err := h.DB.UpsertAdminSession(from.ID, name); err != nil {
		h.Log.Error().Err(err).Int64("user", from.ID).Msg("opening admin session")
		return
	}
	h.reply(chatID, fmt.Sprintf(messages.AdminWelcome, name))
}

// adminDelete removes a task by raw id: display numbers are per-owner and
// thus ambiguous across the chat the admin is looking at.
func (h *Handler) adminDelete(chatID int64, args []string) {
	if len(args) == 0 {
		h.reply(chatID, messages.AdminUsage)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(chatID, messages.AdminUsage)
		return
	}
	t, err := h.DB.GetTask(id)
	if err != nil || t == nil {
		h.reply(chatID, messages.NoSuchTask)
		return
	}
	if err := h.DB.DeleteTask(id); err != nil {
		h.Log.Error().Err(err).Int64("task", id).Msg("deleting task")
		return
	}
	h.reply(chatID, fmt.Sprintf(messages.TaskDeleted, t.DisplayNum))
}

func (h *Handler) adminBlock(chatID int64, verb string, args []string) {
	if len(args) == 0 {
		h.reply(chatID, messages.AdminUsage)
		return
	}
	uid, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(chatID, messages.AdminUsage)
		return
	}
	if verb == "block" {
		err = h.DB.BlockUser(uid)
	} else {
		err = h.DB.UnblockUser(uid)
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("user", uid).Str("verb", verb).Msg("blocklist update")
		return
	}
	if verb == "block" {
		h.reply(chatID, fmt.Sprintf(messages.UserBlocked, uid))
	} else {
		h.reply(chatID, fmt.Sprintf(messages.UserUnblocked, uid))
	}
}

// adminClear wipes one user's tasks in the current chat, or everywhere with
// "all".
func (h *Handler) adminClear(chatID int64, args []string) {
	if len(args) == 0 {
		h.reply(chatID, messages.AdminUsage)
		return
	}
	uid, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(chatID, messages.AdminUsage)
		return
	}
	scope := &chatID
	if len(args) > 1 && args[1] == "all" {
		scope = nil
	}
	if err := h.DB.DeleteTasksByOwner(uid, scope); err != nil {
		h.Log.Error().Err(err).Int64("owner", uid).Msg("bulk delete")
		return
	}
	h.reply(chatID, messages.TasksCleared)
}
