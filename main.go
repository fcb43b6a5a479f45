package main

import (
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"telegram-task-bot/internal/config"
	"telegram-task-bot/internal/dispatch"
	"telegram-task-bot/internal/engine"
	"telegram-task-bot/internal/handlers"
	"telegram-task-bot/internal/scheduler"
	"telegram-task-bot/internal/storage"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN etc.

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("opening store")
	}
	defer db.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram")
	}
	log.Info().Str("bot", bot.Self.UserName).Msg("authorized")

	eng := engine.New(db, dispatch.NewTelegram(bot, log), log)

	sched, err := scheduler.Start(eng, cfg.SweepPeriod, clockwork.NewRealClock(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("starting sweep")
	}
	defer func() { _ = sched.Shutdown() }()

	h := handlers.New(bot, db, eng, cfg.AdminSecret, log)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	for upd := range bot.GetUpdatesChan(updateConfig) {
		h.HandleUpdate(upd)
	}
}
