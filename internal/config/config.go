package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultDBPath      = "tasks.db"
	defaultSweepPeriod = time.Minute
	tokenSecretFile    = "/run/secrets/telegram_bot_token"
)

type Config struct {
	TelegramToken string
	DBPath        string
	SweepPeriod   time.Duration // bounds worst-case notification latency
	AdminSecret   string        // empty disables /admin login
}

func Load() (Config, error) {
	cfg := Config{
		TelegramToken: botToken(),
		DBPath:        envOr("TASKBOT_DB", defaultDBPath),
		AdminSecret:   strings.TrimSpace(os.Getenv("TASKBOT_ADMIN_SECRET")),
	}
	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("telegram token not found: neither %s nor TELEGRAM_BOT_TOKEN is set", tokenSecretFile)
	}

	period, err := parseDurationOr("TASKBOT_SWEEP_PERIOD", defaultSweepPeriod)
	if err != nil {
		return cfg, err
	}
	cfg.SweepPeriod = period
	return cfg, nil
}

// botToken prefers the Docker secret over the environment variable.
func botToken() string {
	if data, err := os.ReadFile(tokenSecretFile); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	return strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDurationOr(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}
