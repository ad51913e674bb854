package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	PublicURL   string
	DatabaseURL string
	RedisURL    string

	TelegramBotToken     string
	TelegramWebhookToken string
	AdminTelegramIDs     []string

	OpenAIKey      string
	PaystackSecret string

	TemplateDir string
	OutputDir   string

	LogLevel  string
	LogFormat string

	RateLimitPerMinute int
	RateLimitPerHour   int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8000"),
		PublicURL:   getenv("PUBLIC_URL", "http://localhost:8000"),
		DatabaseURL: getenv("DATABASE_URL", ""),
		RedisURL:    getenv("REDIS_URL", "redis://localhost:6379/0"),

		TelegramBotToken:     getenv("TELEGRAM_BOT_TOKEN", ""),
		TelegramWebhookToken: getenv("TELEGRAM_WEBHOOK_TOKEN", ""),

		OpenAIKey:      getenv("OPENAI_API_KEY", ""),
		PaystackSecret: getenv("PAYSTACK_SECRET", ""),

		TemplateDir: getenv("TEMPLATE_DIR", "templates"),
		OutputDir:   getenv("OUTPUT_DIR", "output"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),

		RateLimitPerMinute: 60,
		RateLimitPerHour:   1000,
	}

	for _, id := range strings.Split(getenv("ADMIN_TELEGRAM_IDS", ""), ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			cfg.AdminTelegramIDs = append(cfg.AdminTelegramIDs, id)
		}
	}

	return cfg, nil
}

func (c Config) IsAdmin(telegramUserID string) bool {
	for _, id := range c.AdminTelegramIDs {
		if id == telegramUserID {
			return true
		}
	}
	return false
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
