package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerbuddy/internal/adapter/http"
	"careerbuddy/internal/adapter/repository"
	"careerbuddy/internal/config"
	"careerbuddy/internal/infrastructure/migration"
	"careerbuddy/internal/logger"
	"careerbuddy/internal/usecase"
	"careerbuddy/pkg/ai"
	"careerbuddy/pkg/infrastructure"
	"careerbuddy/pkg/paystack"
	"careerbuddy/pkg/telegram"

	"github.com/gofiber/fiber/v2"
)

func main() {
	boot := logger.Get()
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config load failed")
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal().Err(err).Msg("logger setup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infrastructure.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := migration.Run(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	deduper, err := infrastructure.NewDeduper(cfg.RedisURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer deduper.Close()

	storage, err := infrastructure.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}

	templates, err := usecase.NewTemplateSet(cfg.TemplateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("template parse failed")
	}

	tg, err := telegram.NewClient(cfg.TelegramBotToken, log)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram init failed")
	}
	if cfg.PublicURL != "" {
		if err := tg.SetWebhook(cfg.PublicURL+"/webhooks/telegram", cfg.TelegramWebhookToken); err != nil {
			log.Warn().Err(err).Msg("webhook registration failed")
		}
	}

	router := usecase.NewRouter(usecase.Deps{
		Users:     repository.NewUsersRepo(pool),
		Jobs:      repository.NewJobsRepo(pool),
		Messages:  repository.NewMessagesRepo(pool),
		Payments:  repository.NewPaymentsRepo(pool),
		Files:     repository.NewFilesRepo(pool),
		Enhancer:  ai.NewClient(cfg.OpenAIKey, log),
		Renderer:  infrastructure.NewChromedpRenderer(),
		Artifacts: storage,
		Gate:      usecase.NewQuotaGate(),
		Gateway:   paystack.NewClient(cfg.PaystackSecret, cfg.PublicURL+"/payments/thanks"),
		Templates: templates,
		Notifier:  tg,
		IsAdmin:   cfg.IsAdmin,
		Log:       log,
	})

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             2 * 1024 * 1024,
	})
	app.Use(http.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitPerHour).Middleware())

	handler := http.NewHandler(router, tg, deduper, storage, repository.NewJobsRepo(pool),
		cfg.TelegramWebhookToken, cfg.PaystackSecret, log)
	handler.Register(app)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
