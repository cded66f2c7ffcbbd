package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deadline-doom/config"
	_ "deadline-doom/docs" // Swagger docs
	"deadline-doom/internal/httpserver"
	tgDelivery "deadline-doom/internal/interview/delivery/telegram"
	"deadline-doom/internal/interview/repository/memory"
	"deadline-doom/internal/interview/usecase"
	"deadline-doom/internal/presenter"
	"deadline-doom/pkg/datemath"
	"deadline-doom/pkg/gcalendar"
	"deadline-doom/pkg/log"
	"deadline-doom/pkg/telegram"
)

// chatRevealInterval keeps the reveal under Telegram's edit rate limit.
const chatRevealInterval = 250 * time.Millisecond

// @title       Deadline Doom API
// @description Estimates how likely you are to miss your deadlines from your tasks and work habits.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Deadline Doom...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Interview domain
	dates, err := datemath.NewParser(cfg.Wizard.Timezone)
	if err != nil {
		logger.Errorf(ctx, "Invalid timezone %q: %v", cfg.Wizard.Timezone, err)
		return
	}

	// Google Calendar client (optional)
	var calendar usecase.Calendar
	if cfg.GoogleCalendar.CredentialsPath != "" {
		client, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
		} else {
			calendar = client
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	repo := memory.New(logger, cfg.Session.MaxSessions, cfg.Session.TTL)
	ucCfg := usecase.Config{
		Dates:            dates,
		Presenter:        presenter.New(nil),
		Calendar:         calendar,
		CalendarID:       cfg.GoogleCalendar.CalendarID,
		LookaheadDays:    cfg.GoogleCalendar.LookaheadDays,
		AutoAdvanceDelay: cfg.Wizard.AutoAdvanceDelay,
	}
	interviewUC := usecase.New(logger, repo, ucCfg)

	// 4. Telegram front end (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)

		// Chat sessions advance on every tap; they share the store with HTTP.
		chatCfg := ucCfg
		chatCfg.AutoAdvanceDelay = 0
		chatUC := usecase.New(logger, repo, chatCfg)

		interval := max(cfg.Wizard.RevealInterval, chatRevealInterval)
		telegramHandler = tgDelivery.New(logger, chatUC, bot, presenter.NewRevealer(cfg.Wizard.RevealDuration, interval))

		if cfg.Telegram.WebhookURL != "" {
			if whErr := bot.SetWebhook(ctx, cfg.Telegram.WebhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		RateLimit:       cfg.RateLimit,
		InterviewUC:     interviewUC,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
