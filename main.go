package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/go-telegram/bot"
	"github.com/pixshop/bot/pkg/domain"
	"github.com/pixshop/bot/pkg/gemini"
	"github.com/pixshop/bot/pkg/llm"
	"github.com/pixshop/bot/pkg/logger"
	"github.com/pixshop/bot/pkg/repository"
	"github.com/pixshop/bot/pkg/services"
	"github.com/pixshop/bot/pkg/telegram/handlers"
	"github.com/pixshop/bot/pkg/telegram/middleware"
)

type Config struct {
	TelegramBotToken          string   `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramAuthorizedUserIDs []int64  `env:"TELEGRAM_AUTHORIZED_USER_IDS" envSeparator:" "`
	GeminiAPIKeys             []string `env:"GEMINI_API_KEYS,required" envSeparator:" "`
	GeminiModel               string   `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image-preview"`
	AccessCodes               []string `env:"ACCESS_CODES" envSeparator:" "`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	svcGroup, err := setupServices(ctx)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return svcGroup.Start(ctx)
}

func setupServices(_ context.Context) (services.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	var svc services.Service
	var svcGroup services.Group

	geminiClient, err := gemini.NewClient(cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	editor, err := llm.NewEditor(geminiClient, cfg.GeminiAPIKeys)
	if err != nil {
		return nil, fmt.Errorf("creating editor: %w", err)
	}

	sessionRepository := repository.NewSessionRepository()
	jobRepository := repository.NewJobRepository()
	accessRepository := repository.NewAccessRepository()

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.RequestID,
			middleware.Auth(cfg.TelegramAuthorizedUserIDs, accessRepository),
			middleware.Typing,
		),

		bot.WithDefaultHandler(handlers.EditImage(sessionRepository, jobRepository, editor)),
		bot.WithMessageTextHandler("/start", bot.MatchTypePrefix, handlers.Start()),
		bot.WithMessageTextHandler("/new", bot.MatchTypePrefix, handlers.ClearChat(sessionRepository)),
		bot.WithMessageTextHandler("/engines", bot.MatchTypePrefix, handlers.ShowEngines()),
		bot.WithMessageTextHandler("/redeem", bot.MatchTypePrefix, handlers.Redeem(cfg.AccessCodes, accessRepository)),

		bot.WithCallbackQueryDataHandler(domain.SetEngineCallbackPrefix, bot.MatchTypePrefix, handlers.SetEngine(sessionRepository)),
		bot.WithCallbackQueryDataHandler(domain.RepeatEditCallbackPrefix, bot.MatchTypePrefix, handlers.RepeatEdit(jobRepository, sessionRepository, editor)),
	}

	b, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	if svc, err = services.NewTelegramBot(b); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	return svcGroup, nil
}
