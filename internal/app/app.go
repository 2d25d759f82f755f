// Package app composes the quiz bot from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/quizbot/core/bootstrap"
	corecmd "github.com/m3rciful/quizbot/core/cmd"
	coreconfig "github.com/m3rciful/quizbot/core/config"
	"github.com/m3rciful/quizbot/core/logger"
	tg "github.com/m3rciful/quizbot/core/telegram"
	"github.com/m3rciful/quizbot/internal/bot"
	"github.com/m3rciful/quizbot/internal/quiz"
	"github.com/m3rciful/quizbot/internal/trivia"

	tele "gopkg.in/telebot.v4"
)

// App is the wired quiz bot.
type App struct {
	cfg    *coreconfig.Config
	engine *quiz.Engine
	bot    *bot.Bot
}

// New wires the provider, the quiz engine and the Telegram adapter.
func New(cfg *coreconfig.Config, infra *bootstrap.Result) (*App, error) {
	if cfg == nil || infra == nil {
		return nil, fmt.Errorf("app: config and bootstrap result are required")
	}
	provider := NewProvider(cfg, infra)
	engine := quiz.NewEngine(provider)
	return &App{
		cfg:    cfg,
		engine: engine,
		bot:    bot.New(engine, bot.Options{AdminID: cfg.Telegram.AdminID}),
	}, nil
}

// NewProvider returns the trivia client described by cfg.
func NewProvider(cfg *coreconfig.Config, infra *bootstrap.Result) *trivia.Client {
	timeout := time.Duration(cfg.Trivia.TimeoutSeconds) * time.Second
	return trivia.New(infra.ProviderURL, infra.ProviderClient, timeout)
}

// Bootstrap satisfies corecmd.Options.Bootstrap.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()
	infra, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	return New(cfg, infra)
}

// TelegramRunOptions builds the runtime options of the bot.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg, err := a.bot.Registry()
	if err != nil {
		return tg.RunOptions{}, fmt.Errorf("app: registry: %w", err)
	}
	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, onLimited),
		Routes:      a.bot.Routes(reg),
		OnStop: func(ctx context.Context, _ tg.Runtime) error {
			logger.Quiz.LogAttrs(ctx, slog.LevelInfo, "sessions dropped",
				slog.String("event", "quiz.shutdown"),
				slog.Int("count", a.engine.Sessions()),
			)
			return nil
		},
	}, nil
}

// onLimited acknowledges throttled button taps so the client stops spinning.
func onLimited(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	return c.Respond(&tele.CallbackResponse{Text: "Too fast, please wait a moment."})
}
