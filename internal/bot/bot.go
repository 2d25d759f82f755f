// Package bot binds the quiz engine to the Telegram runtime.
package bot

import (
	"context"
	"log/slog"

	"github.com/m3rciful/quizbot/core/logger"
	tg "github.com/m3rciful/quizbot/core/telegram"
	"github.com/m3rciful/quizbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/quizbot/core/telegram/helpers"
	"github.com/m3rciful/quizbot/core/telegram/router"
	"github.com/m3rciful/quizbot/internal/quiz"

	tele "gopkg.in/telebot.v4"
)

// CallbackUnique is the callback key of every quiz button.
const CallbackUnique = "quiz"

// Engine is the part of quiz.Engine the adapter depends on.
type Engine interface {
	Handle(ctx context.Context, conversationID int64, ev quiz.Event, out quiz.Responder) (quiz.Stage, error)
	InProgress(conversationID int64) bool
	Sessions() int
}

// Options configures a Bot.
type Options struct {
	AdminID int64
}

// Bot translates Telegram updates into quiz events.
type Bot struct {
	engine  Engine
	adminID int64
}

var _ router.FSM = (*Bot)(nil)

// New returns a Bot driving engine.
func New(engine Engine, opts Options) *Bot {
	return &Bot{engine: engine, adminID: opts.AdminID}
}

// InProgress reports whether the conversation has a running game.
func (b *Bot) InProgress(conversationID int64) bool {
	return b.engine.InProgress(conversationID)
}

// HandleText forwards free text to the engine.
func (b *Bot) HandleText(c tele.Context) error {
	return b.dispatch(c, quiz.Text(c.Text()))
}

func (b *Bot) handleCallback(c tele.Context) error {
	return b.dispatch(c, quiz.Tap(callbacks.CallbackPayload(c)))
}

func (b *Bot) dispatch(c tele.Context, ev quiz.Event) error {
	ctx := tghelpers.BuildContext(c)
	stage, err := b.engine.Handle(ctx, tghelpers.ConversationID(c), ev, responder{c: c})
	logger.Debug(ctx, "quiz", "quiz.event",
		slog.String("kind", ev.Kind.String()),
		slog.String("stage", stage.String()),
		slog.String("status", logger.Status(err)),
	)
	return err
}

// Routes returns every route the bot needs: commands, the quiz callback
// and the text router.
func (b *Bot) Routes(reg *tg.Registry) []tg.Route {
	var routes []tg.Route
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       b.adminID,
		OnAdminReject: reject,
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(b, reg, router.TextOptions{})...)
	return routes
}

// responder sends quiz replies through the ordered helper dispatcher.
type responder struct {
	c tele.Context
}

func (r responder) Reply(_ context.Context, rep quiz.Reply) error {
	return tghelpers.SendWithMarkup(r.c, rep.Text, Markup(rep))
}
