package router

import (
	"time"

	tg "github.com/m3rciful/quizbot/core/telegram"
	tghelpers "github.com/m3rciful/quizbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// FSM is the conversation state machine free text is routed to while a
// conversation is in progress.
type FSM interface {
	InProgress(conversationID int64) bool
	HandleText(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for plain text updates.
func TextRoutes(fsm FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		name, h := pickTextHandler(c, fsm, reg, opts)
		if h == nil {
			summarize(c, name, time.Now(), "skip", nil)
			return nil
		}
		return named(name, h)(c)
	}
	return []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
}

// pickTextHandler chooses who answers free text, in order: a conversation
// in progress, a public command typed without its slash, the registry
// fallback, UnknownText.
func pickTextHandler(c tele.Context, fsm FSM, reg *tg.Registry, opts TextOptions) (string, tele.HandlerFunc) {
	if fsm != nil && fsm.InProgress(tghelpers.ConversationID(c)) {
		return "fsm", fsm.HandleText
	}
	if reg != nil {
		if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil && !cmd.AdminOnly {
			return "text." + normalizeHandlerName(key), cmd.Handler
		}
		if fb := reg.TextFallback(); fb != nil {
			return "fallback", fb
		}
	}
	return "unknown_text", opts.UnknownText
}
