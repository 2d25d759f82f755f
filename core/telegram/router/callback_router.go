package router

import (
	"log/slog"

	tg "github.com/m3rciful/quizbot/core/telegram"
	"github.com/m3rciful/quizbot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute dispatches button presses to the handler registered for
// their unique key. Known keys are acknowledged before the handler runs;
// unknown ones go to the registry's not-found handler, then NotFound.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		if c.Callback() == nil {
			return nil
		}
		key := callbacks.CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)

		if h, ok := reg.GetCallback(key); ok {
			_ = c.Respond()
			return named(name, h, slog.String("cb_key", key))(c)
		}
		fallback := reg.CallbackNotFound()
		if fallback == nil {
			fallback = opts.NotFound
		}
		if fallback == nil {
			fallback = func(c tele.Context) error { return c.Respond() }
		}
		return named(name, fallback,
			slog.String("cb_key", key),
			slog.String("reason", "not_found"),
		)(c)
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}
