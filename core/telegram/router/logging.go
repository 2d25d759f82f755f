package router

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/quizbot/core/logger"
	tghelpers "github.com/m3rciful/quizbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// named wraps h so every call is logged as handler name.
func named(name string, h tele.HandlerFunc, extras ...slog.Attr) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		tghelpers.WithHandler(c, name)
		err := h(c)
		summarize(c, name, start, "", err, extras...)
		return err
	}
}

// summarize logs the handler.handled line of one update. An empty status
// is derived from err.
func summarize(c tele.Context, name string, start time.Time, status string, err error, extras ...slog.Attr) {
	outcome := "ok"
	if err != nil {
		outcome = "fail"
	}
	if status == "" {
		status = outcome
	}
	msgs, kb := tghelpers.Replies(c)

	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", time.Since(start)),
	}
	attrs = append(attrs, extras...)
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", deriveErrorCode(err)),
		)
	}
	logger.Info(tghelpers.WithHandler(c, name), "tg", "handler.handled", attrs...)
}

// normalizeHandlerName turns "/Start" or "Quiz Answer" into a log-friendly
// lower snake name.
func normalizeHandlerName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// deriveErrorCode prefers a Code() method anywhere in the chain and falls
// back to the error's type name.
func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	toCode := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	}
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		if code := toCode(coded.Code()); code != "" {
			return code
		}
	}
	typ := fmt.Sprintf("%T", err)
	return toCode(typ[strings.LastIndexByte(typ, '.')+1:])
}
