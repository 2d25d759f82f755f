package logger

import (
	"context"
	"log/slog"
	"slices"
)

type ctxKey int

const (
	keyRID ctxKey = iota
	keyUpdateID
	keyUserID
	keyChatID
	keyLogger
	keyHandler
	keyFields
)

func withValue(ctx context.Context, key ctxKey, v any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, v)
}

func valueOf[T any](ctx context.Context, key ctxKey) T {
	var v T
	if ctx != nil {
		v, _ = ctx.Value(key).(T)
	}
	return v
}

// WithLogger stores log in ctx; FromContext returns it.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	return withValue(ctx, keyLogger, log)
}

// FromContext returns the logger stored in ctx, or L.
func FromContext(ctx context.Context) *slog.Logger {
	if l := valueOf[*slog.Logger](ctx, keyLogger); l != nil {
		return l
	}
	return L
}

// WithFields appends attrs that the structured handler adds to every record
// logged with ctx. A later field shadows an earlier one with the same key;
// fields already present on a record win.
func WithFields(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	merged := slices.Concat(FieldsFrom(ctx), attrs)
	return withValue(ctx, keyFields, merged)
}

// FieldsFrom returns attrs stored by WithFields.
func FieldsFrom(ctx context.Context) []slog.Attr {
	return valueOf[[]slog.Attr](ctx, keyFields)
}

// WithRID attaches the request correlation id.
func WithRID(ctx context.Context, rid string) context.Context {
	return withValue(ctx, keyRID, rid)
}

func RIDFrom(ctx context.Context) string { return valueOf[string](ctx, keyRID) }

// WithUpdateMeta attaches the Telegram identifiers of the update being served.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	ctx = withValue(ctx, keyUpdateID, updateID)
	ctx = withValue(ctx, keyUserID, userID)
	return withValue(ctx, keyChatID, chatID)
}

func UpdateIDFrom(ctx context.Context) int { return valueOf[int](ctx, keyUpdateID) }

func UserIDFrom(ctx context.Context) int64 { return valueOf[int64](ctx, keyUserID) }

func ChatIDFrom(ctx context.Context) int64 { return valueOf[int64](ctx, keyChatID) }

// WithHandler names the route handler serving the update.
func WithHandler(ctx context.Context, handler string) context.Context {
	if handler == "" {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	return withValue(ctx, keyHandler, handler)
}

func HandlerFrom(ctx context.Context) string { return valueOf[string](ctx, keyHandler) }
