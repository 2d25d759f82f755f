// Package logger is the structured logging layer shared by the bot: a
// slog handler writing flat JSON or key=value lines through an async
// writer, component loggers, and request context helpers.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/m3rciful/quizbot/core/buildinfo"
	coreconfig "github.com/m3rciful/quizbot/core/config"
)

var (
	stateMu sync.Mutex
	started bool
	stopped bool
	out     *asyncWriter
	files   []io.Closer

	levelVar     slog.LevelVar
	debugSampler = newRatioSampler(1, 50)
	traceAll     bool

	// L is the base logger. Before InitLogger it points at slog.Default.
	L *slog.Logger

	// TG logs Telegram transport events.
	TG *slog.Logger
	// TWire logs Telegram wiring steps.
	TWire *slog.Logger
	// Trivia logs content provider calls.
	Trivia *slog.Logger
	// Quiz logs quiz engine transitions.
	Quiz *slog.Logger
)

func init() {
	L = slog.Default()
	wireComponents()
}

func wireComponents() {
	TG = Component("tg")
	TWire = Component("tg.wire")
	Trivia = Component("trivia")
	Quiz = Component("quiz")
}

// settings is the logging section of the config resolved to concrete values.
type settings struct {
	format   logFormat
	order    []string
	level    slog.Level
	sampleN  int
	sampleD  int
	profile  string
	filePath string
}

func settingsFrom(cfg *coreconfig.Config) settings {
	s := settings{format: formatJSON, order: defaultKeyOrder, level: slog.LevelInfo, sampleN: 1, sampleD: 50}
	if cfg == nil {
		return s
	}
	lc := cfg.Logging
	s.profile = strings.ToLower(strings.TrimSpace(lc.Profile))
	if s.profile == "" {
		s.profile = "prod"
	}
	s.format = parseFormat(lc.Format, s.profile)
	s.order = parseKeyOrder(lc.KeysOrder)
	s.level = parseLevel(lc.Level)
	if raw := strings.TrimSpace(lc.DebugSample); raw != "" {
		s.sampleN, s.sampleD = parseRatio(raw)
	}
	if dir, file := strings.TrimSpace(lc.Dir), strings.TrimSpace(lc.BotFile); dir != "" && file != "" {
		s.filePath = filepath.Join(dir, file)
	}
	return s
}

func parseFormat(raw, profile string) logFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return formatJSON
	case "kv", "text", "pretty":
		return formatKV
	}
	if profile == "debug" || profile == "dev" {
		return formatKV
	}
	return formatJSON
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// parseKeyOrder reads a comma separated key list; "" and "default" keep
// the built-in order.
func parseKeyOrder(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "default" {
		return defaultKeyOrder
	}
	var order []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			order = append(order, k)
		}
	}
	if len(order) == 0 {
		return defaultKeyOrder
	}
	return order
}

// InitLogger installs the structured handler as the process logger.
// Calls after the first one are no-ops.
func InitLogger(cfg *coreconfig.Config) error {
	stateMu.Lock()
	defer stateMu.Unlock()
	if started {
		return nil
	}

	s := settingsFrom(cfg)
	sinks := []io.Writer{os.Stdout}
	if s.filePath != "" {
		f, err := openLogFile(s.filePath)
		if err != nil {
			return err
		}
		sinks = append(sinks, f)
		files = append(files, f)
	}

	levelVar.Set(s.level)
	debugSampler.Set(s.sampleN, s.sampleD)
	traceAll = isTruthy(os.Getenv("TRACE")) || isTruthy(os.Getenv("LOG_TRACE"))

	out = newAsyncWriter(sinks, 64*1024)
	L = slog.New(newStructuredHandler(handlerConfig{
		level:    &levelVar,
		writer:   out,
		format:   s.format,
		keyOrder: s.order,
	}))
	slog.SetDefault(L)
	wireComponents()
	started = true

	mode := ""
	if cfg != nil {
		mode = cfg.Telegram.RunMode
	}
	LogEvent(context.Background(), Component("app"), slog.LevelInfo, "startup",
		slog.String("go_version", runtime.Version()),
		slog.String("build_version", buildinfo.Version),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("build_time", buildinfo.Date),
		slog.String("cfg_profile", s.profile),
		slog.String("mode", mode),
	)
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logger: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file: %w", err)
	}
	return f, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Shutdown drains buffered output and closes log files.
func Shutdown() error {
	stateMu.Lock()
	defer stateMu.Unlock()
	if stopped || out == nil {
		stopped = true
		return nil
	}
	stopped = true

	errs := []error{out.Close()}
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

// Background returns context.Background().
func Background() context.Context {
	return context.Background()
}

// Component returns L scoped with a component attribute.
func Component(name string) *slog.Logger {
	if name = strings.TrimSpace(name); name == "" {
		return L
	}
	return L.With("component", name)
}

// LogEvent logs attrs under the event name. A nil logg means the context
// logger.
func LogEvent(ctx context.Context, logg *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if logg == nil {
		logg = FromContext(ctx)
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, level, "", attrs...)
}

func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelDebug, event, attrs...)
}

func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelInfo, event, attrs...)
}

func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelWarn, event, attrs...)
}

func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelError, event, attrs...)
}

// ShouldSampleDebug reports whether a high-volume debug event should be
// logged. TRACE=1 in the environment lets every event through.
func ShouldSampleDebug() bool {
	return traceAll || debugSampler.Allow()
}
