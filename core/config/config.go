// Package config loads bot settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Run modes.
const (
	RunModeWebhook  = "webhook"
	RunModeLongpoll = "longpoll"
)

// Update kinds accepted by rate_limit.exclude_updates.
const (
	UpdateCallback    = "callback"
	UpdateMessage     = "message"
	UpdateInlineQuery = "inline_query"
)

var updateKinds = []string{UpdateCallback, UpdateMessage, UpdateInlineQuery}

// Trivia provider defaults.
const (
	DefaultTriviaBaseURL        = "https://opentdb.com"
	DefaultTriviaTimeoutSeconds = 10
)

// Config is the complete bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Trivia    TriviaConfig    `yaml:"trivia"`
}

type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	// RunMode is webhook or longpoll; "polling" is read as longpoll.
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// Zero keeps the poller default.
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile is "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// RateLimitConfig throttles each user to one update per IntervalMS.
// ExcludeUpdates names update kinds that are never throttled.
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// TriviaConfig points at an Open Trivia DB compatible API.
type TriviaConfig struct {
	BaseURL        string `yaml:"base_url" envconfig:"TRIVIA_BASE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"TRIVIA_TIMEOUT_SECONDS"`
}

// CoreConfig returns c; it lets Config act as a cmd.ConfigCarrier.
func (c *Config) CoreConfig() *Config { return c }

// Load reads the YAML file at path, overlays the environment and
// normalizes the result. With allowMissing a nonexistent file is skipped.
func Load(path string, allowMissing bool) (*Config, error) {
	cfg := new(Config)
	if err := readYAML(path, allowMissing, cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readYAML(path string, allowMissing bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Normalize fills defaults, canonicalizes values and rejects invalid settings.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if err := cfg.Telegram.normalize(); err != nil {
		return err
	}
	if cfg.Telegram.RunMode == RunModeWebhook {
		if err := cfg.Webhook.validate(); err != nil {
			return err
		}
	}
	if err := cfg.Trivia.normalize(); err != nil {
		return err
	}
	return cfg.RateLimit.normalize()
}

func (t *TelegramConfig) normalize() error {
	if t.Token == "" {
		return errors.New("config: telegram.token (BOT_TOKEN) is required")
	}
	mode := strings.ToLower(strings.TrimSpace(t.RunMode))
	switch mode {
	case "", "polling", RunModeLongpoll:
		mode = RunModeLongpoll
	case RunModeWebhook:
	default:
		return fmt.Errorf("config: telegram.run_mode %q is not one of webhook, longpoll", t.RunMode)
	}
	if mode == RunModeLongpoll && t.LongPollTimeoutSeconds < 0 {
		return errors.New("config: telegram.longpoll_timeout_seconds must not be negative")
	}
	t.RunMode = mode
	return nil
}

func (w *WebhookConfig) validate() error {
	switch {
	case strings.TrimSpace(w.URL) == "":
		return errors.New("config: webhook.url is required in webhook mode")
	case strings.TrimSpace(w.Listen) == "":
		return errors.New("config: webhook.listen is required in webhook mode")
	case w.Port <= 0:
		return errors.New("config: webhook.port must be positive in webhook mode")
	}
	return nil
}

func (t *TriviaConfig) normalize() error {
	base := strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
	if base == "" {
		base = DefaultTriviaBaseURL
	}
	if !strings.HasPrefix(base, "https://") && !strings.HasPrefix(base, "http://") {
		return fmt.Errorf("config: trivia.base_url %q is not an http(s) URL", t.BaseURL)
	}
	if t.TimeoutSeconds < 0 {
		return errors.New("config: trivia.timeout_seconds must not be negative")
	}
	if t.TimeoutSeconds == 0 {
		t.TimeoutSeconds = DefaultTriviaTimeoutSeconds
	}
	t.BaseURL = base
	return nil
}

func (r *RateLimitConfig) normalize() error {
	for i, raw := range r.ExcludeUpdates {
		kind := strings.ToLower(strings.TrimSpace(raw))
		if kind != "" && !slices.Contains(updateKinds, kind) {
			return fmt.Errorf("config: rate_limit.exclude_updates %q is not one of %s",
				raw, strings.Join(updateKinds, ", "))
		}
		r.ExcludeUpdates[i] = kind
	}
	return nil
}
