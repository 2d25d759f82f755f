package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	coreconfig "github.com/m3rciful/quizbot/core/config"
	"github.com/m3rciful/quizbot/core/logger"
	"github.com/m3rciful/quizbot/core/telegram/netutil"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	// ProviderClient overrides the HTTP client used for the content provider.
	ProviderClient *http.Client
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	// ProviderClient talks to the trivia provider. It never retries.
	ProviderClient *http.Client
	ProviderURL    string
}

// Run initializes the logger and the outbound provider client.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	client := opts.ProviderClient
	if client == nil {
		timeout := time.Duration(opts.Config.Trivia.TimeoutSeconds) * time.Second
		client = netutil.NewHTTPClient(netutil.ClientOptions{
			Timeout:         timeout,
			ResponseTimeout: timeout,
		})
	}

	logger.Trivia.Info("provider configured",
		slog.String("event", "provider"),
		slog.String("url", opts.Config.Trivia.BaseURL),
		slog.Int("timeout_seconds", opts.Config.Trivia.TimeoutSeconds),
	)

	return &Result{
		ProviderClient: client,
		ProviderURL:    opts.Config.Trivia.BaseURL,
	}, nil
}
