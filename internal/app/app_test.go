package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/quizbot/core/bootstrap"
	coreconfig "github.com/m3rciful/quizbot/core/config"

	tele "gopkg.in/telebot.v4"
)

func testConfig(t *testing.T) *coreconfig.Config {
	t.Helper()
	cfg := &coreconfig.Config{Telegram: coreconfig.TelegramConfig{Token: "123:abc"}}
	cfg.RateLimit.IntervalMS = 200
	require.NoError(t, coreconfig.Normalize(cfg))
	return cfg
}

func TestTelegramRunOptions(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, &bootstrap.Result{ProviderURL: cfg.Trivia.BaseURL})
	require.NoError(t, err)

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	assert.Same(t, cfg, opts.Config)
	require.NotNil(t, opts.Registry)
	assert.NotNil(t, opts.OnStop)

	endpoints := map[any]bool{}
	for _, r := range opts.Routes {
		endpoints[r.Endpoint] = true
	}
	for _, want := range []any{"/start", "/stop", "/hello", "/go", "/sessions", tele.OnCallback, tele.OnText} {
		assert.True(t, endpoints[want], "missing route %v", want)
	}

	var names []string
	for _, mw := range opts.Middlewares {
		names = append(names, mw.Name)
	}
	assert.Equal(t, []string{"recover", "rate_limit", "logger", "metrics"}, names)
}

func TestNewRequiresInputs(t *testing.T) {
	_, err := New(nil, &bootstrap.Result{})
	assert.Error(t, err)
	_, err = New(testConfig(t), nil)
	assert.Error(t, err)
}

func TestNewProviderUsesConfig(t *testing.T) {
	cfg := testConfig(t)
	p := NewProvider(cfg, &bootstrap.Result{ProviderURL: "http://127.0.0.1:1"})
	assert.NotNil(t, p)
}
