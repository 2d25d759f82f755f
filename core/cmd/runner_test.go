package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/quizbot/core/config"
	coretelegram "github.com/m3rciful/quizbot/core/telegram"
)

type fakeApp struct {
	opts coretelegram.RunOptions
	err  error
}

func (a fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) { return a.opts, a.err }

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("QUIZBOT_CONFIG", "")

	p, err := ResolveConfigPath(Options{ConfigPath: "flag.yaml", ConfigEnvVar: "QUIZBOT_CONFIG"})
	require.NoError(t, err)
	assert.Equal(t, "flag.yaml", p)

	_, err = ResolveConfigPath(Options{ConfigEnvVar: "QUIZBOT_CONFIG"})
	assert.Error(t, err)

	p, err = ResolveConfigPath(Options{ConfigEnvVar: "QUIZBOT_CONFIG", DefaultConfigPath: "config.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", p)

	t.Setenv("QUIZBOT_CONFIG", "env.yaml")
	p, err = ResolveConfigPath(Options{ConfigEnvVar: "QUIZBOT_CONFIG", DefaultConfigPath: "config.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", p)
}

func TestRunWrapsLifecycleHooks(t *testing.T) {
	var calls []string
	app := fakeApp{opts: coretelegram.RunOptions{
		OnStart: func(context.Context, coretelegram.Runtime) error {
			calls = append(calls, "start")
			return nil
		},
		OnStop: func(context.Context, coretelegram.Runtime) error {
			calls = append(calls, "stop")
			return nil
		},
	}}
	var loadedPath string
	loggerClosed := false

	err := Run(Options{
		ConfigPath: "bot.yaml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedPath = path
			return &coreconfig.Config{}, nil
		},
		Bootstrap:      func(ConfigCarrier) (TelegramApp, error) { return app, nil },
		ShutdownLogger: func() error { loggerClosed = true; return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			require.NoError(t, opts.OnStart(ctx, coretelegram.Runtime{}))
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "bot.yaml", loadedPath)
	assert.Equal(t, []string{"start", "stop"}, calls)
	assert.True(t, loggerClosed)
}

func TestRunStopsOnBootstrapError(t *testing.T) {
	boom := errors.New("boom")
	ran := false
	err := Run(Options{
		ConfigPath:  "bot.yaml",
		LoadConfig:  func(string) (ConfigCarrier, error) { return &coreconfig.Config{}, nil },
		Bootstrap:   func(ConfigCarrier) (TelegramApp, error) { return nil, boom },
		RunTelegram: func(context.Context, coretelegram.RunOptions) error { ran = true; return nil },
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, ran)

	t.Setenv(defaultConfigEnv, "")
	_, err = ResolveConfigPath(Options{})
	assert.Error(t, err)
}
