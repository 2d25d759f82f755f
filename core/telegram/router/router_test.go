package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tg "github.com/m3rciful/quizbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

type fsm struct{ live bool }

func (f fsm) InProgress(int64) bool         { return f.live }
func (f fsm) HandleText(tele.Context) error { return nil }

func textContext(t *testing.T, text string, userID int64) tele.Context {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b.NewContext(tele.Update{ID: 1, Message: &tele.Message{
		Text:   text,
		Sender: &tele.User{ID: userID},
		Chat:   &tele.Chat{ID: userID},
	}})
}

func testRegistry(calls map[string]int) *tg.Registry {
	reg := tg.NewRegistry()
	count := func(name string) tele.HandlerFunc {
		return func(tele.Context) error { calls[name]++; return nil }
	}
	reg.RegisterCommand("/start", tg.Command{Handler: count("start"), Description: "Start", Aliases: []string{"go"}})
	reg.RegisterCommand("/sessions", tg.Command{Handler: count("sessions"), Description: "Sessions", AdminOnly: true})
	reg.SetTextFallback(count("fallback"))
	return reg
}

func TestCommandRoutes(t *testing.T) {
	calls := map[string]int{}
	rejected := 0
	routes := CommandRoutes(testRegistry(calls), CommandRouteOptions{
		AdminID:       1,
		OnAdminReject: func(tele.Context) error { rejected++; return nil },
	})

	var endpoints []any
	byEndpoint := map[any]tele.HandlerFunc{}
	for _, r := range routes {
		endpoints = append(endpoints, r.Endpoint)
		byEndpoint[r.Endpoint] = r.Handler
	}
	assert.Equal(t, []any{"/go", "/sessions", "/start"}, endpoints)

	require.NoError(t, byEndpoint["/go"](textContext(t, "/go", 5)))
	require.NoError(t, byEndpoint["/sessions"](textContext(t, "/sessions", 5)))
	require.NoError(t, byEndpoint["/sessions"](textContext(t, "/sessions", 1)))

	assert.Equal(t, 1, calls["start"])
	assert.Equal(t, 1, calls["sessions"])
	assert.Equal(t, 1, rejected)
}

func TestPickTextHandler(t *testing.T) {
	reg := testRegistry(map[string]int{})

	name, h := pickTextHandler(textContext(t, "A", 5), fsm{live: true}, reg, TextOptions{})
	assert.Equal(t, "fsm", name)
	assert.NotNil(t, h)

	name, _ = pickTextHandler(textContext(t, "start", 5), fsm{}, reg, TextOptions{})
	assert.Equal(t, "text.start", name)

	name, _ = pickTextHandler(textContext(t, "sessions", 1), fsm{}, reg, TextOptions{})
	assert.Equal(t, "fallback", name, "admin commands are never reachable as plain text")

	name, h = pickTextHandler(textContext(t, "hi", 5), nil, nil, TextOptions{})
	assert.Equal(t, "unknown_text", name)
	assert.Nil(t, h)
}
