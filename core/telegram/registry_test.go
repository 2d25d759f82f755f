package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func nop(tele.Context) error { return nil }

func TestRegisterCommand(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", Command{Handler: nop, Description: "Start", Aliases: []string{"begin"}})
	reg.RegisterCommand("/admin", Command{Handler: nop, Description: "Admin", AdminOnly: true})
	reg.RegisterCommand("/secret", Command{Handler: nop, Description: "Secret", Hidden: true})
	reg.RegisterCommand("noslash", Command{Handler: nop, Description: "x"})
	reg.RegisterCommand("/empty", Command{Handler: nop})
	reg.RegisterCommand("/start", Command{Handler: nop, Description: "again"})

	assert.Len(t, reg.Commands(), 3)
	assert.Equal(t, []tele.Command{{Text: "start", Description: "Start"}}, reg.ListCommands(true))
	assert.Len(t, reg.ListCommands(false), 3)
	assert.Equal(t, "admin", reg.ListCommands(false)[0].Text)

	for _, in := range []string{"/start", "start", " start ", "begin", "/begin"} {
		key, cmd, ok := reg.LookupCommand(in)
		require.True(t, ok, in)
		assert.Equal(t, "/start", key)
		assert.Equal(t, "Start", cmd.Description)
	}
	_, _, ok := reg.LookupCommand("stop")
	assert.False(t, ok)
}

func TestRegisterCallback(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("quiz", nop))
	assert.Error(t, reg.RegisterCallback("quiz", nop))
	assert.Error(t, reg.RegisterCallback("", nop))
	assert.Error(t, reg.RegisterCallback("other", nil))

	_, ok := reg.GetCallback("quiz")
	assert.True(t, ok)
	_, ok = reg.GetCallback("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"quiz"}, reg.ListCallbacks())
	assert.NotNil(t, reg.CallbackNotFound())
}
