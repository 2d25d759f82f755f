package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/quizbot/internal/quiz"

	tele "gopkg.in/telebot.v4"
)

type handled struct {
	conv int64
	ev   quiz.Event
}

type fakeEngine struct {
	events   []handled
	live     map[int64]bool
	sessions int
}

func (f *fakeEngine) Handle(_ context.Context, conv int64, ev quiz.Event, _ quiz.Responder) (quiz.Stage, error) {
	f.events = append(f.events, handled{conv: conv, ev: ev})
	return quiz.StageAwaitCategory, nil
}

func (f *fakeEngine) InProgress(conv int64) bool { return f.live[conv] }

func (f *fakeEngine) Sessions() int { return f.sessions }

func newOfflineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b
}

func TestHandleCallbackForwardsPayload(t *testing.T) {
	eng := &fakeEngine{}
	b := New(eng, Options{})
	tb := newOfflineBot(t)

	c := tb.NewContext(tele.Update{
		ID: 1,
		Callback: &tele.Callback{
			Data:    "\f" + CallbackUnique + "|2",
			Sender:  &tele.User{ID: 7},
			Message: &tele.Message{Chat: &tele.Chat{ID: 42}},
		},
	})
	require.NoError(t, b.handleCallback(c))

	require.Len(t, eng.events, 1)
	assert.Equal(t, int64(42), eng.events[0].conv)
	assert.Equal(t, quiz.Tap("2"), eng.events[0].ev)
}

func TestHandleTextForwardsText(t *testing.T) {
	eng := &fakeEngine{live: map[int64]bool{42: true}}
	b := New(eng, Options{})
	tb := newOfflineBot(t)

	c := tb.NewContext(tele.Update{
		ID: 2,
		Message: &tele.Message{
			Text:   " 2 ",
			Sender: &tele.User{ID: 7},
			Chat:   &tele.Chat{ID: 42},
		},
	})
	assert.True(t, b.InProgress(42))
	require.NoError(t, b.HandleText(c))

	require.Len(t, eng.events, 1)
	assert.Equal(t, quiz.Text(" 2 "), eng.events[0].ev)
}

func TestRegistry(t *testing.T) {
	b := New(&fakeEngine{}, Options{AdminID: 1})
	reg, err := b.Registry()
	require.NoError(t, err)

	var visible []string
	for _, cmd := range reg.ListCommands(true) {
		visible = append(visible, cmd.Text)
	}
	assert.Equal(t, []string{"go", "hello", "start", "stop"}, visible)

	_, cmd, ok := reg.LookupCommand("sessions")
	require.True(t, ok)
	assert.True(t, cmd.AdminOnly)

	assert.Equal(t, []string{CallbackUnique}, reg.ListCallbacks())
	assert.NotNil(t, reg.TextFallback())
}
