package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/quizbot/core/logger"
	"github.com/m3rciful/quizbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var dispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher routes helper sends through d; nil sends inline.
func SetDispatcher(d *sender.Dispatcher) {
	dispatcher.Store(d)
}

const statsKey = "reply_stats"

type replyStats struct {
	messages atomic.Int32
	keyboard atomic.Bool
}

// TrackReplies starts counting the messages sent for c through this package.
func TrackReplies(c tele.Context) {
	c.Set(statsKey, &replyStats{})
}

// Replies reports the messages sent for c and whether any carried markup.
func Replies(c tele.Context) (messages int, keyboard bool) {
	s, ok := c.Get(statsKey).(*replyStats)
	if !ok {
		return 0, false
	}
	return int(s.messages.Load()), s.keyboard.Load()
}

func countReply(c tele.Context, markup bool) {
	if s, ok := c.Get(statsKey).(*replyStats); ok {
		s.messages.Add(1)
		if markup {
			s.keyboard.Store(true)
		}
	}
}

// deliver queues run on the conversation's sender worker. Without a
// dispatcher, or when it refuses the job, run is called inline.
func deliver(c tele.Context, action, endpoint string, markup bool, run func() error) error {
	ctx := BuildContext(c)
	if d := dispatcher.Load(); d != nil {
		err := d.Enqueue(ctx, ConversationID(c), action, endpoint, run)
		switch {
		case err == nil:
			countReply(c, markup)
			return nil
		case !errors.Is(err, sender.ErrQueueFull) && !errors.Is(err, sender.ErrQueueClosed):
			return err
		}
		logger.Warn(ctx, "tg.sender", "queue.fallback",
			slog.String("action", action),
			slog.String("err", err.Error()),
		)
	}
	if err := run(); err != nil {
		return err
	}
	countReply(c, markup)
	return nil
}

// SendText sends raw text (no parse mode) to the current chat.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var so *tele.SendOptions
	if len(opts) > 0 {
		so = opts[0]
	}
	return deliver(c, "send.text", "sendMessage", so != nil && so.ReplyMarkup != nil, func() error {
		if so != nil {
			return c.Send(text, so)
		}
		return c.Send(text)
	})
}

// SendWithMarkup sends raw text with the given reply markup.
func SendWithMarkup(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup == nil {
		return SendText(c, text)
	}
	return SendText(c, text, &tele.SendOptions{ReplyMarkup: markup})
}
