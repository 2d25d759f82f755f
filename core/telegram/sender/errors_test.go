package sender

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tele "gopkg.in/telebot.v4"
)

func TestErrKind(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"deadline": {fmt.Errorf("send: %w", context.DeadlineExceeded), "timeout"},
		"dns":      {&net.DNSError{Err: "no such host", Name: "api.telegram.org"}, "dns"},
		"dial":     {&net.OpError{Op: "dial", Err: errors.New("refused")}, "dial"},
		"api 400":  {&tele.Error{Code: 400, Description: "Bad Request: chat not found"}, "http_4xx"},
		"untyped":  {errors.New("telegram: internal (502)"), "http_5xx"},
		"flood":    {tele.FloodError{RetryAfter: 3}, "flood"},
		"other":    {errors.New("boom"), "unknown"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, errKind(tc.err))
		})
	}
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, retryAfter(tele.FloodError{RetryAfter: 3}))
	assert.True(t, retryable(tele.FloodError{RetryAfter: 1}))
	assert.Zero(t, retryAfter(errors.New("boom")))
	assert.False(t, retryable(errors.New("boom")))
}

func TestRedact(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:AA-bb_CC/sendMessage": EOF`)
	assert.Equal(t, `Post "https://api.telegram.org/bot<redacted>/sendMessage": EOF`, redact(err))
}

func TestDispatcherRetriesTransientFailures(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})
	calls := 0
	assert.NoError(t, d.Enqueue(context.Background(), 7, "send.text", "sendMessage", func() error {
		calls++
		if calls < 3 {
			return &net.OpError{Op: "dial", Err: errors.New("refused")}
		}
		return nil
	}))
	d.Close()
	assert.Equal(t, 3, calls)
	assert.Zero(t, d.ErrorCount())
}
