package telegram

import (
	"net/http"
	"time"

	"github.com/m3rciful/quizbot/core/telegram/netutil"
)

const (
	telegramClientTimeout = 30 * time.Second
	telegramRetryAttempts = 3
	telegramRetryBackoff  = 2 * time.Second
)

// BuildHTTPClient returns an HTTP client tuned for Telegram API calls.
// The long-poll timeout is added on top so getUpdates is not cut short.
func BuildHTTPClient(longPoll time.Duration) *http.Client {
	return netutil.NewHTTPClient(netutil.ClientOptions{
		Timeout:         telegramClientTimeout + longPoll,
		ResponseTimeout: telegramClientTimeout + longPoll,
		RetryAttempts:   telegramRetryAttempts,
		RetryBackoff:    telegramRetryBackoff,
	})
}
