package bot

import (
	"fmt"
	"log/slog"

	"github.com/m3rciful/quizbot/core/logger"
	tg "github.com/m3rciful/quizbot/core/telegram"
	tghelpers "github.com/m3rciful/quizbot/core/telegram/helpers"
	"github.com/m3rciful/quizbot/internal/quiz"

	tele "gopkg.in/telebot.v4"
)

// Registry builds the command and callback registry of the bot.
func (b *Bot) Registry() (*tg.Registry, error) {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", tg.Command{
		Handler:     b.command(quiz.CommandStart),
		Description: "Start a new quiz",
	})
	reg.RegisterCommand("/stop", tg.Command{
		Handler:     b.command(quiz.CommandStop),
		Description: "Stop the current quiz",
	})
	reg.RegisterCommand("/hello", tg.Command{
		Handler:     hello,
		Description: "Say hello",
	})
	reg.RegisterCommand("/go", tg.Command{
		Handler:     goCommand,
		Description: "Trigger go",
	})
	reg.RegisterCommand("/sessions", tg.Command{
		Handler:     b.sessions,
		Description: "Show the number of running games",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := reg.RegisterCallback(CallbackUnique, b.handleCallback); err != nil {
		return nil, err
	}
	reg.SetCallbackNotFound(staleButton)
	// Idle chats get the engine's hint instead of silence.
	reg.SetTextFallback(b.HandleText)
	return reg, nil
}

func (b *Bot) command(name string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return b.dispatch(c, quiz.Command(name))
	}
}

func hello(c tele.Context) error {
	name := ""
	if u := c.Sender(); u != nil {
		name = u.FirstName
	}
	return tghelpers.SendText(c, "hello "+name)
}

func goCommand(c tele.Context) error {
	return tghelpers.SendText(c, "You clicked go")
}

func (b *Bot) sessions(c tele.Context) error {
	n := b.engine.Sessions()
	logger.Info(tghelpers.BuildContext(c), "app", "admin.sessions", slog.Int("count", n))
	return tghelpers.SendText(c, fmt.Sprintf("Games in progress: %d", n))
}

// staleButton answers presses on keyboards this bot no longer serves.
func staleButton(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active."})
}

func reject(c tele.Context) error {
	logger.Warn(tghelpers.BuildContext(c), "app", "admin.reject",
		slog.String("reason", "not_admin"),
	)
	return tghelpers.SendText(c, "This command is not available.")
}
