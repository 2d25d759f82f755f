package bot

import (
	"github.com/m3rciful/quizbot/core/telegram/keyboard"
	"github.com/m3rciful/quizbot/internal/quiz"

	tele "gopkg.in/telebot.v4"
)

// Markup renders the choices of a reply. Tap choices become inline buttons
// under the quiz callback key; text choices become a one-time reply
// keyboard. A reply without choices may only dismiss an earlier keyboard.
func Markup(r quiz.Reply) *tele.ReplyMarkup {
	if len(r.Choices) == 0 {
		if r.Dismiss {
			return keyboard.RemoveKeyboard()
		}
		return nil
	}

	if r.Input == quiz.InputText {
		labels := make([]string, len(r.Choices))
		for i, ch := range r.Choices {
			labels[i] = ch.Label
		}
		return keyboard.ReplyButtons(keyboard.Chunk(labels, r.PerRow)...)
	}

	buttons := make([]keyboard.InlineBtn, len(r.Choices))
	for i, ch := range r.Choices {
		buttons[i] = keyboard.InlineBtn{Text: ch.Label, Unique: CallbackUnique, Data: ch.Payload}
	}
	return keyboard.InlineButtonsNPerRow(buttons, r.PerRow)
}
