package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/quizbot/internal/quiz"
)

func TestMarkupInlineChoices(t *testing.T) {
	m := Markup(quiz.Reply{
		Text: "1) Q",
		Choices: []quiz.Choice{
			{Label: "A", Payload: "0"},
			{Label: "B", Payload: "1"},
			{Label: "C", Payload: "2"},
			{Label: "D", Payload: "3"},
		},
		Input:  quiz.InputTap,
		PerRow: 2,
	})
	require.NotNil(t, m)
	require.Len(t, m.InlineKeyboard, 2)
	for _, row := range m.InlineKeyboard {
		assert.Len(t, row, 2)
	}
	btn := m.InlineKeyboard[1][0]
	assert.Equal(t, "C", btn.Text)
	assert.Equal(t, CallbackUnique, btn.Unique)
	assert.Equal(t, "2", btn.Data)
}

func TestMarkupInlineOnePerRow(t *testing.T) {
	m := Markup(quiz.Reply{
		Choices: []quiz.Choice{{Label: "Books", Payload: "0"}, {Label: "Film", Payload: "1"}},
	})
	require.NotNil(t, m)
	assert.Len(t, m.InlineKeyboard, 2)
}

func TestMarkupReplyKeyboard(t *testing.T) {
	m := Markup(quiz.Reply{
		Choices: []quiz.Choice{{Label: "1", Payload: "1"}, {Label: "2", Payload: "2"}},
		Input:   quiz.InputText,
		PerRow:  2,
	})
	require.NotNil(t, m)
	assert.Empty(t, m.InlineKeyboard)
	require.Len(t, m.ReplyKeyboard, 1)
	require.Len(t, m.ReplyKeyboard[0], 2)
	assert.Equal(t, "1", m.ReplyKeyboard[0][0].Text)
	assert.True(t, m.OneTimeKeyboard)
	assert.True(t, m.ResizeKeyboard)
}

func TestMarkupWithoutChoices(t *testing.T) {
	assert.Nil(t, Markup(quiz.Reply{Text: "Correct!"}))

	m := Markup(quiz.Reply{Text: "You chose: True / False", Dismiss: true})
	require.NotNil(t, m)
	assert.True(t, m.RemoveKeyboard)
}
