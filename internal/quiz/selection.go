package quiz

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/quizbot/core/logger"
)

var errNoCategories = errors.New("empty category list")

func (e *Engine) askCategory(ctx context.Context, t *turn) error {
	cats, err := e.provider.Categories(ctx)
	if err == nil && len(cats) == 0 {
		err = NewFetchError("categories", errNoCategories)
	}
	if err != nil {
		t.sess.Stage = StageAborted
		t.text("Sorry, couldn't fetch categories. Use /start to try again.")
		return err
	}
	t.sess.Categories = cats
	t.sess.Stage = StageAwaitCategory
	t.say(categoryPrompt(t.sess))
	return nil
}

func categoryPrompt(sess *Session) Reply {
	key := sess.choiceKey()
	choices := make([]Choice, len(sess.Categories))
	for i, c := range sess.Categories {
		choices[i] = Choice{Label: c.Name, Payload: tapPayload(key, i)}
	}
	return Reply{Text: "Choose a category", Choices: choices, Input: InputTap}
}

func (e *Engine) handleCategory(ctx context.Context, t *turn, ev Event) error {
	prompt := categoryPrompt(t.sess)
	if ev.Kind != EventTap {
		e.reject(ctx, t, ErrUnexpectedEvent, "Please pick a category with the buttons.", prompt)
		return nil
	}
	i, err := parseTap(ev.Payload, t.sess.choiceKey(), len(t.sess.Categories))
	if err != nil {
		e.reject(ctx, t, err, rejectMsg(err, "Invalid category number."), prompt)
		return nil
	}
	chosen := t.sess.Categories[i]
	t.sess.Selections.Category = chosen
	logger.Debug(ctx, logComponent, "quiz.select",
		slog.String("step", "category"),
		slog.Int("category_id", chosen.ID),
	)
	t.text("You chose: " + chosen.Name)
	e.askDifficulty(t)
	return nil
}

func (e *Engine) askDifficulty(t *turn) {
	t.sess.Stage = StageAwaitDifficulty
	t.say(difficultyPrompt(t.sess))
}

func difficultyPrompt(sess *Session) Reply {
	key := sess.choiceKey()
	choices := make([]Choice, len(Difficulties))
	for i, d := range Difficulties {
		choices[i] = Choice{Label: d.String(), Payload: tapPayload(key, i)}
	}
	return Reply{Text: "Select a difficulty:", Choices: choices, Input: InputTap, PerRow: len(choices)}
}

func (e *Engine) handleDifficulty(ctx context.Context, t *turn, ev Event) error {
	prompt := difficultyPrompt(t.sess)
	if ev.Kind != EventTap {
		e.reject(ctx, t, ErrUnexpectedEvent, "Please pick a difficulty with the buttons.", prompt)
		return nil
	}
	i, err := parseTap(ev.Payload, t.sess.choiceKey(), len(Difficulties))
	if err != nil {
		e.reject(ctx, t, err, rejectMsg(err, "Invalid selection. Please choose easy, medium or hard."), prompt)
		return nil
	}
	chosen := Difficulties[i]
	t.sess.Selections.Difficulty = chosen
	logger.Debug(ctx, logComponent, "quiz.select",
		slog.String("step", "difficulty"),
		slog.String("difficulty", chosen.String()),
	)
	t.text("You chose: " + chosen.String())
	e.askFormat(t)
	return nil
}

func (e *Engine) askFormat(t *turn) {
	t.sess.Stage = StageAwaitFormat
	t.say(formatPrompt())
}

// formatPrompt asks for typed 1-based input; the choices only seed a reply
// keyboard that sends the number as text.
func formatPrompt() Reply {
	var b strings.Builder
	b.WriteString("Select question type (send its number):")
	choices := make([]Choice, len(Formats))
	for i, f := range Formats {
		n := strconv.Itoa(i + 1)
		b.WriteString("\n" + n + ". " + f.Label())
		choices[i] = Choice{Label: n, Payload: n}
	}
	return Reply{Text: b.String(), Choices: choices, Input: InputText, PerRow: len(choices)}
}

func (e *Engine) handleFormat(ctx context.Context, t *turn, ev Event) error {
	prompt := formatPrompt()
	if ev.Kind != EventText {
		e.reject(ctx, t, ErrUnexpectedEvent, "Please send 1 or 2.", prompt)
		return nil
	}
	i, err := parseIndex(ev.Text, len(Formats), 1)
	if err != nil {
		e.reject(ctx, t, err, "Please choose 1 or 2.", prompt)
		return nil
	}
	chosen := Formats[i]
	t.sess.Selections.Format = chosen
	logger.Debug(ctx, logComponent, "quiz.select",
		slog.String("step", "format"),
		slog.String("format", chosen.String()),
	)
	t.say(Reply{Text: "You chose: " + chosen.Label(), Dismiss: true})
	return e.startGame(ctx, t, t.sess.Selections)
}
