package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/quizbot/core/logger"
)

var errEmptyBatch = errors.New("empty question batch")

// startGame fetches the batch once and presents the first question.
func (e *Engine) startGame(ctx context.Context, t *turn, sel Selections) error {
	questions, err := e.provider.Questions(ctx, sel, QuestionsPerGame)
	if err == nil && len(questions) == 0 {
		err = NewFetchError("questions", errEmptyBatch)
	}
	if err != nil {
		t.sess.Stage = StageAborted
		t.text("Sorry, couldn't fetch questions. Use /start to try again.")
		return err
	}

	t.sess.Questions = questions
	t.sess.Index = 0
	t.sess.Score = 0
	t.sess.Stage = StageQuizActive
	logger.Info(ctx, logComponent, "quiz.started",
		slog.Int("category_id", sel.Category.ID),
		slog.String("difficulty", sel.Difficulty.String()),
		slog.String("format", sel.Format.String()),
		slog.Int("count", len(questions)),
	)
	e.presentQuestion(ctx, t)
	return nil
}

// presentQuestion shows the question at the current index with a fresh
// shuffle, or finishes the game once the batch is exhausted.
func (e *Engine) presentQuestion(ctx context.Context, t *turn) {
	sess := t.sess
	if sess.Index >= len(sess.Questions) {
		e.finish(ctx, t)
		return
	}
	q := sess.Questions[sess.Index]
	sess.Options, sess.Correct = PresentOptions(q, e.shuffle)
	sess.Stage = StageQuizActive
	t.say(questionReply(sess, ""))
}

func questionReply(sess *Session, notice string) Reply {
	f := sess.Selections.Format
	q := sess.Questions[sess.Index]
	text := RenderQuestion(sess.Index, q.Text, f, sess.Options)
	if notice != "" {
		text = notice + "\n\n" + text
	}
	key := sess.choiceKey()
	choices := make([]Choice, len(sess.Options))
	for i, opt := range sess.Options {
		label := OptionLabel(f, i)
		if f == FormatBoolean {
			label = opt
		}
		choices[i] = Choice{Label: label, Payload: tapPayload(key, i)}
	}
	return Reply{Text: text, Choices: choices, Input: InputTap, PerRow: 2}
}

// handleAnswer resolves the tapped index against the options stored for
// the question on screen. Buttons of earlier questions re-show it.
func (e *Engine) handleAnswer(ctx context.Context, t *turn, ev Event) error {
	sess := t.sess
	if sess.Index >= len(sess.Questions) {
		e.finish(ctx, t)
		return nil
	}
	if ev.Kind != EventTap {
		e.repeatQuestion(ctx, t, ErrUnexpectedEvent, "Please answer with the buttons.")
		return nil
	}
	i, err := parseTap(ev.Payload, sess.choiceKey(), len(sess.Options))
	if err != nil {
		e.repeatQuestion(ctx, t, err, rejectMsg(err, "Invalid answer."))
		return nil
	}

	chosen := sess.Options[i]
	correct := strings.EqualFold(strings.TrimSpace(chosen), strings.TrimSpace(sess.Correct))
	if correct {
		sess.Score++
		t.text("Correct!")
	} else {
		t.text("Wrong! The answer is " + sess.Correct)
	}
	logger.Debug(ctx, logComponent, "quiz.answer",
		slog.Int("index", sess.Index),
		slog.Bool("correct", correct),
		slog.Int("score", sess.Score),
	)
	sess.Index++
	e.presentQuestion(ctx, t)
	return nil
}

func (e *Engine) repeatQuestion(ctx context.Context, t *turn, reason error, msg string) {
	logger.Debug(ctx, logComponent, "quiz.reject",
		slog.String("stage", t.sess.Stage.String()),
		slog.String("reason", reason.Error()),
	)
	t.say(questionReply(t.sess, msg))
}

func (e *Engine) finish(ctx context.Context, t *turn) {
	sess := t.sess
	sess.Stage = StageFinished
	sess.Options = nil
	sess.Correct = ""
	logger.Info(ctx, logComponent, "quiz.finished",
		slog.Int("score", sess.Score),
		slog.Int("count", len(sess.Questions)),
		slog.Duration("duration", logger.RoundMS(e.now().Sub(sess.StartedAt))),
	)
	t.text(fmt.Sprintf("Game over! Your score: %d/%d", sess.Score, len(sess.Questions)))
}
