package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/quizbot/core/logger"
	"github.com/m3rciful/quizbot/core/telegram/state"
)

const logComponent = "quiz"

const (
	msgIdle    = "No game in progress. Use /start to play."
	msgStopped = "Game stopped. Use /start to play again."
)

// Option customises an Engine.
type Option func(*Engine)

// WithShuffle replaces the option shuffle.
func WithShuffle(fn ShuffleFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.shuffle = fn
		}
	}
}

// WithStore replaces the in-memory session store.
func WithStore(s state.Store[Session]) Option {
	return func(e *Engine) {
		if s != nil {
			e.sessions = s
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine dispatches conversation events to the quiz state machine.
type Engine struct {
	provider Provider
	sessions state.Store[Session]
	shuffle  ShuffleFunc
	now      func() time.Time
}

// NewEngine builds an Engine backed by provider.
func NewEngine(provider Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		sessions: state.NewMemoryStore[Session](),
		shuffle:  DefaultShuffle,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InProgress reports whether the conversation has a live session.
func (e *Engine) InProgress(conversationID int64) bool {
	return e.sessions.Has(conversationID)
}

// Stage returns the current stage of the conversation.
func (e *Engine) Stage(conversationID int64) Stage {
	sess, ok := e.sessions.Get(conversationID)
	if !ok {
		return StageIdle
	}
	return sess.Stage
}

// Sessions returns the number of live sessions.
func (e *Engine) Sessions() int {
	return e.sessions.Len()
}

// Session returns a copy of the conversation's session.
func (e *Engine) Session(conversationID int64) (Session, bool) {
	return e.sessions.Get(conversationID)
}

// turn collects the replies produced while handling one event.
type turn struct {
	sess    *Session
	replies []Reply
}

func (t *turn) say(r Reply) {
	t.replies = append(t.replies, r)
}

func (t *turn) text(s string) {
	t.say(Reply{Text: s})
}

// Handle processes one event for the conversation and returns the stage
// reached. Events of the same conversation are serialised; replies are sent
// in order once the new state is settled. Recoverable input errors are
// answered with a re-prompt and never returned.
func (e *Engine) Handle(ctx context.Context, conversationID int64, ev Event, out Responder) (Stage, error) {
	var (
		stage     Stage
		handleErr error
		sendErr   error
	)
	e.sessions.Do(conversationID, func(cur *Session) *Session {
		t := &turn{sess: cur}
		var from Stage
		if cur != nil {
			from = cur.Stage
			ctx = logger.WithFields(ctx, slog.String("game_id", cur.GameID))
		}
		handleErr = e.dispatch(ctx, t, ev)

		stage = StageIdle
		if t.sess != nil {
			stage = t.sess.Stage
		}
		if from != stage {
			logger.Debug(ctx, logComponent, "quiz.stage",
				slog.Int64("conversation_id", conversationID),
				slog.String("from", from.String()),
				slog.String("to", stage.String()),
				slog.String("kind", ev.Kind.String()),
			)
		}
		sendErr = e.send(ctx, out, t.replies)

		if t.sess == nil || stage.Terminal() {
			return nil
		}
		return t.sess
	})
	if handleErr != nil {
		return stage, handleErr
	}
	if sendErr != nil {
		return stage, fmt.Errorf("quiz: send reply: %w", sendErr)
	}
	return stage, nil
}

func (e *Engine) send(ctx context.Context, out Responder, replies []Reply) error {
	if out == nil {
		return nil
	}
	for _, r := range replies {
		if err := out.Reply(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) dispatch(ctx context.Context, t *turn, ev Event) error {
	if ev.Kind == EventCommand {
		switch ev.Command {
		case CommandStart:
			if t.sess != nil {
				logger.Info(ctx, logComponent, "quiz.restart",
					slog.String("stage", t.sess.Stage.String()),
				)
			}
			t.sess = e.newSession()
			ctx = logger.WithFields(ctx, slog.String("game_id", t.sess.GameID))
			return e.askCategory(ctx, t)
		case CommandStop:
			if t.sess == nil {
				t.text(msgIdle)
				return nil
			}
			logger.Info(ctx, logComponent, "quiz.aborted",
				slog.String("stage", t.sess.Stage.String()),
				slog.Int("index", t.sess.Index),
				slog.Int("score", t.sess.Score),
				slog.Int("remaining", t.sess.Remaining()),
			)
			t.sess.Stage = StageAborted
			t.text(msgStopped)
			return nil
		}
	}

	if t.sess == nil {
		t.text(msgIdle)
		return nil
	}

	switch t.sess.Stage {
	case StageAwaitCategory:
		return e.handleCategory(ctx, t, ev)
	case StageAwaitDifficulty:
		return e.handleDifficulty(ctx, t, ev)
	case StageAwaitFormat:
		return e.handleFormat(ctx, t, ev)
	case StageQuizActive:
		return e.handleAnswer(ctx, t, ev)
	case StageIdle, StageFinished, StageAborted:
		stale := t.sess.Stage
		t.sess = nil
		t.text(msgIdle)
		return fmt.Errorf("quiz: stored session in stage %s", stale)
	default:
		return fmt.Errorf("quiz: unhandled stage %s", t.sess.Stage)
	}
}

func (e *Engine) newSession() *Session {
	return &Session{
		GameID:    uuid.NewString(),
		StartedAt: e.now(),
		Stage:     StageIdle,
	}
}

// rejectMsg picks the notice for a refused choice.
func rejectMsg(err error, invalid string) string {
	if errors.Is(err, ErrStaleChoice) {
		return "That button is no longer active."
	}
	return invalid
}

// reject re-offers prompt after an unusable input.
func (e *Engine) reject(ctx context.Context, t *turn, reason error, msg string, prompt Reply) {
	logger.Debug(ctx, logComponent, "quiz.reject",
		slog.String("stage", t.sess.Stage.String()),
		slog.String("reason", reason.Error()),
	)
	prompt.Text = msg + "\n\n" + prompt.Text
	t.say(prompt)
}
