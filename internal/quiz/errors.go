package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed reports that the content provider was unreachable or
	// returned unusable data. It always ends the current session.
	ErrFetchFailed = errors.New("quiz: fetch failed")
	// ErrInvalidSelection reports an unparseable or out-of-range choice.
	ErrInvalidSelection = errors.New("quiz: invalid selection")
	// ErrUnexpectedEvent reports an event kind the current stage does not accept.
	ErrUnexpectedEvent = errors.New("quiz: unexpected event")
	// ErrStaleChoice reports a button offered by an earlier step or game.
	ErrStaleChoice = errors.New("quiz: stale choice")
)

// FetchError wraps a provider failure with the operation that caused it.
type FetchError struct {
	Op  string
	Err error
}

// NewFetchError builds a FetchError for op.
func NewFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s failed", e.Op)
	}
	return fmt.Sprintf("fetch %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Is makes every FetchError match ErrFetchFailed.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Code is picked up by the handler summary logger.
func (e *FetchError) Code() string { return "FETCH_FAILED" }
