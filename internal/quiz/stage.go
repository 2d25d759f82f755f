package quiz

import "fmt"

// Stage is the position of a conversation in the quiz state machine.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitCategory
	StageAwaitDifficulty
	StageAwaitFormat
	StageQuizActive
	StageFinished
	StageAborted
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAwaitCategory:
		return "await_category"
	case StageAwaitDifficulty:
		return "await_difficulty"
	case StageAwaitFormat:
		return "await_format"
	case StageQuizActive:
		return "quiz_active"
	case StageFinished:
		return "finished"
	case StageAborted:
		return "aborted"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Terminal reports whether the stage ends the session.
func (s Stage) Terminal() bool {
	return s == StageFinished || s == StageAborted
}
