package quiz

import (
	"strconv"
	"time"
)

// Session is the mutable state of one conversation's game.
type Session struct {
	GameID    string
	StartedAt time.Time
	Stage     Stage

	// Categories is the list most recently offered in AwaitCategory.
	Categories []Category
	Selections Selections

	Questions []Question
	Index     int
	// Options and Correct describe the question currently on screen,
	// both already HTML-decoded.
	Options []string
	Correct string
	Score   int
}

// Remaining reports how many questions have not been answered yet.
func (s *Session) Remaining() int {
	return len(s.Questions) - s.Index
}

// choiceKey names the buttons offered in the current stage: the step
// ("cat", "diff" or "q<index>") and a prefix of the game id. It is empty
// in stages that offer no buttons.
func (s *Session) choiceKey() string {
	var step string
	switch s.Stage {
	case StageAwaitCategory:
		step = "cat"
	case StageAwaitDifficulty:
		step = "diff"
	case StageQuizActive:
		step = "q" + strconv.Itoa(s.Index)
	default:
		return ""
	}
	id := s.GameID
	if len(id) > 8 {
		id = id[:8]
	}
	return step + "." + id
}
