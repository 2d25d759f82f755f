package quiz

import "fmt"

// QuestionsPerGame is the fixed size of a question batch.
const QuestionsPerGame = 10

// Category is a trivia category offered by the provider.
type Category struct {
	ID   int
	Name string
}

// Difficulty is one of the compiled-in difficulty levels.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// Difficulties lists the levels in the order they are offered.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// String returns the provider value, which doubles as the display label.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// Format is the question format of a game.
type Format int

const (
	FormatMultiple Format = iota
	FormatBoolean
)

// Formats lists the formats in the order they are offered.
var Formats = []Format{FormatMultiple, FormatBoolean}

// String returns the provider value ("multiple" or "boolean").
func (f Format) String() string {
	switch f {
	case FormatMultiple:
		return "multiple"
	case FormatBoolean:
		return "boolean"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Label returns the human readable name of the format.
func (f Format) Label() string {
	switch f {
	case FormatMultiple:
		return "Multiple choice"
	case FormatBoolean:
		return "True / False"
	}
	return f.String()
}

// OptionCount is the number of answers a question of this format carries.
func (f Format) OptionCount() int {
	if f == FormatBoolean {
		return 2
	}
	return 4
}

// Question is a single trivia question as returned by the provider.
// Text and answers may still contain HTML entities.
type Question struct {
	Text             string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// Selections holds the completed choices of the selection flow.
type Selections struct {
	Category   Category
	Difficulty Difficulty
	Format     Format
}
