package quiz

import (
	"html"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ShuffleFunc reorders options in place.
type ShuffleFunc func(options []string)

// DefaultShuffle shuffles with the global uniform source.
func DefaultShuffle(options []string) {
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}

// NewShuffle returns a ShuffleFunc drawing from r. The result is not safe
// for concurrent use unless r is.
func NewShuffle(r *rand.Rand) ShuffleFunc {
	return func(options []string) {
		r.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
	}
}

// PresentOptions decodes the answers of q and returns them shuffled along
// with the decoded correct answer. Every call produces a fresh order.
func PresentOptions(q Question, shuffle ShuffleFunc) ([]string, string) {
	if shuffle == nil {
		shuffle = DefaultShuffle
	}
	correct := html.UnescapeString(q.CorrectAnswer)
	options := make([]string, 0, len(q.IncorrectAnswers)+1)
	for _, a := range q.IncorrectAnswers {
		options = append(options, html.UnescapeString(a))
	}
	options = append(options, correct)
	shuffle(options)
	return options, correct
}

// OptionLabel returns the label shown in front of option i.
func OptionLabel(f Format, i int) string {
	letters := "ABCD"
	if f == FormatBoolean {
		letters = "ab"
	}
	if i >= 0 && i < len(letters) {
		return letters[i : i+1]
	}
	return strconv.Itoa(i + 1)
}

// RenderQuestion formats the question with its labelled options. n is the
// 0-based position of the question in the batch.
func RenderQuestion(n int, text string, f Format, options []string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(n + 1))
	b.WriteString(") ")
	b.WriteString(html.UnescapeString(text))
	b.WriteString("\n")
	for i, opt := range options {
		b.WriteString("\n")
		b.WriteString(OptionLabel(f, i))
		b.WriteString(". ")
		b.WriteString(opt)
	}
	return b.String()
}

// tapPayload is the payload of button i offered under key.
func tapPayload(key string, i int) string {
	return key + ":" + strconv.Itoa(i)
}

// parseTap resolves a button payload against the n options offered under
// key. A payload from another key is ErrStaleChoice.
func parseTap(raw, key string, n int) (int, error) {
	got, idx, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || got != key {
		return 0, ErrStaleChoice
	}
	return parseIndex(idx, n, 0)
}

// parseIndex parses raw as an index into a list of n options. base is the
// number the first option is addressed by (0 for buttons, 1 for typed input).
func parseIndex(raw string, n, base int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidSelection
	}
	i := v - base
	if i < 0 || i >= n {
		return 0, ErrInvalidSelection
	}
	return i, nil
}
