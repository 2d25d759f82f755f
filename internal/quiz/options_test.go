package quiz

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestPresentOptionsMembership(t *testing.T) {
	shuffle := NewShuffle(rand.New(rand.NewPCG(7, 11)))
	cases := []struct {
		name string
		q    Question
		want []string
	}{
		{
			name: "multiple",
			q: Question{
				CorrectAnswer:    "Ni&ntilde;o",
				IncorrectAnswers: []string{"A &amp; B", "&quot;C&quot;", "D"},
			},
			want: []string{"Niño", "A & B", `"C"`, "D"},
		},
		{
			name: "boolean",
			q:    Question{CorrectAnswer: "False", IncorrectAnswers: []string{"True"}},
			want: []string{"False", "True"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			positions := map[int]int{}
			for i := 0; i < 1000; i++ {
				opts, correct := PresentOptions(tc.q, shuffle)
				require.Len(t, opts, len(tc.want))
				require.Equal(t, sorted(tc.want), sorted(opts))

				matches := 0
				for j, o := range opts {
					if strings.EqualFold(o, correct) {
						matches++
						positions[j]++
					}
				}
				require.Equal(t, 1, matches)
			}
			// Every slot holds the correct answer at least once.
			assert.Len(t, positions, len(tc.want))
		})
	}
}

func TestPresentOptionsIsRepeatable(t *testing.T) {
	q := Question{CorrectAnswer: "Paris", IncorrectAnswers: []string{"Rome", "Berlin", "Madrid"}}
	first, c1 := PresentOptions(q, nil)
	second, c2 := PresentOptions(q, nil)
	assert.Equal(t, c1, c2)
	assert.Equal(t, sorted(first), sorted(second))
	assert.Equal(t, []string{"Rome", "Berlin", "Madrid"}, q.IncorrectAnswers)
}

func TestRenderQuestion(t *testing.T) {
	got := RenderQuestion(2, "Who wrote &quot;Dune&quot;?", FormatMultiple, []string{"Herbert", "Asimov", "Clarke", "Le Guin"})
	assert.Equal(t, "3) Who wrote \"Dune\"?\n\nA. Herbert\nB. Asimov\nC. Clarke\nD. Le Guin", got)

	got = RenderQuestion(0, "Water is wet.", FormatBoolean, []string{"True", "False"})
	assert.Equal(t, "1) Water is wet.\n\na. True\nb. False", got)
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "A", OptionLabel(FormatMultiple, 0))
	assert.Equal(t, "D", OptionLabel(FormatMultiple, 3))
	assert.Equal(t, "b", OptionLabel(FormatBoolean, 1))
	assert.Equal(t, "5", OptionLabel(FormatMultiple, 4))
}

func TestParseIndexRange(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for v := -2; v <= n+2; v++ {
			raw := strconv.Itoa(v)
			i, err := parseIndex(raw, n, 0)
			if v >= 0 && v < n {
				require.NoError(t, err, "n=%d v=%d", n, v)
				assert.Equal(t, v, i)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSelection, "n=%d v=%d", n, v)
			}

			_, err = parseIndex(raw, n, 1)
			if v >= 1 && v <= n {
				assert.NoError(t, err, "1-based n=%d v=%d", n, v)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSelection, "1-based n=%d v=%d", n, v)
			}
		}
	}
	for _, raw := range []string{"", "one", "1.5", "0x1"} {
		_, err := parseIndex(raw, 4, 0)
		assert.ErrorIs(t, err, ErrInvalidSelection, "raw=%q", raw)
	}
}

func TestParseTapChecksKey(t *testing.T) {
	i, err := parseTap(" "+tapPayload("q3.abcd1234", 2)+" ", "q3.abcd1234", 4)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	for _, raw := range []string{"2", "q2.abcd1234:2", "q3.ffff0000:2", "cat.abcd1234:2", ""} {
		_, err := parseTap(raw, "q3.abcd1234", 4)
		assert.ErrorIs(t, err, ErrStaleChoice, "raw=%q", raw)
	}
	_, err = parseTap("q3.abcd1234:4", "q3.abcd1234", 4)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestChoiceKeyPerStage(t *testing.T) {
	sess := &Session{GameID: "0123456789abcdef", Stage: StageAwaitCategory}
	assert.Equal(t, "cat.01234567", sess.choiceKey())
	sess.Stage = StageAwaitDifficulty
	assert.Equal(t, "diff.01234567", sess.choiceKey())
	sess.Stage, sess.Index = StageQuizActive, 7
	assert.Equal(t, "q7.01234567", sess.choiceKey())
	sess.Stage = StageAwaitFormat
	assert.Empty(t, sess.choiceKey())
}
