package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunk([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Chunk([]int{1, 2}, 0))
	assert.Empty(t, Chunk([]int(nil), 3))

	rows := Chunk([]int{1, 2, 3}, 2)
	rows[0] = append(rows[0], 9)
	assert.Equal(t, []int{3}, rows[1], "appending to a row must not clobber the next")
}

func TestInlineButtonsNPerRow(t *testing.T) {
	m := InlineButtonsNPerRow([]InlineBtn{
		{Text: "A", Unique: "k", Data: "0"},
		{Text: "B", Unique: "k", Data: "1"},
		{Text: "C", Unique: "k", Data: "2"},
	}, 2)
	if assert.Len(t, m.InlineKeyboard, 2) {
		assert.Len(t, m.InlineKeyboard[0], 2)
		assert.Equal(t, "C", m.InlineKeyboard[1][0].Text)
		assert.Equal(t, "2", m.InlineKeyboard[1][0].Data)
	}
}
