// Package keyboard builds reply and inline keyboards.
package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn is one inline button. Unique selects the callback handler and
// Data travels with the press.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

// RemoveKeyboard hides a reply keyboard shown earlier.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a resized one-time reply keyboard.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	kb := make([]tele.Row, 0, len(rows))
	for _, labels := range rows {
		row := make(tele.Row, len(labels))
		for i, label := range labels {
			row[i] = m.Text(label)
		}
		kb = append(kb, row)
	}
	m.Reply(kb...)
	return m
}

// Inline builds an inline keyboard, one slice per row.
func Inline(rows ...[]InlineBtn) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	kb := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		kb[i] = make([]tele.InlineButton, len(row))
		for j, b := range row {
			kb[i][j] = *m.Data(b.Text, b.Unique, b.Data).Inline()
		}
	}
	m.InlineKeyboard = kb
	return m
}

// InlineButtonsNPerRow lays buttons out n to a row; n below one means one.
func InlineButtonsNPerRow(buttons []InlineBtn, n int) *tele.ReplyMarkup {
	return Inline(Chunk(buttons, n)...)
}

// Chunk splits items into rows of at most n.
func Chunk[T any](items []T, n int) [][]T {
	n = max(n, 1)
	rows := make([][]T, 0, (len(items)+n-1)/n)
	for len(items) > 0 {
		k := min(n, len(items))
		rows = append(rows, items[:k:k])
		items = items[k:]
	}
	return rows
}
