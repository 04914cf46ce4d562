package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/gridlog/internal/entry"
)

// popupModel returns a model editing the given multi-line log with the text
// cursor at the given rune offset.
func popupModel(t *testing.T, text string, cursor int) Model {
	t.Helper()
	m := testModel(t)
	m.entries[0].TimeLog = text
	m.field = entry.TimeLog
	m.mode = modeEditingPopup
	m.textCursor = cursor
	return m
}

func TestLineUpKeepsColumnWhenItFits(t *testing.T) {
	// Layout: "abcdef" starts at 0, "xy" at 7, "lmnop" at 10.
	m := popupModel(t, "abcdef\nxy\nlmnop", 12) // line 3, column 2

	m = press(t, m, keyOf(tea.KeyUp))
	if m.textCursor != 9 {
		t.Fatalf("textCursor = %d, want 9 (end of short middle line)", m.textCursor)
	}
}

func TestLineUpClampsToShorterLine(t *testing.T) {
	m := popupModel(t, "abcdef\nxy\nlmnop", 13) // line 3, column 3

	m = press(t, m, keyOf(tea.KeyUp))
	if m.textCursor != 9 {
		t.Fatalf("textCursor = %d, want clamp to 9", m.textCursor)
	}

	m = press(t, m, keyOf(tea.KeyUp))
	if m.textCursor != 2 {
		t.Fatalf("textCursor = %d, want 2 on the first line", m.textCursor)
	}
}

func TestLineUpNoOpOnFirstLine(t *testing.T) {
	m := popupModel(t, "abcdef\nxy", 3)

	m = press(t, m, keyOf(tea.KeyUp))
	if m.textCursor != 3 {
		t.Fatalf("textCursor = %d, want unchanged on first line", m.textCursor)
	}
}

func TestLineDownMapsAndClamps(t *testing.T) {
	m := popupModel(t, "abcdef\nxy\nlmnop", 2) // line 1, column 2

	m = press(t, m, keyOf(tea.KeyDown))
	if m.textCursor != 9 {
		t.Fatalf("textCursor = %d, want 9 (column 2 of short line)", m.textCursor)
	}

	m = press(t, m, keyOf(tea.KeyDown))
	if m.textCursor != 12 {
		t.Fatalf("textCursor = %d, want 12 (column 2 of last line)", m.textCursor)
	}
}

func TestLineDownNoOpOnLastLine(t *testing.T) {
	m := popupModel(t, "abcdef\nxy", 8)

	m = press(t, m, keyOf(tea.KeyDown))
	if m.textCursor != 8 {
		t.Fatalf("textCursor = %d, want unchanged on last line", m.textCursor)
	}
}

func TestLineMovementNoOpOnEmptyOrSingleLine(t *testing.T) {
	m := popupModel(t, "", 0)
	m = press(t, m, keyOf(tea.KeyUp), keyOf(tea.KeyDown))
	if m.textCursor != 0 {
		t.Fatalf("textCursor = %d, want 0 for empty text", m.textCursor)
	}

	m = popupModel(t, "single line", 4)
	m = press(t, m, keyOf(tea.KeyUp), keyOf(tea.KeyDown))
	if m.textCursor != 4 {
		t.Fatalf("textCursor = %d, want unchanged for single line", m.textCursor)
	}
}

func TestLineBoundaryCursorBelongsToUpperLine(t *testing.T) {
	// Offset 6 is the end of "abcdef", just before the separator.
	m := popupModel(t, "abcdef\nxy", 6)

	m = press(t, m, keyOf(tea.KeyDown))
	if m.textCursor != 9 {
		t.Fatalf("textCursor = %d, want 9 (clamped to end of next line)", m.textCursor)
	}
}

func TestEnterInsertsLineBreak(t *testing.T) {
	m := popupModel(t, "abc", 3)

	m = press(t, m, keyOf(tea.KeyEnter))
	m = typeText(t, m, "def")

	if m.entries[0].TimeLog != "abc\ndef" {
		t.Fatalf("TimeLog = %q, want %q", m.entries[0].TimeLog, "abc\ndef")
	}
}
