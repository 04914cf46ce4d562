package ui

import (
	"strings"

	"github.com/faizmokh/gridlog/internal/entry"
)

// locateTextCursor maps the flat rune offset into (line index, offset within
// that line) for the current multi-line field.
func (m Model) locateTextCursor(lines [][]rune) (int, int) {
	start := 0
	for i, line := range lines {
		end := start + len(line)
		if m.textCursor <= end {
			return i, m.textCursor - start
		}
		start = end + 1 // the separator counts for one character
	}
	last := len(lines) - 1
	return last, len(lines[last])
}

func splitFieldLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}
	return lines
}

func lineStartOffset(lines [][]rune, index int) int {
	start := 0
	for i := 0; i < index; i++ {
		start += len(lines[i]) + 1
	}
	return start
}

// textCursorLineUp moves the text cursor to the equivalent column of the
// previous line, clamped to that line's length. No-op on the first line.
func (m *Model) textCursorLineUp() {
	if m.field != entry.TimeLog {
		return
	}
	lines := splitFieldLines(m.currentField())
	line, pos := m.locateTextCursor(lines)
	if line == 0 {
		return
	}
	target := line - 1
	if pos > len(lines[target]) {
		pos = len(lines[target])
	}
	m.textCursor = lineStartOffset(lines, target) + pos
}

// textCursorLineDown mirrors textCursorLineUp toward the next line. No-op on
// the last line.
func (m *Model) textCursorLineDown() {
	if m.field != entry.TimeLog {
		return
	}
	lines := splitFieldLines(m.currentField())
	line, pos := m.locateTextCursor(lines)
	if line >= len(lines)-1 {
		return
	}
	target := line + 1
	if pos > len(lines[target]) {
		pos = len(lines[target])
	}
	m.textCursor = lineStartOffset(lines, target) + pos
}
