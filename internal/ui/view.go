package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/gridlog/internal/entry"
)

const (
	popupHeight = 10
	popupWidth  = 60
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#888888"))
	styleSelected = lipgloss.NewStyle().
			Reverse(true)
	styleComplete = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff00"))
	styleCursor = lipgloss.NewStyle().
			Reverse(true)
	stylePopup = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00ffff")).
			Padding(0, 1)
	styleConfirm = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff0088"))
	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffff00"))
	styleHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func fieldWidth(f entry.Field) int {
	switch f {
	case entry.TimeLog:
		return 28
	case entry.TaskNumber:
		return 13
	default:
		return 11
	}
}

// View renders the frame as a pure projection of the session state.
func (m Model) View() string {
	if m.mode == modeHelp {
		return m.viewHelp()
	}

	var b strings.Builder

	b.WriteString(styleTitle.Render("gridlog"))
	b.WriteString("\n\n")

	m.writeGrid(&b)

	if m.mode == modeViewingPopup || m.mode == modeEditingPopup {
		b.WriteByte('\n')
		b.WriteString(m.viewPopup())
		b.WriteByte('\n')
	}

	switch m.mode {
	case modeConfirmDeleteEntry:
		b.WriteByte('\n')
		b.WriteString(styleConfirm.Render(fmt.Sprintf("Delete entry %d? (y/n)", m.row+1)))
		b.WriteByte('\n')
	case modeConfirmClearEntries:
		b.WriteByte('\n')
		b.WriteString(styleConfirm.Render("Clear ALL entries? (y/n)"))
		b.WriteByte('\n')
	case modeEditing:
		b.WriteByte('\n')
		b.WriteString(m.viewEditLine())
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.viewStatusLine())
	b.WriteByte('\n')

	if m.cfg.UI.ShowInstructions {
		b.WriteByte('\n')
		b.WriteString(styleHint.Render("Navigation: tab/shift+tab fields  arrows move  i edit  ? help"))
		b.WriteByte('\n')
		b.WriteString(styleHint.Render("Actions: ctrl+s export  ctrl+y copy  dd delete  ctrl+x clear  q quit"))
		b.WriteByte('\n')
	}

	return b.String()
}

func (m Model) writeGrid(b *strings.Builder) {
	headers := make([]string, 0, len(entry.Fields())+1)
	headers = append(headers, fmt.Sprintf("%4s", "#"))
	for _, f := range entry.Fields() {
		headers = append(headers, padCell(f.Title(), fieldWidth(f)))
	}
	b.WriteString(styleHeader.Render(strings.Join(headers, "  ")))
	b.WriteByte('\n')

	for row, e := range m.entries {
		marker := "  "
		if row == m.row {
			marker = "> "
		}

		cells := make([]string, 0, len(entry.Fields())+1)
		number := fmt.Sprintf("%2s%2d", marker, row+1)
		if e.IsComplete() {
			number = styleComplete.Render(number)
		}
		cells = append(cells, number)

		for _, f := range entry.Fields() {
			text := padCell(cellText(e, f), fieldWidth(f))
			if row == m.row && f == m.field {
				text = styleSelected.Render(text)
			}
			cells = append(cells, text)
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteByte('\n')
	}
}

// cellText flattens a field for the grid; only the first line of the
// multi-line log is shown in its cell, the popup shows the rest.
func cellText(e entry.Entry, f entry.Field) string {
	value := e.Get(f)
	if f != entry.TimeLog {
		return value
	}
	line, _, multi := strings.Cut(value, "\n")
	if multi {
		return line + " …"
	}
	return line
}

func padCell(text string, width int) string {
	runes := []rune(text)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return text + strings.Repeat(" ", width-len(runes))
}

func (m Model) viewEditLine() string {
	label := fmt.Sprintf("%s: ", m.field.Title())
	return label + renderWithCursor(m.currentField(), m.textCursor)
}

func (m Model) viewPopup() string {
	width := popupWidth
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	if width < 1 {
		width = 1
	}

	text := m.currentField()
	if m.mode == modeEditingPopup {
		text = renderWithCursor(text, m.textCursor)
	}

	lines := strings.Split(text, "\n")
	if m.popupScroll < len(lines) {
		lines = lines[m.popupScroll:]
	} else {
		lines = nil
	}
	if len(lines) > popupHeight {
		lines = lines[:popupHeight]
	}

	title := "Time Log"
	if m.mode == modeEditingPopup {
		title = "Time Log (editing)"
	}
	content := styleHeader.Render(title) + "\n" + strings.Join(lines, "\n")
	return stylePopup.Width(width).Render(content)
}

// renderWithCursor marks the text cursor with a reversed cell; at
// end-of-text a reversed space stands in.
func renderWithCursor(text string, cursor int) string {
	runes := []rune(text)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	if cursor == len(runes) {
		return string(runes) + styleCursor.Render(" ")
	}
	under := string(runes[cursor])
	if under == "\n" {
		return string(runes[:cursor]) + styleCursor.Render(" ") + string(runes[cursor:])
	}
	return string(runes[:cursor]) + styleCursor.Render(under) + string(runes[cursor+1:])
}

func (m Model) viewStatusLine() string {
	if m.statusMessage != "" {
		return styleStatus.Render(m.statusMessage)
	}
	label := m.modeLabel()
	if m.pendingDelete {
		label += "  (d: press again to delete)"
	}
	return styleHint.Render(label)
}

func (m Model) modeLabel() string {
	switch m.mode {
	case modeNavigation:
		return "NAVIGATE"
	case modeEditing:
		return "EDIT"
	case modeEditingPopup:
		return "EDIT LOG"
	case modeViewingPopup:
		return "VIEW LOG"
	case modeHelp:
		return "HELP"
	case modeConfirmDeleteEntry, modeConfirmClearEntries:
		return "CONFIRM"
	default:
		return ""
	}
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("gridlog help"))
	b.WriteString("\n\n")

	sections := []struct {
		heading string
		lines   []string
	}{
		{"Navigation", []string{
			"tab / shift+tab   next / previous field (wraps across rows)",
			"arrows            move between rows and fields",
			"i                 edit the selected field",
		}},
		{"Editing", []string{
			"esc               stop editing (saves)",
			"enter             next field (stays in edit mode)",
			"home / end        jump inside the field",
			"enter (in log)    insert a line break",
			"up / down (log)   move the cursor by line",
		}},
		{"Actions", []string{
			"ctrl+s            export CSV and save",
			"ctrl+y            copy the selected field",
			"dd                delete the selected entry",
			"ctrl+x            clear all entries",
			"q                 quit",
		}},
	}

	for _, section := range sections {
		b.WriteString(styleHeader.Render(section.heading))
		b.WriteByte('\n')
		for _, line := range section.lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString(styleHint.Render("press any key to return"))
	b.WriteByte('\n')
	return b.String()
}
