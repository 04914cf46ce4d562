package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/gridlog/internal/config"
	"github.com/faizmokh/gridlog/internal/entry"
	"github.com/faizmokh/gridlog/internal/export"
	"github.com/faizmokh/gridlog/internal/store"
)

const (
	// statusTTL bounds how long a transient status message stays visible.
	statusTTL = 3 * time.Second
	// autoSaveEvery is the wall-clock persistence interval checked on ticks.
	autoSaveEvery = 30 * time.Second
)

// Model owns the full grid-editing session: the entry list, the cursor, the
// active input mode and every transient latch the key handling needs. All
// mutation happens synchronously inside Update; rendering only ever reads.
type Model struct {
	entries []entry.Entry
	row     int
	field   entry.Field
	mode    mode

	// textCursor is a rune offset into the selected field, re-anchored to the
	// end of the text whenever the selection changes.
	textCursor  int
	popupScroll int

	// pendingDelete is latched by the first 'd' in navigation and consumed by
	// whatever key follows.
	pendingDelete bool

	statusMessage string
	statusSince   time.Time
	lastSave      time.Time

	cfg      config.Config
	store    *store.Store
	copyText func(string) error
	keys     keyMap

	width  int
	height int
}

type mode uint8

const (
	modeNavigation mode = iota
	modeEditing
	modeEditingPopup
	modeViewingPopup
	modeHelp
	modeConfirmDeleteEntry
	modeConfirmClearEntries
)

type tickMsg time.Time

// NewModel loads the persisted entry list and seeds the session state. A
// missing or unreadable entries file falls back to a single blank row.
func NewModel(cfg config.Config, st *store.Store) Model {
	entries, err := st.Load()
	if err != nil || len(entries) == 0 {
		entries = []entry.Entry{{}}
	}

	m := Model{
		entries:  entries,
		row:      0,
		field:    entry.TaskNumber,
		mode:     modeNavigation,
		lastSave: time.Now(),
		cfg:      cfg,
		store:    st,
		copyText: writeClipboard,
		keys:     newKeyMap(),
	}
	m.normalizeMode()
	return m
}

// Init starts the once-per-second tick that expires status messages and
// drives interval autosave.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update processes exactly one event; every handler runs to completion before
// the next event is read.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.expireStatus()
		m.checkIntervalSave()
		return m, tickCmd()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeNavigation:
		return m.handleNavigationKey(msg)
	case modeEditing:
		return m.handleEditingKey(msg)
	case modeViewingPopup:
		return m.handleViewingPopupKey(msg)
	case modeEditingPopup:
		return m.handleEditingPopupKey(msg)
	case modeHelp:
		m.mode = modeNavigation
		return m, nil
	case modeConfirmDeleteEntry:
		return m.handleConfirmDeleteKey(msg)
	case modeConfirmClearEntries:
		return m.handleConfirmClearKey(msg)
	default:
		return m, nil
	}
}

func (m Model) handleNavigationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The dd gesture: only an immediate second 'd' confirms, any other key
	// consumes the latch.
	if key.Matches(msg, m.keys.Delete) {
		if m.pendingDelete {
			m.pendingDelete = false
			m.mode = modeConfirmDeleteEntry
		} else {
			m.pendingDelete = true
		}
		return m, nil
	}
	m.pendingDelete = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		// Best effort; quitting must not be blocked by a failing disk.
		_ = m.store.Save(m.entries)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Export):
		m.exportEntries()
	case key.Matches(msg, m.keys.Clear):
		m.mode = modeConfirmClearEntries
	case key.Matches(msg, m.keys.Copy):
		m.copyCurrentField()
	case key.Matches(msg, m.keys.Edit):
		m.enterEdit()
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.Right):
		m.nextField()
	case key.Matches(msg, m.keys.PrevField), key.Matches(msg, m.keys.Left):
		m.prevField()
	case key.Matches(msg, m.keys.Up):
		m.rowUp()
	case key.Matches(msg, m.keys.Down):
		m.rowDown()
	}
	return m, nil
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitEdit()
	case tea.KeyTab:
		m.nextField()
	case tea.KeyShiftTab:
		m.prevField()
	case tea.KeyEnter:
		// Advance to the next field but remain in edit mode.
		m.nextField()
	case tea.KeyLeft:
		if m.textCursor > 0 {
			m.textCursor--
		}
	case tea.KeyRight:
		if m.textCursor < m.currentFieldLen() {
			m.textCursor++
		}
	case tea.KeyHome:
		m.textCursor = 0
	case tea.KeyEnd:
		m.textCursor = m.currentFieldLen()
	case tea.KeySpace:
		m.insertText(" ")
	case tea.KeyRunes:
		m.insertText(string(msg.Runes))
	case tea.KeyBackspace:
		m.deleteRune()
	}
	return m, nil
}

func (m Model) handleViewingPopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.enterEdit()
	case key.Matches(msg, m.keys.Copy):
		m.copyCurrentField()
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.Right):
		m.nextField()
	case key.Matches(msg, m.keys.PrevField), key.Matches(msg, m.keys.Left):
		m.prevField()
	case key.Matches(msg, m.keys.Up):
		// Up/Down scroll the popup while browsing; clamped at the top,
		// unbounded below (the view clamps what it shows).
		if m.popupScroll > 0 {
			m.popupScroll--
		}
	case key.Matches(msg, m.keys.Down):
		m.popupScroll++
	}
	return m, nil
}

func (m Model) handleEditingPopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Copy) {
		m.copyCurrentField()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		// Pop one level: back to viewing the popup, not to navigation.
		m.mode = modeViewingPopup
	case tea.KeyTab:
		m.nextField()
		m.popupScroll = 0
	case tea.KeyShiftTab:
		m.prevField()
		m.popupScroll = 0
	case tea.KeyEnter:
		m.insertText("\n")
	case tea.KeyUp:
		m.textCursorLineUp()
	case tea.KeyDown:
		m.textCursorLineDown()
	case tea.KeyLeft:
		if m.textCursor > 0 {
			m.textCursor--
		}
	case tea.KeyRight:
		if m.textCursor < m.currentFieldLen() {
			m.textCursor++
		}
	case tea.KeyHome:
		m.textCursor = 0
	case tea.KeyEnd:
		m.textCursor = m.currentFieldLen()
	case tea.KeySpace:
		m.insertText(" ")
	case tea.KeyRunes:
		m.insertText(string(msg.Runes))
	case tea.KeyBackspace:
		m.deleteRune()
	}
	return m, nil
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNavigation
		m.deleteCurrentEntry()
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNavigation
	}
	return m, nil
}

func (m Model) handleConfirmClearKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNavigation
		m.clearEntries()
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNavigation
	}
	return m, nil
}

// --- cursor movement -------------------------------------------------------

func (m *Model) nextField() {
	if m.field < entry.EndTime {
		m.field++
	} else {
		// Wrapping past the last field advances the row; a complete final
		// row grows the grid by one standing blank entry.
		m.field = entry.TaskNumber
		m.advanceRow()
	}
	m.normalizeMode()
}

func (m *Model) prevField() {
	if m.field > entry.TaskNumber {
		m.field--
	} else {
		m.field = entry.EndTime
		if m.row > 0 {
			m.row--
		}
	}
	m.normalizeMode()
}

func (m *Model) advanceRow() {
	if m.row < len(m.entries)-1 {
		m.row++
	} else if m.entries[m.row].IsComplete() {
		m.entries = append(m.entries, entry.Entry{})
		m.row++
	}
}

// rowUp and rowDown move the row without changing the field; plain row
// navigation never grows the grid.
func (m *Model) rowUp() {
	if m.row > 0 {
		m.row--
	}
	m.normalizeMode()
}

func (m *Model) rowDown() {
	if m.row < len(m.entries)-1 {
		m.row++
	}
	m.normalizeMode()
}

// normalizeMode keeps the popup coupled to the multi-line field: it is open
// iff the selection sits on TimeLog, however the selection got there. Help
// and the confirmation modes are left untouched. The text cursor re-anchors
// to the end of the newly selected field.
func (m *Model) normalizeMode() {
	if m.field == entry.TimeLog {
		switch m.mode {
		case modeNavigation:
			m.mode = modeViewingPopup
		case modeEditing:
			m.mode = modeEditingPopup
		}
	} else {
		switch m.mode {
		case modeViewingPopup:
			m.mode = modeNavigation
		case modeEditingPopup:
			m.mode = modeEditing
		}
		m.popupScroll = 0
	}
	m.anchorTextCursor()
}

func (m *Model) anchorTextCursor() {
	m.textCursor = m.currentFieldLen()
}

func (m Model) currentField() string {
	return m.entries[m.row].Get(m.field)
}

func (m Model) currentFieldLen() int {
	return len([]rune(m.currentField()))
}

// --- edit lifecycle --------------------------------------------------------

func (m *Model) enterEdit() {
	if m.mode == modeViewingPopup || m.field == entry.TimeLog {
		m.mode = modeEditingPopup
	} else {
		m.mode = modeEditing
	}
	m.anchorTextCursor()
}

func (m *Model) exitEdit() {
	m.mode = modeNavigation
	if m.row == len(m.entries)-1 && m.entries[m.row].IsComplete() {
		m.entries = append(m.entries, entry.Entry{})
	}
	m.persist()
}

func (m *Model) insertText(s string) {
	field := []rune(m.currentField())
	if m.textCursor > len(field) {
		m.textCursor = len(field)
	}
	inserted := []rune(s)
	out := make([]rune, 0, len(field)+len(inserted))
	out = append(out, field[:m.textCursor]...)
	out = append(out, inserted...)
	out = append(out, field[m.textCursor:]...)
	m.entries[m.row].Set(m.field, string(out))
	m.textCursor += len(inserted)
	m.autoSave()
}

func (m *Model) deleteRune() {
	field := []rune(m.currentField())
	if m.textCursor > len(field) {
		m.textCursor = len(field)
	}
	if m.textCursor == 0 {
		return
	}
	out := make([]rune, 0, len(field)-1)
	out = append(out, field[:m.textCursor-1]...)
	out = append(out, field[m.textCursor:]...)
	m.entries[m.row].Set(m.field, string(out))
	m.textCursor--
	m.autoSave()
}

// --- destructive actions ---------------------------------------------------

// deleteCurrentEntry removes the selected row. The list is never allowed to
// become empty: deleting the only row resets it to blank in place. The cursor
// is clamped to the shrunken list and the field resets to the first column.
func (m *Model) deleteCurrentEntry() {
	if len(m.entries) <= 1 {
		m.entries[0] = entry.Entry{}
		m.row = 0
	} else {
		m.entries = append(m.entries[:m.row], m.entries[m.row+1:]...)
		if m.row >= len(m.entries) {
			m.row = len(m.entries) - 1
		}
	}
	m.field = entry.TaskNumber
	m.normalizeMode()
	m.persist()
}

func (m *Model) clearEntries() {
	m.entries = []entry.Entry{{}}
	m.row = 0
	m.field = entry.TaskNumber
	m.normalizeMode()
	m.persist()
}

// --- side-effecting commands -----------------------------------------------

func (m *Model) exportEntries() {
	path, err := export.CSV(m.entries, m.cfg)
	if err != nil {
		m.showMessage("Export failed: " + err.Error())
		return
	}
	m.persist()
	m.showMessage("Exported to " + path)
}

func (m *Model) copyCurrentField() {
	value := m.currentField()
	name := m.field.Title()
	if value == "" {
		m.showMessage(name + " is empty")
		return
	}
	if err := m.copyText(value); err != nil {
		m.showMessage("Failed to copy to clipboard")
		return
	}
	m.showMessage(name + " copied to clipboard")
}

// --- persistence and status ------------------------------------------------

// persist writes the full entry list. Failures surface on the status line and
// leave in-memory state untouched; lastSave only advances on success so the
// interval timer retries.
func (m *Model) persist() {
	if err := m.store.Save(m.entries); err != nil {
		m.showMessage("Save failed: " + err.Error())
		return
	}
	m.lastSave = time.Now()
}

// autoSave runs after every field mutation unless the user disabled
// keystroke-level saving; explicit triggers (edit exit, delete, clear,
// export, quit) persist regardless.
func (m *Model) autoSave() {
	if !m.cfg.UI.AutoSave {
		return
	}
	m.persist()
}

func (m *Model) checkIntervalSave() {
	if !m.cfg.UI.AutoSave {
		return
	}
	if time.Since(m.lastSave) >= autoSaveEvery {
		m.persist()
	}
}

func (m *Model) showMessage(msg string) {
	m.statusMessage = msg
	m.statusSince = time.Now()
}

func (m *Model) expireStatus() {
	if m.statusMessage == "" {
		return
	}
	if time.Since(m.statusSince) >= statusTTL {
		m.statusMessage = ""
	}
}
