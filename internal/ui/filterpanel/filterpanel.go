// Package filterpanel renders the list of filter rows and handles row
// navigation, toggling, and the keys that start the edit and delete flows.
// The operand editing itself happens in the valueeditor, whose rendered
// widget the app injects into the active row.
package filterpanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/icons"
	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/action"
	"github.com/mrivaux/sift/internal/ui/cursor"
	"github.com/mrivaux/sift/internal/ui/render"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// Model is the filter list panel.
type Model struct {
	ui.Base
	table *dataset.Table
	rows  []filter.Filter
	cur   cursor.Cursor

	// Edit-in-progress state, injected by the app each frame.
	editing         int // row index, -1 when idle
	editorView      string
	editorRows      int
	editorMultiline bool
}

// New creates an empty filter panel.
func New() Model {
	return Model{
		cur:     cursor.New(1),
		editing: -1,
	}
}

// SetTable sets the dataset the filters apply to. Column types drive the
// row coloring.
func (m *Model) SetTable(table *dataset.Table) {
	m.table = table
}

// SetFilters replaces the row set, clamping the cursor.
func (m *Model) SetFilters(rows []filter.Filter) {
	m.rows = rows
	m.cur.ClampToBounds(len(rows))
}

// Filters returns the current rows.
func (m *Model) Filters() []filter.Filter {
	return m.rows
}

// Selected returns the cursor row index, or -1 when the panel is empty.
func (m *Model) Selected() int {
	if len(m.rows) == 0 {
		return -1
	}
	return m.cur.Pos()
}

// Append adds a row and moves the cursor onto it. Returns its index.
func (m *Model) Append(f filter.Filter) int {
	m.rows = append(m.rows, f)
	idx := len(m.rows) - 1
	m.cur.Jump(idx, len(m.rows), m.listHeight())
	return idx
}

// UpdateAt replaces the row at index.
func (m *Model) UpdateAt(index int, f filter.Filter) {
	if index < 0 || index >= len(m.rows) {
		return
	}
	m.rows[index] = f
}

// RemoveAt deletes the row at index, clamping the cursor.
func (m *Model) RemoveAt(index int) {
	if index < 0 || index >= len(m.rows) {
		return
	}
	m.rows = append(m.rows[:index], m.rows[index+1:]...)
	m.cur.ClampToBounds(len(m.rows))
	if m.editing == index {
		m.ClearEditing()
	}
}

// SetEditing marks a row as being edited and injects the editor widget.
func (m *Model) SetEditing(index int, view string, rows int, multiline bool) {
	m.editing = index
	m.editorView = view
	m.editorRows = rows
	m.editorMultiline = multiline
	if index >= 0 {
		m.cur.Jump(index, len(m.rows), m.listHeight())
	}
}

// ClearEditing returns the panel to idle rendering.
func (m *Model) ClearEditing() {
	m.editing = -1
	m.editorView = ""
	m.editorRows = 0
	m.editorMultiline = false
}

// Editing returns the index being edited, or -1.
func (m *Model) Editing() int {
	return m.editing
}

func (m *Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

// Update handles navigation and row command keys while the panel has
// focus and no edit is in progress.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.IsFocused() || m.editing >= 0 {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	key := keyMsg.String()
	if m.cur.HandleKey(key, len(m.rows), m.listHeight()) {
		return nil
	}

	switch key {
	case "a":
		return emit(EditRequested{Index: -1})

	case "e", "enter":
		if idx := m.Selected(); idx >= 0 {
			return emit(EditRequested{Index: idx})
		}

	case "d", "delete":
		if idx := m.Selected(); idx >= 0 {
			return emit(DeleteRequested{Index: idx})
		}

	case " ":
		if idx := m.Selected(); idx >= 0 {
			m.rows[idx].Enabled = !m.rows[idx].Enabled
			return emit(Toggled{Index: idx, Enabled: m.rows[idx].Enabled})
		}
	}
	return nil
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg(a)
	}
}

// View renders the panel with its border and header.
func (m *Model) View() string {
	if m.Width() <= 0 || m.Height() <= 0 {
		return ""
	}

	t := styles.T()
	innerWidth := m.Width() - 2

	header := render.Truncate(
		fmt.Sprintf("%sFilters (%d)", icons.Filter(), len(m.rows)),
		innerWidth,
	)
	lines := []string{
		t.S().Title.Render(header),
		render.Separator(innerWidth),
	}

	if len(m.rows) == 0 {
		lines = append(lines, t.S().Subtle.Render("press a to add a filter"))
	} else {
		lines = append(lines, m.viewRows(innerWidth)...)
	}

	body := strings.Join(lines, "\n")
	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Height(m.Height() - ui.BorderHeight).
		Render(body)
}

// viewRows renders the visible window of rows. The edited row may span
// several lines; the window height accounts for that.
func (m *Model) viewRows(width int) []string {
	height := m.listHeight()
	if m.editing >= 0 && m.editorRows > 1 {
		height -= m.editorRows - 1
		if height < 1 {
			height = 1
		}
	}

	var lines []string
	start, end := m.cur.VisibleRange(len(m.rows), height)
	for i := start; i < end; i++ {
		if i == m.editing {
			lines = append(lines, m.renderEditingRow(i, width)...)
			continue
		}
		lines = append(lines, m.renderRow(i, width))
	}
	return lines
}
