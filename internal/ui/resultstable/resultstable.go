// Package resultstable renders the rows matching the active filters in a
// scrollable table. Column widths adapt to the visible cells within the
// shared min/max bounds, and h/l pan horizontally when the dataset has
// more columns than fit.
package resultstable

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/cursor"
	"github.com/mrivaux/sift/internal/ui/render"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// columnGap separates table columns.
const columnGap = 2

// Model is the results table panel.
type Model struct {
	ui.Base
	table   *dataset.Table
	matches []int // indices into table.Rows
	cur     cursor.Cursor
	colOff  int // first visible column
}

// New creates an empty results table.
func New() Model {
	return Model{cur: cursor.New(ui.ScrollMargin)}
}

// SetTable sets the dataset and resets scrolling.
func (m *Model) SetTable(table *dataset.Table) {
	m.table = table
	m.matches = nil
	m.cur.Reset()
	m.colOff = 0
}

// SetMatches replaces the matching row set, keeping the cursor in bounds.
func (m *Model) SetMatches(matches []int) {
	m.matches = matches
	m.cur.ClampToBounds(len(matches))
	m.cur.EnsureVisible(len(matches), m.listHeight())
}

// Matches returns the current match set.
func (m *Model) Matches() []int {
	return m.matches
}

// SelectedRow returns the dataset row index under the cursor, or -1.
func (m *Model) SelectedRow() int {
	if len(m.matches) == 0 {
		return -1
	}
	return m.matches[m.cur.Pos()]
}

func (m *Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

// Update handles scrolling while the panel has focus.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.IsFocused() || m.table == nil {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	key := keyMsg.String()
	if m.cur.HandleKey(key, len(m.matches), m.listHeight()) {
		return nil
	}

	switch key {
	case "h", "left":
		if m.colOff > 0 {
			m.colOff--
		}
	case "l", "right":
		if m.colOff < len(m.table.Columns)-1 {
			m.colOff++
		}
	}
	return nil
}

// View renders the table with its border, header row, and visible rows.
func (m *Model) View() string {
	if m.Width() <= 0 || m.Height() <= 0 {
		return ""
	}

	t := styles.T()
	innerWidth := m.Width() - 2

	if m.table == nil {
		body := t.S().Subtle.Render("no dataset loaded")
		return styles.PanelStyle(m.IsFocused()).
			Width(innerWidth).
			Height(m.Height() - ui.BorderHeight).
			Render(body)
	}

	widths := m.columnWidths(innerWidth)

	lines := make([]string, 0, m.listHeight()+2)
	lines = append(lines, m.renderHeader(widths))
	lines = append(lines, render.Separator(innerWidth))

	if len(m.matches) == 0 {
		lines = append(lines, t.S().Subtle.Render("no rows match"))
	} else {
		start, end := m.cur.VisibleRange(len(m.matches), m.listHeight())
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i, widths))
		}
	}

	body := ""
	for i, line := range lines {
		if i > 0 {
			body += "\n"
		}
		body += line
	}
	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Height(m.Height() - ui.BorderHeight).
		Render(body)
}

// columnWidths sizes the visible columns from the header and the visible
// cells, bounded by the shared min/max, until the width is used up.
func (m *Model) columnWidths(total int) []int {
	cols := m.table.Columns[m.colOff:]
	start, end := m.cur.VisibleRange(len(m.matches), m.listHeight())

	widths := make([]int, 0, len(cols))
	used := 0
	for ci, col := range cols {
		w := len(col.Name)
		for i := start; i < end; i++ {
			row := m.table.Rows[m.matches[i]]
			cell := cellAt(row, m.colOff+ci)
			if len(cell) > w {
				w = len(cell)
			}
		}
		w = min(max(w, ui.MinColumnWidth), ui.MaxColumnWidth)

		if used+w > total {
			if used == 0 {
				widths = append(widths, total)
			}
			break
		}
		widths = append(widths, w)
		used += w + columnGap
	}
	return widths
}

func (m *Model) renderHeader(widths []int) string {
	t := styles.T()
	line := ""
	for i, w := range widths {
		col := m.table.Columns[m.colOff+i]
		if i > 0 {
			line += render.EmptyLine(columnGap)
		}
		line += t.S().Title.Render(render.TruncateAndPad(col.Name, w))
	}
	return line
}

func (m *Model) renderRow(i int, widths []int) string {
	t := styles.T()
	row := m.table.Rows[m.matches[i]]

	line := ""
	for ci, w := range widths {
		if ci > 0 {
			line += render.EmptyLine(columnGap)
		}
		line += render.TruncateAndPadEllipsis(cellAt(row, m.colOff+ci), w)
	}

	if i == m.cur.Pos() && m.IsFocused() {
		return t.S().Cursor.Render(line)
	}
	return t.S().Base.Render(line)
}

func cellAt(row dataset.Row, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
