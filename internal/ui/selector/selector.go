// Package selector provides a typeahead dropdown popup for picking one
// item from a list, used for the column and operator pickers.
package selector

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/cursor"
	"github.com/mrivaux/sift/internal/ui/popup"
	"github.com/mrivaux/sift/internal/ui/render"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Item is one selectable entry.
type Item struct {
	ID     string // stable identifier returned in the result
	Label  string // display text, also matched by the typeahead
	Symbol string // optional leading symbol (operator icon)
	Detail string // dimmed suffix (column type)
}

// visibleRows is how many filtered items the dropdown shows at once.
const visibleRows = 8

// Model is a typeahead selector popup. Typing narrows the items,
// up/down moves the cursor, enter confirms, esc cancels.
type Model struct {
	ui.Base
	title    string
	context  any // passed through to Result action
	input    textinput.Model
	cursor   cursor.Cursor
	items    []Item // full set
	filtered []Item
}

// New creates a new selector model.
func New() Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()
	return Model{
		input:  input,
		cursor: cursor.New(1),
	}
}

// Start initializes the selector with a title and its items. preselect
// positions the cursor on the item with that ID, if present.
func (m *Model) Start(title string, items []Item, preselect string, context any, width, height int) {
	m.title = title
	m.items = items
	m.context = context
	m.input.SetValue("")
	m.SetSize(width, height)
	m.refilter()
	for i, item := range m.filtered {
		if item.ID == preselect {
			m.cursor.Jump(i, len(m.filtered), visibleRows)
			break
		}
	}
}

// Reset clears the selector state.
func (m *Model) Reset() {
	m.title = ""
	m.items = nil
	m.filtered = nil
	m.context = nil
	m.input.SetValue("")
	m.cursor.Reset()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}

		case "enter":
			if len(m.filtered) == 0 {
				return m, nil
			}
			item := m.filtered[m.cursor.Pos()]
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Item: item, Context: ctx})
			}

		case "up", "ctrl+p":
			m.cursor.Move(-1, len(m.filtered), visibleRows)
			return m, nil

		case "down", "ctrl+n":
			m.cursor.Move(1, len(m.filtered), visibleRows)
			return m, nil
		}
	}

	// Everything else feeds the typeahead input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

// refilter narrows the items to those matching the query and clamps the
// cursor into the new bounds.
func (m *Model) refilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.items
	} else {
		m.filtered = m.filtered[:0:0]
		for _, item := range m.items {
			if strings.Contains(strings.ToLower(item.Label), query) ||
				strings.Contains(strings.ToLower(item.ID), query) {
				m.filtered = append(m.filtered, item)
			}
		}
	}
	m.cursor.ClampToBounds(len(m.filtered))
	m.cursor.EnsureVisible(len(m.filtered), visibleRows)
}

// Selected returns the item under the cursor, if any.
func (m *Model) Selected() (Item, bool) {
	if len(m.filtered) == 0 {
		return Item{}, false
	}
	return m.filtered[m.cursor.Pos()], true
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	t := styles.T()
	lines := []string{
		t.S().Title.Render(m.title),
		m.input.View(),
		"",
	}

	if len(m.filtered) == 0 {
		lines = append(lines, t.S().Subtle.Render("no matches"))
	}

	start, end := m.cursor.VisibleRange(len(m.filtered), visibleRows)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(i))
	}

	lines = append(lines, "", t.S().Subtle.Render("↑↓ navigate · enter select · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderItem(i int) string {
	t := styles.T()
	item := m.filtered[i]

	label := item.Label
	if item.Symbol != "" {
		label = item.Symbol + " " + label
	}
	label = render.Truncate(label, m.contentWidth())

	labelStyle := t.S().Muted
	marker := "  "
	if i == m.cursor.Pos() {
		labelStyle = t.S().Base
		marker = t.S().Active.Render("> ")
	}

	line := marker + labelStyle.Render(label)
	if item.Detail != "" {
		line += " " + t.S().Subtle.Render(item.Detail)
	}
	return line
}

func (m *Model) contentWidth() int {
	w := m.Width() - 8
	if w < 16 {
		w = 16
	}
	return w
}
