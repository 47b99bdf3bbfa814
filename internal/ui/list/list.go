// Package list is a generic scrollable list: it owns navigation and
// mouse input and reports what happened, while the parent renders the
// rows itself through VisibleRange.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/cursor"
)

// Action says what an Update call did.
type Action int

const (
	ActionNone Action = iota
	ActionEnter
	ActionClick
	ActionMiddleClick
	ActionDelete
)

// Result pairs the action with the item index it applies to, -1 when
// none does.
type Result struct {
	Action Action
	Index  int
}

type Model[T any] struct {
	ui.Base
	items  []T
	cursor cursor.Cursor
}

func New[T any](margin int) Model[T] {
	return Model[T]{cursor: cursor.New(margin)}
}

// SetItems replaces the items and pulls the cursor back into bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.ClampToBounds(len(items))
}

func (m Model[T]) Items() []T {
	return m.items
}

func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor, false when the list is
// empty.
func (m Model[T]) Selected() (T, bool) {
	if len(m.items) == 0 || m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// VisibleRange returns the [start, end) slice of items to render.
func (m Model[T]) VisibleRange(overhead int) (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.ListHeight(overhead))
}

// Cursor exposes the cursor for parents that need to reset or jump it.
func (m *Model[T]) Cursor() *cursor.Cursor {
	return &m.cursor
}

// Update handles keys and mouse input. listLen is passed in rather than
// taken from Len so parents rendering a filtered view can bound
// navigation to what is visible.
func (m *Model[T]) Update(msg tea.Msg, listLen int) Result {
	if !m.IsFocused() {
		return Result{Index: -1}
	}

	height := m.ListHeight(ui.PanelOverhead)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		result, row := m.cursor.HandleMouse(msg, listLen, height, ui.PanelOverhead-1)
		switch result { //nolint:exhaustive
		case cursor.MouseScrolled:
			return Result{Index: -1}
		case cursor.MouseClicked:
			return Result{Action: ActionClick, Index: row}
		case cursor.MouseMiddleClick:
			return Result{Action: ActionMiddleClick, Index: row}
		}

	case tea.KeyMsg:
		if m.cursor.HandleKey(msg.String(), listLen, height) {
			return Result{Index: -1}
		}
		if listLen == 0 {
			break
		}
		switch msg.String() {
		case "enter":
			return Result{Action: ActionEnter, Index: m.cursor.Pos()}
		case "d", "delete":
			return Result{Action: ActionDelete, Index: m.cursor.Pos()}
		}
	}

	return Result{Index: -1}
}
