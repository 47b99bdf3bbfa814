// Package setpicker provides the popup for loading or deleting a saved
// filter set.
package setpicker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/mrivaux/sift/internal/store"
	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/list"
	"github.com/mrivaux/sift/internal/ui/popup"
	"github.com/mrivaux/sift/internal/ui/render"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Model is the saved set picker popup.
type Model struct {
	ui.Base
	sets list.Model[store.FilterSet]
}

// New creates a new set picker.
func New() Model {
	return Model{sets: list.New[store.FilterSet](1)}
}

// Start initializes the picker with the sets saved for the loaded dataset.
func (m *Model) Start(sets []store.FilterSet, width, height int) {
	m.SetSize(width, height)
	m.sets.SetItems(sets)
	m.sets.SetSize(width, height)
	m.sets.SetFocused(true)
	m.sets.Cursor().Reset()
}

// Reset clears the picker state.
func (m *Model) Reset() {
	m.sets.SetItems(nil)
	m.sets.SetFocused(false)
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, func() tea.Msg {
			return ActionMsg(Result{Canceled: true})
		}
	}

	result := m.sets.Update(msg, m.sets.Len())
	switch result.Action {
	case list.ActionEnter:
		if set, ok := m.sets.Selected(); ok {
			return m, func() tea.Msg {
				return ActionMsg(Result{Set: set})
			}
		}
	case list.ActionDelete:
		if set, ok := m.sets.Selected(); ok {
			return m, func() tea.Msg {
				return ActionMsg(Result{Set: set, Delete: true})
			}
		}
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	t := styles.T()
	lines := []string{
		t.S().Title.Render("Load filter set"),
		"",
	}

	if m.sets.Len() == 0 {
		lines = append(lines, t.S().Subtle.Render("no saved sets for this dataset"))
	}

	start, end := m.sets.VisibleRange(ui.PanelOverhead)
	items := m.sets.Items()
	for i := start; i < end; i++ {
		lines = append(lines, m.renderSet(items[i], i == m.sets.SelectedIndex()))
	}

	lines = append(lines, "", t.S().Subtle.Render("enter load · d delete · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderSet(set store.FilterSet, selected bool) string {
	t := styles.T()

	name := render.Truncate(set.Name, m.Width()/2)
	detail := fmt.Sprintf("%d filters · %s", len(set.Filters), humanize.Time(set.CreatedAt))

	if selected {
		return t.S().Active.Render("> ") + t.S().Base.Render(name) + " " + t.S().Subtle.Render(detail)
	}
	return "  " + t.S().Muted.Render(name) + " " + t.S().Subtle.Render(detail)
}
