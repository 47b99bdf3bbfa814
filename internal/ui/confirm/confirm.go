// Package confirm is the yes/no popup guarding destructive actions.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/popup"
	"github.com/mrivaux/sift/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

type Model struct {
	ui.Base
	title   string
	message string
	context any
	active  bool
}

func New() Model {
	return Model{}
}

// Show opens the popup. The context is handed back untouched in the
// Result so the caller can tell its confirmations apart.
func (m *Model) Show(title, message string, context any, width, height int) {
	m.title = title
	m.message = message
	m.context = context
	m.SetSize(width, height)
	m.active = true
}

func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
}

func (m Model) Active() bool {
	return m.active
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "y", "Y":
		return m.emit(true)
	case "esc", "n", "N":
		return m.emit(false)
	}
	return m, nil
}

func (m *Model) emit(confirmed bool) (popup.Popup, tea.Cmd) {
	m.active = false
	ctx := m.context
	return m, func() tea.Msg {
		return ActionMsg(Result{Confirmed: confirmed, Context: ctx})
	}
}

func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	return s.Title.Render(m.title) + "\n\n" +
		s.Base.Render(m.message) + "\n\n" +
		s.Subtle.Render("Enter/Y: confirm, Esc/N: cancel")
}
