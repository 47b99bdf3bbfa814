// Package prompt provides a one-line text prompt popup, used to name a
// filter set before saving it.
package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/popup"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

func inputStyle() lipgloss.Style {
	return styles.T().S().Base
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.T().Primary)
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// Model is a one-line text prompt popup.
type Model struct {
	ui.Base
	title    string
	text     string
	errText  string
	context  any // passed through to Result action
	validate func(string) string
}

// New creates a new prompt model.
func New() Model {
	return Model{}
}

// Start initializes the prompt. validate is called with the trimmed text
// on enter; a non-empty return keeps the prompt open and shows the text
// as an error. A nil validate accepts anything non-empty.
func (m *Model) Start(title, initialText string, validate func(string) string, context any, width, height int) {
	m.title = title
	m.text = initialText
	m.errText = ""
	m.validate = validate
	m.context = context
	m.SetSize(width, height)
}

// Reset clears the prompt state.
func (m *Model) Reset() {
	m.title = ""
	m.text = ""
	m.errText = ""
	m.validate = nil
	m.context = nil
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}

		case "enter":
			text := strings.TrimSpace(m.text)
			if text == "" {
				m.errText = "name cannot be empty"
				return m, nil
			}
			if m.validate != nil {
				if errText := m.validate(text); errText != "" {
					m.errText = errText
					return m, nil
				}
			}
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Text: text, Context: ctx})
			}

		case "backspace":
			if m.text != "" {
				m.text = m.text[:len(m.text)-1]
			}
			m.errText = ""

		default:
			// Only add printable characters
			if len(msg.String()) == 1 && msg.String()[0] >= 32 {
				m.text += msg.String()
				m.errText = ""
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

	title := titleStyle().Render(m.title)

	cursor := "█"
	input := inputStyle().Render("> "+m.text) + cursor

	hint := hintStyle().Render("Enter: confirm, Esc: cancel")
	if m.errText != "" {
		hint = styles.T().S().Error.Render(m.errText)
	}

	return title + "\n\n" + input + "\n\n" + hint
}
