package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/ui/popup"
)

// PopupHarness drives a popup.Popup in tests: it feeds messages,
// collects the commands that come back, and inspects the rendered view
// with styling stripped.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness runs Init and keeps its command, if any.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	if cmd := p.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Popup returns the wrapped popup for type assertions.
func (h *PopupHarness) Popup() popup.Popup {
	return h.popup
}

func (h *PopupHarness) SetSize(width, height int) {
	h.popup.SetSize(width, height)
}

func (h *PopupHarness) View() string {
	return h.popup.View()
}

// SendMsg delivers a message and records the returned command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey delivers key as typed runes.
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey delivers a non-rune key such as enter or escape.
func (h *PopupHarness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

func (h *PopupHarness) SendEnter() tea.Cmd {
	return h.SendSpecialKey(tea.KeyEnter)
}

func (h *PopupHarness) SendEscape() tea.Cmd {
	return h.SendSpecialKey(tea.KeyEscape)
}

func (h *PopupHarness) SendUp() tea.Cmd {
	return h.SendSpecialKey(tea.KeyUp)
}

func (h *PopupHarness) SendDown() tea.Cmd {
	return h.SendSpecialKey(tea.KeyDown)
}

func (h *PopupHarness) SendTab() tea.Cmd {
	return h.SendSpecialKey(tea.KeyTab)
}

// Commands returns everything collected since the last ClearCommands.
func (h *PopupHarness) Commands() []tea.Cmd {
	return h.cmds
}

// LastCommand returns the most recent command, nil if none.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

func (h *PopupHarness) ClearCommands() {
	h.cmds = nil
}

// ExecuteCmd runs a command synchronously and returns its message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ExecuteAndSend runs a command and feeds its message back to the
// popup, the way the program loop would.
func (h *PopupHarness) ExecuteAndSend(cmd tea.Cmd) (tea.Msg, tea.Cmd) {
	msg := ExecuteCmd(cmd)
	if msg == nil {
		return nil, nil
	}
	return msg, h.SendMsg(msg)
}

// ViewContains reports whether the unstyled view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return strings.Contains(StripANSI(h.View()), substr)
}

// AssertViewContains returns a failure message when the view is missing
// substr, "" otherwise.
func (h *PopupHarness) AssertViewContains(substr string) string {
	if !h.ViewContains(substr) {
		return "expected view to contain " + substr
	}
	return ""
}

// AssertViewNotContains is the inverse of AssertViewContains.
func (h *PopupHarness) AssertViewNotContains(substr string) string {
	if h.ViewContains(substr) {
		return "expected view to NOT contain " + substr
	}
	return ""
}
