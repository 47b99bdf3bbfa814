package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrivaux/sift/internal/keymap"
	"github.com/mrivaux/sift/internal/ui/headerbar"
	"github.com/mrivaux/sift/internal/ui/popup"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := headerbar.Render(headerbar.Info{
		Dataset:  m.datasetName(),
		Rows:     m.rowCount(),
		Matching: len(m.results.Matches()),
		Filters:  m.enabledCount(),
	}, m.width)

	// The inline editor renders inside its filter row.
	if m.editor.Active() && m.edit != nil {
		m.panel.SetEditing(m.edit.index, m.editor.View(), m.editor.Rows(), m.editor.Multiline())
	} else {
		m.panel.ClearEditing()
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.panel.View(), m.results.View())

	base := header + "\n" + panels + "\n" + m.statusLine()

	if view := m.popupView(); view != "" {
		return popup.Compose(base, view, m.width, m.height)
	}
	return base
}

func (m Model) rowCount() int {
	if m.table == nil {
		return 0
	}
	return len(m.table.Rows)
}

func (m Model) statusLine() string {
	t := styles.T()
	if m.status != "" {
		return t.S().Warning.Render(m.status)
	}
	if m.editor.Active() {
		return t.S().Subtle.Render("enter commit · esc cancel")
	}
	return t.S().Subtle.Render("? help · q quit")
}

// popupView renders the active popup centered over the base view.
func (m Model) popupView() string {
	var content string
	switch m.popup {
	case popupColumn, popupOperator:
		content = m.selector.View()
	case popupPrompt:
		content = m.prompt.View()
	case popupSets:
		content = m.picker.View()
	case popupConfirm:
		content = m.confirm.View()
	case popupHelp:
		content = m.helpView()
	default:
		return ""
	}
	if content == "" {
		return ""
	}
	return popup.RenderBordered(content, m.width, m.height, popup.SizeAuto)
}

// helpView lists the key bindings grouped by context.
func (m Model) helpView() string {
	t := styles.T()

	sections := []struct {
		title   string
		context string
	}{
		{"Global", "global"},
		{"Filters", "filters"},
	}

	var lines []string
	for si, section := range sections {
		if si > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, t.S().Title.Render(section.title))
		for _, b := range keymap.All {
			if b.Context != section.context {
				continue
			}
			keys := strings.Join(displayKeys(b.Keys), ", ")
			lines = append(lines, "  "+t.S().Active.Render(padKeys(keys))+" "+t.S().Base.Render(b.Description))
		}
	}
	lines = append(lines, "", t.S().Subtle.Render("press any key to close"))
	return strings.Join(lines, "\n")
}

func displayKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}

func padKeys(s string) string {
	const width = 12
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
