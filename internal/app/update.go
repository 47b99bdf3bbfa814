package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/mrivaux/sift/internal/errmsg"
	"github.com/mrivaux/sift/internal/keymap"
	"github.com/mrivaux/sift/internal/ui/action"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case action.Msg:
		return m.handleAction(msg)

	case datasetLoadedMsg:
		return m.handleDatasetLoaded(msg)

	case multilineChangedMsg:
		return m.handleMultilineChanged(msg)

	case setsListedMsg:
		if msg.err != nil {
			cmd := m.setStatus(errmsg.Format(errmsg.OpSetList, msg.err))
			return m, cmd
		}
		m.picker.Start(msg.sets, m.popupWidth(), m.popupHeight())
		m.popup = popupSets
		return m, nil

	case setSavedMsg:
		if msg.err != nil {
			cmd := m.setStatus(errmsg.Format(errmsg.OpSetSave, msg.err))
			return m, cmd
		}
		cmd := m.setStatus(fmt.Sprintf("Saved filter set %q", msg.name))
		return m, cmd

	case setDeletedMsg:
		if msg.err != nil {
			cmd := m.setStatus(errmsg.Format(errmsg.OpSetDelete, msg.err))
			return m, cmd
		}
		m.picker.Start(msg.sets, m.popupWidth(), m.popupHeight())
		m.popup = popupSets
		return m, nil

	case statusMsg:
		cmd := m.setStatus(string(msg))
		return m, cmd

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	// Everything else (cursor blinks and such) goes to whatever has input.
	cmd := m.forward(msg)
	return m, cmd
}

// updateKey routes a key press by priority: quit, popup, inline editor,
// global bindings, focused panel.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.popup == popupHelp {
		m.popup = popupNone
		return m, nil
	}
	if m.popup != popupNone {
		cmd := m.forward(msg)
		return m, cmd
	}

	if m.editor.Active() {
		cmd := m.editor.Update(msg)
		return m, cmd
	}

	if !msg.Paste {
		switch m.resolver.Resolve(msg.String()) {
		case keymap.ActionQuit:
			return m, tea.Quit

		case keymap.ActionSwitchFocus:
			if m.focus == focusFilters {
				m.focus = focusResults
			} else {
				m.focus = focusFilters
			}
			m.syncFocus()
			return m, nil

		case keymap.ActionHelp:
			m.popup = popupHelp
			return m, nil

		case keymap.ActionReloadDataset:
			if m.path == "" {
				cmd := m.setStatus("no dataset to reload")
				return m, cmd
			}
			return m, loadDatasetCmd(m.path, m.panel.Filters())

		case keymap.ActionSaveSet:
			if m.focus == focusFilters {
				return m.startSavePrompt()
			}

		case keymap.ActionLoadSet:
			if m.focus == focusFilters {
				if m.table == nil {
					cmd := m.setStatus("load a dataset first")
					return m, cmd
				}
				return m, m.listSetsCmd()
			}
		}
	}

	cmd := m.forward(msg)
	return m, cmd
}

// forward hands a message to the active popup, the inline editor, or the
// focused panel, in that order.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	switch m.popup {
	case popupColumn, popupOperator:
		_, cmd := m.selector.Update(msg)
		return cmd
	case popupPrompt:
		_, cmd := m.prompt.Update(msg)
		return cmd
	case popupSets:
		_, cmd := m.picker.Update(msg)
		return cmd
	case popupConfirm:
		_, cmd := m.confirm.Update(msg)
		return cmd
	}

	if m.editor.Active() {
		return m.editor.Update(msg)
	}

	if m.focus == focusFilters {
		return m.panel.Update(msg)
	}
	return m.results.Update(msg)
}

func (m *Model) handleDatasetLoaded(msg datasetLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.setStatus(errmsg.Format(errmsg.OpDatasetLoad, msg.err))
		return *m, cmd
	}

	m.table = msg.table
	m.path = msg.path
	m.panel.SetTable(msg.table)
	m.results.SetTable(msg.table)
	m.panel.SetFilters(msg.filters)
	m.applyFilters()
	m.persistSession()
	m.syncFocus()

	cmd := m.setStatus(fmt.Sprintf("Loaded %s (%s rows)",
		msg.table.Name, humanize.Comma(int64(len(msg.table.Rows)))))
	return *m, cmd
}

func (m *Model) handleMultilineChanged(msg multilineChangedMsg) (tea.Model, tea.Cmd) {
	m.mlArmed = false
	if !msg.ok {
		return *m, nil
	}
	m.editor.SetMultiline(msg.state)
	if m.editor.Active() {
		m.mlArmed = true
		cmd := m.waitForMultiline()
		return *m, cmd
	}
	return *m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentHeight := height - 2 // header bar + status line
	leftWidth := max(width*2/5, 34)
	if leftWidth > width-20 {
		leftWidth = width / 2
	}

	m.panel.SetSize(leftWidth, contentHeight)
	m.results.SetSize(width-leftWidth, contentHeight)
	m.syncFocus()
}

func (m *Model) syncFocus() {
	m.panel.SetFocused(m.focus == focusFilters)
	m.results.SetFocused(m.focus == focusResults)
}

func (m Model) popupWidth() int {
	return max(m.width/2, 40)
}

func (m Model) popupHeight() int {
	return max(m.height/2, 12)
}

// editorWidth is the width given to the inline value editor, indented
// under its filter row.
func (m Model) editorWidth() int {
	w := m.panel.Width() - 8
	if w < 20 {
		w = 20
	}
	return w
}
