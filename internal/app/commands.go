package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
)

// statusDuration is how long a transient status line stays visible.
const statusDuration = 4 * time.Second

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// waitForMultiline re-arms the listener for text editor height changes.
// It is issued when an edit starts and again after every received event.
func (m Model) waitForMultiline() tea.Cmd {
	return waitForChannel(m.editor.MultilineEvents(), func(state bool, ok bool) tea.Msg {
		return multilineChangedMsg{state: state, ok: ok}
	})
}

// loadDatasetCmd parses the CSV off the update loop. filters are carried
// through so restore and reload keep the existing rows.
func loadDatasetCmd(path string, filters []filter.Filter) tea.Cmd {
	return func() tea.Msg {
		table, err := dataset.Load(path)
		return datasetLoadedMsg{table: table, path: path, filters: filters, err: err}
	}
}

// listSetsCmd fetches the saved sets for the loaded dataset.
func (m Model) listSetsCmd() tea.Cmd {
	st, name := m.store, m.datasetName()
	return func() tea.Msg {
		sets, err := st.ListSets(name)
		return setsListedMsg{sets: sets, err: err}
	}
}

// saveSetCmd persists the current rows under a name, replacing any same-
// named set for this dataset.
func (m Model) saveSetCmd(name string) tea.Cmd {
	st, ds := m.store, m.datasetName()
	filters := m.panel.Filters()
	return func() tea.Msg {
		_, err := st.SaveSet(name, ds, filters)
		return setSavedMsg{name: name, err: err}
	}
}

// deleteSetCmd removes a saved set and re-lists the remainder so the
// picker stays current.
func (m Model) deleteSetCmd(id int64) tea.Cmd {
	st, ds := m.store, m.datasetName()
	return func() tea.Msg {
		if err := st.DeleteSet(id); err != nil {
			return setDeletedMsg{err: err}
		}
		sets, err := st.ListSets(ds)
		return setDeletedMsg{sets: sets, err: err}
	}
}

// clearStatusCmd blanks the status line after the display period.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
