// Package app wires the filter builder together: dataset, filter rows,
// results, persistence, and the popups of the edit flow.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/config"
	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/keymap"
	"github.com/mrivaux/sift/internal/store"
	"github.com/mrivaux/sift/internal/ui/confirm"
	"github.com/mrivaux/sift/internal/ui/filterpanel"
	"github.com/mrivaux/sift/internal/ui/prompt"
	"github.com/mrivaux/sift/internal/ui/resultstable"
	"github.com/mrivaux/sift/internal/ui/selector"
	"github.com/mrivaux/sift/internal/ui/setpicker"
	"github.com/mrivaux/sift/internal/ui/valueeditor"
)

// focusArea tracks which panel receives navigation keys.
type focusArea int

const (
	focusFilters focusArea = iota
	focusResults
)

// popupKind tracks which popup is on top, if any.
type popupKind int

const (
	popupNone popupKind = iota
	popupColumn
	popupOperator
	popupPrompt
	popupSets
	popupConfirm
	popupHelp
)

// editStage distinguishes the selector results of the edit flow. It is
// passed through the selector's Context.
type editStage int

const (
	stageColumn editStage = iota
	stageOperator
)

// editState is the filter row being assembled across the edit flow.
type editState struct {
	index    int // panel row index; the row exists once the editor starts
	isNew    bool
	column   dataset.Column
	op       filter.Operator
	initial  filter.Value
	enabled  bool
	original filter.Filter // pre-edit row, restored on cancel
}

// deleteRowContext and deleteSetContext tag confirm results.
type deleteRowContext struct{ index int }

type deleteSetContext struct{ id int64 }

// Model is the root application model.
type Model struct {
	cfg      *config.Config
	store    *store.Manager
	resolver *keymap.Resolver

	table     *dataset.Table
	path      string
	startPath string

	width  int
	height int
	focus  focusArea
	status string

	panel   filterpanel.Model
	results resultstable.Model
	editor  valueeditor.Model

	popup    popupKind
	selector selector.Model
	prompt   prompt.Model
	picker   setpicker.Model
	confirm  confirm.Model

	edit *editState

	// mlArmed is true while a multiline listener command is outstanding,
	// so edits never stack a second reader on the event channel.
	mlArmed bool
}

// New creates the root model. The store may already hold a session; Init
// issues the restore.
func New(cfg *config.Config, st *store.Manager) Model {
	det := cfg.GetDetectorConfig()
	return Model{
		cfg:      cfg,
		store:    st,
		resolver: keymap.NewResolver(keymap.All),
		focus:    focusFilters,
		panel:    filterpanel.New(),
		results:  resultstable.New(),
		editor:   valueeditor.New(det.Threshold, det.ReleaseThreshold),
		selector: selector.New(),
		prompt:   prompt.New(),
		picker:   setpicker.New(),
		confirm:  confirm.New(),
	}
}

// WithDataset overrides the session restore with a path given on the
// command line.
func (m Model) WithDataset(path string) Model {
	m.startPath = path
	return m
}

// Init implements tea.Model. It loads the command line dataset if one was
// given, otherwise restores the previous session, falling back to the
// configured default dataset.
func (m Model) Init() tea.Cmd {
	if m.startPath != "" {
		return loadDatasetCmd(m.startPath, nil)
	}
	session, err := m.store.GetSession()
	if err == nil && session != nil && session.DatasetPath != "" {
		return loadDatasetCmd(session.DatasetPath, session.Filters)
	}
	if m.cfg.DefaultDataset != "" {
		return loadDatasetCmd(m.cfg.DefaultDataset, nil)
	}
	return nil
}

func (m Model) datasetName() string {
	if m.table == nil {
		return ""
	}
	return m.table.Name
}

// applyFilters re-runs the enabled rows against the table and updates the
// results panel.
func (m *Model) applyFilters() {
	if m.table == nil {
		m.results.SetMatches(nil)
		return
	}
	m.results.SetMatches(filter.Apply(m.table, m.panel.Filters()))
}

// persistSession saves the path and rows through the store's debounce.
func (m *Model) persistSession() {
	if m.path == "" {
		return
	}
	m.store.SaveSession(store.Session{
		DatasetPath: m.path,
		Filters:     m.panel.Filters(),
	})
}

// setStatus sets the transient status line and returns its clear timer.
func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	return clearStatusCmd()
}

// enabledCount is the number of enabled rows, for the header bar.
func (m Model) enabledCount() int {
	n := 0
	for _, f := range m.panel.Filters() {
		if f.Enabled {
			n++
		}
	}
	return n
}
