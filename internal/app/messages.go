package app

import (
	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/store"
)

// datasetLoadedMsg carries a freshly parsed dataset, or the load error.
// filters holds rows to restore once the table is in place (session
// restore and reload keep the existing rows).
type datasetLoadedMsg struct {
	table   *dataset.Table
	path    string
	filters []filter.Filter
	err     error
}

// multilineChangedMsg is a text editor height transition, forwarded from
// the detector's goroutine through the editor's event channel.
type multilineChangedMsg struct {
	state bool
	ok    bool // false when the channel closed
}

// setsListedMsg carries the saved sets for the loaded dataset.
type setsListedMsg struct {
	sets []store.FilterSet
	err  error
}

// setSavedMsg reports the outcome of persisting a named set.
type setSavedMsg struct {
	name string
	err  error
}

// setDeletedMsg reports the outcome of removing a named set. The picker
// is refreshed afterwards, so it carries the remaining sets.
type setDeletedMsg struct {
	sets []store.FilterSet
	err  error
}

// statusMsg sets the transient status line.
type statusMsg string

// clearStatusMsg blanks the status line after its display period.
type clearStatusMsg struct{}
