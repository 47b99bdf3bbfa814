package filterpanel

import (
	"github.com/mrivaux/sift/internal/ui/action"
)

// EditRequested asks the app to start the edit flow for a row. Index -1
// means a new row should be appended first.
type EditRequested struct {
	Index int
}

// ActionType implements action.Action.
func (a EditRequested) ActionType() string { return "filterpanel.edit" }

// DeleteRequested asks the app to confirm and delete a row.
type DeleteRequested struct {
	Index int
}

// ActionType implements action.Action.
func (a DeleteRequested) ActionType() string { return "filterpanel.delete" }

// Toggled reports that a row's enabled flag flipped. The panel already
// applied the change; the app re-runs the filters and persists.
type Toggled struct {
	Index   int
	Enabled bool
}

// ActionType implements action.Action.
func (a Toggled) ActionType() string { return "filterpanel.toggled" }

// ActionMsg creates an action.Msg for a filter panel action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "filterpanel", Action: a}
}
