package valueeditor

import (
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/ui/action"
)

// Result contains the committed or canceled edit.
type Result struct {
	Value    filter.Value
	Canceled bool
	Context  any // User-provided context passed through
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "valueeditor.result" }

// ActionMsg creates an action.Msg for a value editor action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "valueeditor", Action: a}
}
