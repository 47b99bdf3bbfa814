package setpicker

import (
	"github.com/mrivaux/sift/internal/store"
	"github.com/mrivaux/sift/internal/ui/action"
)

// Result contains the picker outcome. Delete asks the app to confirm and
// remove the set rather than load it.
type Result struct {
	Set      store.FilterSet
	Delete   bool
	Canceled bool
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "setpicker.result" }

// ActionMsg creates an action.Msg for a set picker action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "setpicker", Action: a}
}
