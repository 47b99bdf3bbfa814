package selector

import (
	"github.com/mrivaux/sift/internal/ui/action"
)

// Result contains the selector outcome.
type Result struct {
	Item     Item
	Canceled bool
	Context  any // User-provided context passed through
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "selector.result" }

// ActionMsg creates an action.Msg for a selector action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "selector", Action: a}
}
