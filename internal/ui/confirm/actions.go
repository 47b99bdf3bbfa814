package confirm

import (
	"github.com/mrivaux/sift/internal/ui/action"
)

// Result reports the user's answer with the caller's context echoed
// back.
type Result struct {
	Confirmed bool
	Context   any
}

func (a Result) ActionType() string { return "confirm.result" }

func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "confirm", Action: a}
}
