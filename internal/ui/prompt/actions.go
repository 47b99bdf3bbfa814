package prompt

import (
	"github.com/mrivaux/sift/internal/ui/action"
)

// Result contains the prompt result.
type Result struct {
	Text     string
	Context  any  // User-provided context passed through
	Canceled bool // True if user pressed Escape
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "prompt.result" }

// ActionMsg creates an action.Msg for a prompt action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "prompt", Action: a}
}
