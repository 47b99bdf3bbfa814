// Package action is the envelope components use to talk to the app.
// Components never return app-level messages directly; they emit an
// Action wrapped in a Msg and the app routes on the concrete type.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is anything a component can report upward. ActionType is a
// stable string for debugging, not for dispatch.
type Action interface {
	ActionType() string
}

// Msg carries an Action plus the emitting component's name.
type Msg struct {
	Source string
	Action Action
}

var _ tea.Msg = Msg{}
