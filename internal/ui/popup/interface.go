package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is the contract shared by the modal components (selectors,
// prompts, pickers, confirmations). The app renders the returned View
// inside a centered border; popups never draw their own frame.
type Popup interface {
	// Init returns the command to run when the popup opens, usually a
	// cursor blink.
	Init() tea.Cmd

	// Update handles a message while the popup has focus.
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the inner content, frameless.
	View() string

	// SetSize tells the popup how much room the frame leaves it.
	SetSize(width, height int)
}
