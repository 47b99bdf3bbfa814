package cursor

import tea "github.com/charmbracelet/bubbletea"

// MouseResult describes what a mouse event did to the cursor.
type MouseResult int

const (
	MouseNone MouseResult = iota
	MouseScrolled
	MouseClicked
	MouseMiddleClick
)

// wheelStep is how many items one wheel notch scrolls.
const wheelStep = 3

// HandleMouse handles wheel scrolling and row clicks for a list.
// headerRows is the number of rendered lines above the first item row.
// The returned index is the clicked item, or -1 for scrolls and misses.
func (c *Cursor) HandleMouse(msg tea.MouseMsg, listLen, height, headerRows int) (MouseResult, int) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		c.Move(-wheelStep, listLen, height)
		return MouseScrolled, -1
	case tea.MouseButtonWheelDown:
		c.Move(wheelStep, listLen, height)
		return MouseScrolled, -1
	}

	if msg.Action != tea.MouseActionPress {
		return MouseNone, -1
	}

	row := c.offset + msg.Y - headerRows
	if row < 0 || row >= listLen {
		return MouseNone, -1
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		c.Jump(row, listLen, height)
		return MouseClicked, row
	case tea.MouseButtonMiddle:
		return MouseMiddleClick, row
	}
	return MouseNone, -1
}
