// Package cursor tracks a selection and scroll offset for the list
// panels. List length and viewport height are parameters rather than
// state because both change on every resize and refilter.
package cursor

// Cursor is a selection index plus the scroll offset of the first
// visible row. The margin is how many rows stay visible above and
// below the selection while scrolling.
type Cursor struct {
	pos    int
	offset int
	margin int
}

func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected index.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the index of the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Move shifts the selection by delta, clamped to the list, and scrolls
// to keep it visible. No-op on an empty list.
func (c *Cursor) Move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.scrollIntoView(listLen, height)
}

// Jump selects an absolute index, clamped to the list, and scrolls to
// keep it visible. No-op on an empty list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scrollIntoView(listLen, height)
}

// JumpStart selects the first row and rewinds the scroll.
func (c *Cursor) JumpStart() {
	c.pos = 0
	c.offset = 0
}

// JumpEnd selects the last row.
func (c *Cursor) JumpEnd(listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = listLen - 1
	c.scrollIntoView(listLen, height)
}

// EnsureVisible rescrolls after the selection was changed externally.
func (c *Cursor) EnsureVisible(listLen, height int) {
	c.scrollIntoView(listLen, height)
}

func (c *Cursor) scrollIntoView(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	if c.pos < c.offset+c.margin {
		c.offset = max(c.pos-c.margin, 0)
	}
	if c.pos >= c.offset+height-c.margin {
		c.offset = c.pos - height + c.margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// ClampToBounds pulls the selection back into the list after rows were
// removed. Reports whether anything moved.
func (c *Cursor) ClampToBounds(listLen int) bool {
	if listLen == 0 {
		changed := c.pos != 0 || c.offset != 0
		c.pos = 0
		c.offset = 0
		return changed
	}
	old := c.pos
	c.pos = clamp(c.pos, listLen-1)
	return c.pos != old
}

// VisibleRange returns the half-open index range [start, end) of the
// rows currently in view.
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// Reset returns to the first row with no scroll.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// HandleKey applies the shared navigation keys (j/k, arrows, g/G,
// home/end, ctrl+d/ctrl+u) and reports whether the key was one of them.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "g", "home":
		c.JumpStart()
	case "G", "end":
		c.JumpEnd(listLen, height)
	case "ctrl+d":
		c.Move(height/2, listLen, height)
	case "ctrl+u":
		c.Move(-height/2, listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
