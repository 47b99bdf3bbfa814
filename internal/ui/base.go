package ui

// Base holds the focus flag and dimensions every panel and popup needs.
// Embed it and the standard accessors come along.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

func (b Base) IsFocused() bool {
	return b.focused
}

func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Size() (width, height int) {
	return b.width, b.height
}

func (b Base) Width() int {
	return b.width
}

func (b Base) Height() int {
	return b.height
}

// ListHeight is the height left for rows after the panel chrome.
func (b Base) ListHeight(overhead int) int {
	return b.height - overhead
}
