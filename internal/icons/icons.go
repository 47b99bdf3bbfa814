package icons

import "github.com/mrivaux/sift/internal/filter"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Dataset  string
	Filter   string
	Enabled  string
	Disabled string
	Expanded string // multiline row marker

	ops map[filter.Operator]string
}

var (
	nerdIcons = Icons{
		Dataset:  " ", // nf-fa-database
		Filter:   " ", // nf-fa-filter
		Enabled:  " ", // nf-fa-check_circle
		Disabled: " ", // nf-fa-minus_circle
		Expanded: " ", // nf-oct-unfold
		ops:      unicodeOps,
	}

	unicodeIcons = Icons{
		Dataset:  "▤ ",
		Filter:   "⧩ ",
		Enabled:  "● ",
		Disabled: "○ ",
		Expanded: "¶ ",
		ops:      unicodeOps,
	}

	noneIcons = Icons{
		Enabled:  "[x] ",
		Disabled: "[ ] ",
		ops:      nil,
	}

	// unicodeOps are shared by the nerd and unicode styles; nerd fonts
	// have no better glyphs for comparison operators.
	unicodeOps = map[filter.Operator]string{
		filter.OpContains:    "∋",
		filter.OpNotContains: "∌",
		filter.OpEquals:      "=",
		filter.OpNotEquals:   "≠",
		filter.OpStartsWith:  "^",
		filter.OpEndsWith:    "$",
		filter.OpIsEmpty:     "∅",
		filter.OpIsNotEmpty:  "≢∅",
		filter.OpGreater:     ">",
		filter.OpGreaterEq:   "≥",
		filter.OpLess:        "<",
		filter.OpLessEq:      "≤",
		filter.OpBetween:     "↔",
		filter.OpIsTrue:      "✓",
		filter.OpIsFalse:     "✗",
		filter.OpBefore:      "◂",
		filter.OpAfter:       "▸",
		filter.OpOn:          "=",
		filter.OpIn:          "∈",
		filter.OpNotIn:       "∉",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Dataset returns the dataset indicator for the header bar.
func Dataset() string {
	return current.Dataset
}

// Filter returns the filter indicator.
func Filter() string {
	return current.Filter
}

// Expanded returns the marker shown on a filter row whose value editor
// has grown to multiple lines.
func Expanded() string {
	return current.Expanded
}

// Toggle returns the enabled/disabled marker for a filter row.
func Toggle(enabled bool) string {
	if enabled {
		return current.Enabled
	}
	return current.Disabled
}

// Operator returns the symbol shown next to an operator in the selector
// and the filter row, or empty when the style has none.
func Operator(op filter.Operator) string {
	if current.ops == nil {
		return ""
	}
	return current.ops[op]
}
