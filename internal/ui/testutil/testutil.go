// Package testutil has the shared helpers for component tests.
package testutil

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var sgrRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes styling escape codes so tests can compare rendered
// output as plain text.
func StripANSI(s string) string {
	return sgrRe.ReplaceAllString(s, "")
}

// MeasureWidth returns the display width of s ignoring styling.
func MeasureWidth(s string) int {
	return lipgloss.Width(StripANSI(s))
}
