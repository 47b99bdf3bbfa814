// Package render has the width-aware text helpers shared by the panels.
// Dataset cells come straight from user files, so everything that ends
// up on screen passes through Sanitize first.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize strips control characters (tab excepted), drops invalid
// UTF-8 bytes, and turns non-breaking spaces into plain ones. CSV cells
// can carry all three and any of them corrupts terminal output.
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			i++
		case r != '\t' && unicode.IsControl(r):
			i += size
		case r == '\u00a0':
			b.WriteByte(' ')
			i += size
		default:
			b.WriteString(s[i : i+size])
			i += size
		}
	}
	return b.String()
}

// clean reports whether s can skip the sanitize pass. Checked byte-wise
// so the common all-ASCII cell costs no allocation.
func clean(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return false
		}
		if b >= 0x80 && b <= 0x9f {
			return false
		}
		// 0xc2 0xa0 is the UTF-8 encoding of NBSP.
		if b == 0xc2 && i+1 < len(s) && s[i+1] == 0xa0 {
			return false
		}
	}
	return true
}

// Truncate sanitizes s and cuts it to maxWidth display cells, appending
// "..." when anything was removed. Wide runes count their full width.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateEllipsis is Truncate with the one-cell … marker, for narrow
// columns where three dots would eat the content.
func TruncateEllipsis(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	for lipgloss.Width(s) > maxWidth-1 && s != "" {
		s = s[:len(s)-1]
	}
	return s + "…"
}

// Pad right-fills s with spaces to width display cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns s at exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// TruncateAndPadEllipsis returns s at exactly width cells with the
// one-cell marker.
func TruncateAndPadEllipsis(s string, width int) string {
	return Pad(TruncateEllipsis(s, width), width)
}

// Row lays out left- and right-aligned content with at least one space
// between them, width cells total when the content fits.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator draws a horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", width)
}

// EmptyLine draws a blank line of the given width.
func EmptyLine(width int) string {
	return strings.Repeat(" ", width)
}
