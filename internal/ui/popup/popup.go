// Package popup renders modal content centered over the panels.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mrivaux/sift/internal/ui/styles"
)

// SizeConfig sizes a popup frame. Zero percentages mean fit to content.
type SizeConfig struct {
	WidthPct  int
	HeightPct int
	MaxWidth  int
}

// SizeAuto fits the frame to its content. All current popups use it;
// the percentage path exists for content that should fill the screen.
var SizeAuto = SizeConfig{}

// RenderBordered wraps content in a rounded border and centers it on
// the screen.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	width, height := frameSize(content, screenW, screenH, size)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Width(width - 2).
		Height(height - 2).
		Padding(1, 2).
		Render(content)

	return Center(box, screenW, screenH)
}

func frameSize(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return screenW * size.WidthPct / 100, screenH * size.HeightPct / 100
	}

	width = maxLineWidth(content) + 6
	if size.MaxWidth > 0 && width > size.MaxWidth {
		width = size.MaxWidth
	}
	width = min(width, screenW-4)

	height = strings.Count(content, "\n") + 1 + 4
	height = min(height, screenH-4)
	return width, height
}

func maxLineWidth(s string) int {
	maxW := 0
	for _, line := range strings.Split(s, "\n") {
		if w := lipgloss.Width(line); w > maxW {
			maxW = w
		}
	}
	return maxW
}

// Center positions a pre-rendered box in the middle of the screen,
// padding with blank lines and left margins.
func Center(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}

	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var out strings.Builder
	for i := 0; i < padTop; i++ {
		out.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		out.WriteString(strings.Repeat(" ", padLeft))
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

// Compose splices the popup into the base view so the panels stay
// visible around it. Only the visually non-empty span of each popup
// line replaces base content. All cutting goes through the ansi
// helpers so escape sequences stay intact, with width fixups where a
// cut lands inside a wide rune.
func Compose(base, popupView string, width, _ int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(popupView, "\n")

	for i, line := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		startCol := 0
		for _, r := range plain {
			if r != ' ' {
				break
			}
			startCol++
		}
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))

		content := ansi.Cut(line, startCol, endCol)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(ansi.Strip(baseLine)); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		// A cut that lands inside a wide rune drops it entirely, so the
		// prefix can come back short.
		prefix := ansi.Cut(baseLine, 0, startCol)
		if w := ansi.StringWidth(ansi.Strip(prefix)); w < startCol {
			prefix += strings.Repeat(" ", startCol-w)
		}

		out := prefix + content
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			suffixWidth := ansi.StringWidth(ansi.Strip(suffix))
			want := width - endCol
			if suffixWidth > want {
				// A wide rune straddles the cut; blank its first cell.
				suffix = " " + ansi.Cut(suffix, suffixWidth-want+1, suffixWidth)
			} else if suffixWidth < want {
				out += strings.Repeat(" ", want-suffixWidth)
			}
			out += suffix
		}
		baseLines[i] = out
	}

	return strings.Join(baseLines, "\n")
}
