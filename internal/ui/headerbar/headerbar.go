// Package headerbar renders the single-line bar at the top of the screen:
// app title, loaded dataset, and match counts for the active filters.
package headerbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mrivaux/sift/internal/icons"
	"github.com/mrivaux/sift/internal/ui/render"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Info is the state the bar displays.
type Info struct {
	Dataset  string // dataset name, empty when nothing is loaded
	Rows     int    // total rows in the dataset
	Matching int    // rows matching the enabled filters
	Filters  int    // enabled filter count
}

var (
	gradientFrom = lipgloss.Color("#5eead4")
	gradientTo   = lipgloss.Color("#2dd4bf")
)

// Render returns the header bar string for the given width.
func Render(info Info, width int) string {
	if width < 20 {
		return ""
	}

	t := styles.T()
	title := styles.ApplyBoldGradient("sift", gradientFrom, gradientTo)

	var left string
	if info.Dataset == "" {
		left = title + "  " + t.S().Subtle.Render("no dataset loaded")
	} else {
		left = title + "  " +
			t.S().Muted.Render(icons.Dataset()) +
			t.S().Base.Render(render.Truncate(info.Dataset, width/3))
	}

	right := ""
	if info.Dataset != "" {
		counts := fmt.Sprintf("%s / %s rows",
			humanize.Comma(int64(info.Matching)),
			humanize.Comma(int64(info.Rows)))
		if info.Filters > 0 {
			counts = fmt.Sprintf("%s%d active · %s", icons.Filter(), info.Filters, counts)
		}
		style := t.S().Muted
		if info.Filters > 0 && info.Matching < info.Rows {
			style = t.S().Success
		}
		right = style.Render(counts)
	}

	return render.Row(left, right, width)
}
