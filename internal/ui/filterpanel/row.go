package filterpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/icons"
	"github.com/mrivaux/sift/internal/ui/render"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// typeStyle colors a column name by its inferred type so rows over the
// same column read as a group.
func typeStyle(colType dataset.ColumnType) lipgloss.Style {
	t := styles.T()
	switch colType {
	case dataset.Number:
		return lipgloss.NewStyle().Foreground(t.Secondary)
	case dataset.Bool:
		return lipgloss.NewStyle().Foreground(t.Warning)
	case dataset.Date:
		return lipgloss.NewStyle().Foreground(t.Success)
	case dataset.Enum:
		return lipgloss.NewStyle().Foreground(t.Primary)
	}
	return t.S().Base
}

func (m *Model) columnType(name string) dataset.ColumnType {
	if m.table == nil {
		return dataset.Text
	}
	if col, ok := m.table.Column(name); ok {
		return col.Type
	}
	return dataset.Text
}

// renderRow renders one idle row: cursor marker, enabled toggle, colored
// column name, operator symbol and label, then the operand.
func (m *Model) renderRow(i int, width int) string {
	t := styles.T()
	f := m.rows[i]

	marker := "  "
	if i == m.cur.Pos() {
		marker = t.S().Active.Render("> ")
	}

	prefix := icons.Toggle(f.Enabled) + f.Column + " "
	if sym := icons.Operator(f.Op); sym != "" {
		prefix += sym + " "
	}
	prefix += f.Op.Label()

	operand := operandText(f)
	if operand != "" {
		remaining := width - 2 - lipgloss.Width(prefix) - 1
		operand = render.Truncate(operand, max(remaining, 4))
	}

	if !f.Enabled {
		line := prefix
		if operand != "" {
			line += " " + operand
		}
		return marker + t.S().Subtle.Render(render.Truncate(line, width-2))
	}

	var b strings.Builder
	b.WriteString(icons.Toggle(f.Enabled))
	b.WriteString(typeStyle(m.columnType(f.Column)).Render(f.Column))
	b.WriteString(" ")
	if sym := icons.Operator(f.Op); sym != "" {
		b.WriteString(t.S().Muted.Render(sym))
		b.WriteString(" ")
	}
	b.WriteString(t.S().Muted.Render(f.Op.Label()))
	if operand != "" {
		b.WriteString(" ")
		b.WriteString(t.S().Base.Render(operand))
	}
	return marker + b.String()
}

// renderEditingRow renders the active row followed by the injected editor
// widget, indented under it. A wrapped text operand adds the expanded
// marker after the operator.
func (m *Model) renderEditingRow(i int, width int) []string {
	t := styles.T()
	f := m.rows[i]

	var head strings.Builder
	head.WriteString(t.S().Active.Render("> "))
	head.WriteString(icons.Toggle(f.Enabled))
	head.WriteString(typeStyle(m.columnType(f.Column)).Render(render.Truncate(f.Column, width-8)))
	head.WriteString(" ")
	head.WriteString(t.S().Muted.Render(f.Op.Label()))
	if m.editorMultiline {
		head.WriteString(" ")
		head.WriteString(t.S().Active.Render(icons.Expanded()))
	}

	// Editor lines are already sized to the editor width; indent only,
	// truncation would strip the textarea's styling.
	lines := []string{head.String()}
	if m.editorView != "" {
		for _, line := range strings.Split(m.editorView, "\n") {
			lines = append(lines, "    "+line)
		}
	}
	return lines
}

// operandText is the operand summary for idle rows. It reuses the filter
// summary but drops the column and operator prefix.
func operandText(f filter.Filter) string {
	if !f.Op.NeedsValue() {
		return ""
	}
	summary := f.Summary()
	prefix := f.Column + " " + f.Op.Label()
	return strings.TrimSpace(strings.TrimPrefix(summary, prefix))
}
