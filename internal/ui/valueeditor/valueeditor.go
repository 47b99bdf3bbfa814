// Package valueeditor provides the inline operand editors for filter rows.
// The editor shown depends on the column type and operator: free text with
// an adaptive height, single numbers and dates, ranges, or a multi-select
// over an enum column's values.
package valueeditor

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/ui"
	"github.com/mrivaux/sift/internal/ui/cursor"
	"github.com/mrivaux/sift/internal/ui/styles"
)

// Kind selects which editor widget is shown.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindNumberRange
	KindDate
	KindDateRange
	KindMultiSelect
)

// KindFor maps a column type and operator to the editor to use.
func KindFor(colType dataset.ColumnType, op filter.Operator) Kind {
	switch op {
	case filter.OpIn, filter.OpNotIn:
		return KindMultiSelect
	case filter.OpBetween:
		if colType == dataset.Date {
			return KindDateRange
		}
		return KindNumberRange
	}
	switch colType {
	case dataset.Number:
		return KindNumber
	case dataset.Date:
		return KindDate
	}
	return KindText
}

// choiceRows is how many enum values the multi-select shows at once.
const choiceRows = 6

// Model is the inline value editor. It is not a popup: it renders within
// the active filter row and receives keys while an edit is in progress.
type Model struct {
	ui.Base
	active  bool
	kind    Kind
	context any
	errText string

	text textModel

	single     textinput.Model
	from, to   textinput.Model
	rangeFocus int // 0 = from, 1 = to

	choices  []string
	selected map[string]bool
	cur      cursor.Cursor

	threshold        int
	releaseThreshold int
}

// New creates a value editor. The thresholds configure the text editor's
// height detector; non-positive values select the detector defaults.
func New(threshold, releaseThreshold int) Model {
	single := textinput.New()
	single.Prompt = ""
	from := textinput.New()
	from.Prompt = ""
	to := textinput.New()
	to.Prompt = ""
	return Model{
		text:             newTextModel(),
		single:           single,
		from:             from,
		to:               to,
		cur:              cursor.New(1),
		threshold:        threshold,
		releaseThreshold: releaseThreshold,
	}
}

// Start begins editing a value for the given column and operator.
func (m *Model) Start(column dataset.Column, op filter.Operator, initial filter.Value, context any, width int) {
	m.Stop()
	m.kind = KindFor(column.Type, op)
	m.context = context
	m.errText = ""
	m.active = true
	m.SetSize(width, 1)

	switch m.kind {
	case KindText:
		m.text.start(initial.Text, width, m.threshold, m.releaseThreshold)

	case KindNumber:
		m.single.SetValue(formatNumber(initial.Number))
		m.single.CursorEnd()
		m.single.Focus()

	case KindNumberRange:
		m.from.SetValue(formatNumber(initial.Number))
		m.to.SetValue(formatNumber(initial.NumberTo))
		m.startRange()

	case KindDate:
		m.single.SetValue(formatDate(initial.From))
		m.single.CursorEnd()
		m.single.Focus()

	case KindDateRange:
		m.from.SetValue(formatDate(initial.From))
		m.to.SetValue(formatDate(initial.To))
		m.startRange()

	case KindMultiSelect:
		m.choices = column.Values
		m.selected = make(map[string]bool, len(initial.Selected))
		for _, v := range initial.Selected {
			m.selected[v] = true
		}
		m.cur.Reset()
	}
}

func (m *Model) startRange() {
	m.rangeFocus = 0
	m.from.CursorEnd()
	m.from.Focus()
	m.to.Blur()
}

// Stop ends the edit and releases the text editor's detector binding.
// Safe to call when no edit is in progress.
func (m *Model) Stop() {
	if m.kind == KindText {
		m.text.stop()
	}
	m.single.Blur()
	m.from.Blur()
	m.to.Blur()
	m.active = false
	m.choices = nil
	m.selected = nil
	m.context = nil
}

// Active reports whether an edit is in progress.
func (m Model) Active() bool {
	return m.active
}

// Kind returns the current editor kind.
func (m Model) Kind() Kind {
	return m.kind
}

// MultilineEvents exposes text height transitions for the app to wait on.
// Transitions arrive on detector timer goroutines; the app converts them
// into messages with a channel-wait command.
func (m *Model) MultilineEvents() <-chan bool {
	return m.text.Events()
}

// SetMultiline applies a detector transition to the text editor height.
// Called by the app when a multiline event message arrives.
func (m *Model) SetMultiline(on bool) {
	if m.active && m.kind == KindText {
		m.text.setMultiline(on)
	}
}

// Multiline reports the text editor's current verdict.
func (m Model) Multiline() bool {
	return m.kind == KindText && m.text.multiline()
}

// Rows returns how many rows the editor currently occupies.
func (m Model) Rows() int {
	if m.kind == KindText {
		return m.text.rows
	}
	if m.kind == KindMultiSelect {
		return min(len(m.choices), choiceRows)
	}
	return 1
}

// Init returns the blink command for the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages during an edit. It emits a Result action on
// commit or cancel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && !keyMsg.Paste {
		switch keyMsg.String() {
		case "esc":
			return m.finish(Result{Canceled: true, Context: m.context})
		case "enter":
			return m.commit()
		}
	}

	switch m.kind {
	case KindText:
		return m.text.update(msg)
	case KindNumber, KindDate:
		var cmd tea.Cmd
		m.single, cmd = m.single.Update(msg)
		return cmd
	case KindNumberRange, KindDateRange:
		return m.updateRange(msg)
	case KindMultiSelect:
		return m.updateMultiSelect(msg)
	}
	return nil
}

func (m *Model) updateRange(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "tab" {
		m.rangeFocus = 1 - m.rangeFocus
		if m.rangeFocus == 0 {
			m.from.Focus()
			m.to.Blur()
		} else {
			m.to.Focus()
			m.from.Blur()
		}
		return nil
	}

	var cmd tea.Cmd
	if m.rangeFocus == 0 {
		m.from, cmd = m.from.Update(msg)
	} else {
		m.to, cmd = m.to.Update(msg)
	}
	return cmd
}

func (m *Model) updateMultiSelect(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	key := keyMsg.String()
	if m.cur.HandleKey(key, len(m.choices), choiceRows) {
		return nil
	}
	if key == " " && len(m.choices) > 0 {
		choice := m.choices[m.cur.Pos()]
		if m.selected[choice] {
			delete(m.selected, choice)
		} else {
			m.selected[choice] = true
		}
	}
	return nil
}

// commit validates the operand and emits the Result, or records an error
// hint and keeps the edit open.
func (m *Model) commit() tea.Cmd {
	value, err := m.buildValue()
	if err != "" {
		m.errText = err
		return nil
	}
	return m.finish(Result{Value: value, Context: m.context})
}

func (m *Model) buildValue() (filter.Value, string) {
	switch m.kind {
	case KindText:
		return filter.Value{Text: m.text.value()}, ""

	case KindNumber:
		n, ok := dataset.ParseNumber(strings.TrimSpace(m.single.Value()))
		if !ok {
			return filter.Value{}, "not a number"
		}
		return filter.Value{Number: n}, ""

	case KindNumberRange:
		lo, ok := dataset.ParseNumber(strings.TrimSpace(m.from.Value()))
		if !ok {
			return filter.Value{}, "from: not a number"
		}
		hi, ok := dataset.ParseNumber(strings.TrimSpace(m.to.Value()))
		if !ok {
			return filter.Value{}, "to: not a number"
		}
		return filter.Value{Number: lo, NumberTo: hi}, ""

	case KindDate:
		d, ok := dataset.ParseDate(strings.TrimSpace(m.single.Value()))
		if !ok {
			return filter.Value{}, "not a date (try 2006-01-02)"
		}
		return filter.Value{From: d}, ""

	case KindDateRange:
		lo, ok := dataset.ParseDate(strings.TrimSpace(m.from.Value()))
		if !ok {
			return filter.Value{}, "from: not a date (try 2006-01-02)"
		}
		hi, ok := dataset.ParseDate(strings.TrimSpace(m.to.Value()))
		if !ok {
			return filter.Value{}, "to: not a date (try 2006-01-02)"
		}
		return filter.Value{From: lo, To: hi}, ""

	case KindMultiSelect:
		if len(m.selected) == 0 {
			return filter.Value{}, "select at least one value"
		}
		// Keep the column's value order, not map order.
		var picked []string
		for _, choice := range m.choices {
			if m.selected[choice] {
				picked = append(picked, choice)
			}
		}
		return filter.Value{Selected: picked}, ""
	}
	return filter.Value{}, "nothing to edit"
}

func (m *Model) finish(result Result) tea.Cmd {
	m.Stop()
	return func() tea.Msg {
		return ActionMsg(result)
	}
}

// View renders the editor widget for the active kind.
func (m *Model) View() string {
	if !m.active {
		return ""
	}

	t := styles.T()
	var body string
	switch m.kind {
	case KindText:
		body = m.text.view()
	case KindNumber, KindDate:
		body = m.single.View()
	case KindNumberRange, KindDateRange:
		body = m.from.View() + t.S().Muted.Render(" to ") + m.to.View()
	case KindMultiSelect:
		body = m.viewMultiSelect()
	}

	if m.errText != "" {
		body += "\n" + t.S().Error.Render(m.errText)
	}
	return body
}

func (m *Model) viewMultiSelect() string {
	t := styles.T()
	var lines []string
	start, end := m.cur.VisibleRange(len(m.choices), choiceRows)
	for i := start; i < end; i++ {
		choice := m.choices[i]
		mark := "[ ]"
		if m.selected[choice] {
			mark = "[x]"
		}
		line := mark + " " + choice
		if i == m.cur.Pos() {
			lines = append(lines, t.S().Active.Render("> "+line))
		} else {
			lines = append(lines, "  "+t.S().Base.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// formatNumber renders a number for editing, dropping a zero placeholder.
func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDate renders a date for editing, dropping a zero placeholder.
func formatDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("2006-01-02")
}
