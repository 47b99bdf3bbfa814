package valueeditor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/ui/action"
)

const eventTimeout = 2 * time.Second

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pasteRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Paste: true}
}

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

func getResult(t *testing.T, cmd tea.Cmd) Result {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg := cmd()
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	result, ok := actionMsg.Action.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", actionMsg.Action)
	}
	return result
}

func waitEvent(t *testing.T, ch <-chan bool) bool {
	t.Helper()
	select {
	case state := <-ch:
		return state
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for multiline event")
		return false
	}
}

func textColumn() dataset.Column {
	return dataset.Column{Name: "notes", Type: dataset.Text}
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		name    string
		colType dataset.ColumnType
		op      filter.Operator
		want    Kind
	}{
		{"text contains", dataset.Text, filter.OpContains, KindText},
		{"enum eq", dataset.Enum, filter.OpEquals, KindText},
		{"number gt", dataset.Number, filter.OpGreater, KindNumber},
		{"number between", dataset.Number, filter.OpBetween, KindNumberRange},
		{"date before", dataset.Date, filter.OpBefore, KindDate},
		{"date between", dataset.Date, filter.OpBetween, KindDateRange},
		{"enum in", dataset.Enum, filter.OpIn, KindMultiSelect},
		{"enum not in", dataset.Enum, filter.OpNotIn, KindMultiSelect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindFor(tt.colType, tt.op); got != tt.want {
				t.Errorf("KindFor(%v, %v) = %v, want %v", tt.colType, tt.op, got, tt.want)
			}
		})
	}
}

func TestTextCommit(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{}, "ctx", 40)

	typeString(&m, "hello")
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := getResult(t, cmd)
	if result.Canceled {
		t.Error("expected Canceled=false")
	}
	if result.Value.Text != "hello" {
		t.Errorf("Text = %q, want %q", result.Value.Text, "hello")
	}
	if result.Context != "ctx" {
		t.Errorf("Context = %v, want %q", result.Context, "ctx")
	}
	if m.Active() {
		t.Error("editor should be inactive after commit")
	}
}

func TestTextCancel(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{Text: "keep"}, nil, 40)

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	result := getResult(t, cmd)
	if !result.Canceled {
		t.Error("expected Canceled=true")
	}
}

func TestTextInitialValue(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{Text: "seed"}, nil, 40)

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := getResult(t, cmd)
	if result.Value.Text != "seed" {
		t.Errorf("Text = %q, want %q", result.Value.Text, "seed")
	}
}

func TestTextStartsCollapsed(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{}, nil, 40)

	if m.Multiline() {
		t.Error("expected Multiline=false for empty value")
	}
	if m.Rows() != collapsedRows {
		t.Errorf("Rows = %d, want %d", m.Rows(), collapsedRows)
	}
}

func TestTextPasteTriggersMultiline(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{}, nil, 20)

	m.Update(pasteRunes(strings.Repeat("x", 200)))

	if state := waitEvent(t, m.MultilineEvents()); !state {
		t.Error("expected multiline=true event")
	}
	m.SetMultiline(true)
	if !m.Multiline() {
		t.Error("expected Multiline=true")
	}
	if m.Rows() <= collapsedRows {
		t.Errorf("Rows = %d, want > %d", m.Rows(), collapsedRows)
	}
	if m.Rows() > maxExpandedRows {
		t.Errorf("Rows = %d, want <= %d", m.Rows(), maxExpandedRows)
	}
}

func TestTextTypingTriggersMultiline(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{}, nil, 20)

	typeString(&m, strings.Repeat("y", 150))

	if state := waitEvent(t, m.MultilineEvents()); !state {
		t.Error("expected multiline=true event")
	}
}

func TestTextShrinkReleases(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{}, nil, 20)

	m.Update(pasteRunes(strings.Repeat("x", 400)))
	if state := waitEvent(t, m.MultilineEvents()); !state {
		t.Fatal("expected multiline=true event")
	}
	m.SetMultiline(true)

	// Clearing the value resets the detector back to single line.
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.text.area.Value() != "" {
		// ctrl+u clears to line start; fall back to selecting everything.
		m.text.area.SetValue("")
		m.text.surface.update("", 20, m.text.rows)
		m.text.det.ContentChanged(false)
	}

	if state := waitEvent(t, m.MultilineEvents()); state {
		t.Error("expected multiline=false event after clearing")
	}
	m.SetMultiline(false)
	if m.Rows() != collapsedRows {
		t.Errorf("Rows = %d, want %d", m.Rows(), collapsedRows)
	}
}

func TestStopSilencesDetector(t *testing.T) {
	m := New(0, 0)
	m.Start(textColumn(), filter.OpContains, filter.Value{}, nil, 20)

	m.Update(pasteRunes(strings.Repeat("x", 200)))
	m.Stop()

	select {
	case state := <-m.MultilineEvents():
		// A transition that won the race before Stop is fine; it must be
		// the only one.
		_ = state
	case <-time.After(100 * time.Millisecond):
	}
	select {
	case <-m.MultilineEvents():
		t.Error("no further events expected after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNumberCommit(t *testing.T) {
	m := New(0, 0)
	m.Start(dataset.Column{Name: "age", Type: dataset.Number}, filter.OpGreater, filter.Value{}, nil, 40)

	typeString(&m, "42.5")
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := getResult(t, cmd)
	if result.Value.Number != 42.5 {
		t.Errorf("Number = %v, want 42.5", result.Value.Number)
	}
}

func TestNumberInvalidKeepsEditing(t *testing.T) {
	m := New(0, 0)
	m.Start(dataset.Column{Name: "age", Type: dataset.Number}, filter.OpGreater, filter.Value{}, nil, 40)

	typeString(&m, "abc")
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("invalid number should not commit")
	}
	if !m.Active() {
		t.Error("editor should stay active on invalid input")
	}
	if m.View() == "" || !strings.Contains(m.View(), "not a number") {
		t.Error("expected error hint in view")
	}
}

func TestNumberRangeCommit(t *testing.T) {
	m := New(0, 0)
	m.Start(dataset.Column{Name: "age", Type: dataset.Number}, filter.OpBetween, filter.Value{}, nil, 40)

	typeString(&m, "10")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeString(&m, "20")
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := getResult(t, cmd)
	if result.Value.Number != 10 || result.Value.NumberTo != 20 {
		t.Errorf("range = [%v, %v], want [10, 20]", result.Value.Number, result.Value.NumberTo)
	}
}

func TestDateCommit(t *testing.T) {
	m := New(0, 0)
	m.Start(dataset.Column{Name: "joined", Type: dataset.Date}, filter.OpBefore, filter.Value{}, nil, 40)

	typeString(&m, "2024-03-15")
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := getResult(t, cmd)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !result.Value.From.Equal(want) {
		t.Errorf("From = %v, want %v", result.Value.From, want)
	}
}

func TestDateRangeInvalidTo(t *testing.T) {
	m := New(0, 0)
	m.Start(dataset.Column{Name: "joined", Type: dataset.Date}, filter.OpBetween, filter.Value{}, nil, 40)

	typeString(&m, "2024-01-01")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeString(&m, "nope")
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("invalid date should not commit")
	}
	if !strings.Contains(m.View(), "to: not a date") {
		t.Error("expected error hint naming the to field")
	}
}

func TestMultiSelectCommit(t *testing.T) {
	col := dataset.Column{Name: "team", Type: dataset.Enum, Values: []string{"core", "infra", "web"}}
	m := New(0, 0)
	m.Start(col, filter.OpIn, filter.Value{}, nil, 40)

	m.Update(keyRunes(" "))                  // toggle core
	m.Update(tea.KeyMsg{Type: tea.KeyDown})  // -> infra
	m.Update(tea.KeyMsg{Type: tea.KeyDown})  // -> web
	m.Update(keyRunes(" "))                  // toggle web
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := getResult(t, cmd)
	want := []string{"core", "web"}
	if len(result.Value.Selected) != len(want) {
		t.Fatalf("Selected = %v, want %v", result.Value.Selected, want)
	}
	for i, v := range want {
		if result.Value.Selected[i] != v {
			t.Errorf("Selected[%d] = %q, want %q", i, result.Value.Selected[i], v)
		}
	}
}

func TestMultiSelectToggleOff(t *testing.T) {
	col := dataset.Column{Name: "team", Type: dataset.Enum, Values: []string{"core", "infra"}}
	m := New(0, 0)
	m.Start(col, filter.OpIn, filter.Value{Selected: []string{"core"}}, nil, 40)

	m.Update(keyRunes(" ")) // toggle core off
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("empty selection should not commit")
	}
	if !strings.Contains(m.View(), "select at least one") {
		t.Error("expected error hint for empty selection")
	}
}

func TestInactiveIgnoresKeys(t *testing.T) {
	m := New(0, 0)

	if cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("inactive editor should not produce commands")
	}
	if m.View() != "" {
		t.Error("inactive editor view should be empty")
	}
}
