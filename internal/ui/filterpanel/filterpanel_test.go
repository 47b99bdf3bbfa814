package filterpanel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/dataset"
	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/ui/action"
	"github.com/mrivaux/sift/internal/ui/testutil"
)

func testTable() *dataset.Table {
	return &dataset.Table{
		Name: "people",
		Columns: []dataset.Column{
			{Name: "name", Type: dataset.Text},
			{Name: "age", Type: dataset.Number},
			{Name: "team", Type: dataset.Enum, Values: []string{"core", "infra"}},
		},
	}
}

func testFilters() []filter.Filter {
	return []filter.Filter{
		{Column: "name", Op: filter.OpContains, Value: filter.Value{Text: "ali"}, Enabled: true},
		{Column: "age", Op: filter.OpGreater, Value: filter.Value{Number: 30}, Enabled: true},
		{Column: "team", Op: filter.OpIn, Value: filter.Value{Selected: []string{"core"}}, Enabled: false},
	}
}

func newTestPanel(rows []filter.Filter) *Model {
	m := New()
	m.SetTable(testTable())
	m.SetFilters(rows)
	m.SetSize(60, 20)
	m.SetFocused(true)
	return &m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func getAction(t *testing.T, cmd tea.Cmd) action.Action {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg := cmd()
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	return actionMsg.Action
}

func TestAddEmitsEditForNewRow(t *testing.T) {
	m := newTestPanel(nil)

	cmd := m.Update(key("a"))

	edit, ok := getAction(t, cmd).(EditRequested)
	if !ok {
		t.Fatal("expected EditRequested")
	}
	if edit.Index != -1 {
		t.Errorf("Index = %d, want -1", edit.Index)
	}
}

func TestEnterEmitsEditForSelectedRow(t *testing.T) {
	m := newTestPanel(testFilters())

	m.Update(key("j"))
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	edit, ok := getAction(t, cmd).(EditRequested)
	if !ok {
		t.Fatal("expected EditRequested")
	}
	if edit.Index != 1 {
		t.Errorf("Index = %d, want 1", edit.Index)
	}
}

func TestDeleteEmitsRequest(t *testing.T) {
	m := newTestPanel(testFilters())

	cmd := m.Update(key("d"))

	del, ok := getAction(t, cmd).(DeleteRequested)
	if !ok {
		t.Fatal("expected DeleteRequested")
	}
	if del.Index != 0 {
		t.Errorf("Index = %d, want 0", del.Index)
	}
}

func TestSpaceTogglesRow(t *testing.T) {
	m := newTestPanel(testFilters())

	cmd := m.Update(key(" "))

	toggled, ok := getAction(t, cmd).(Toggled)
	if !ok {
		t.Fatal("expected Toggled")
	}
	if toggled.Index != 0 || toggled.Enabled {
		t.Errorf("Toggled = %+v, want index 0 disabled", toggled)
	}
	if m.Filters()[0].Enabled {
		t.Error("row 0 should be disabled after toggle")
	}
}

func TestNavigationMovesSelection(t *testing.T) {
	m := newTestPanel(testFilters())

	m.Update(key("j"))
	m.Update(key("j"))
	m.Update(key("j")) // clamped at last row

	if m.Selected() != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected())
	}

	m.Update(key("k"))
	if m.Selected() != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected())
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := newTestPanel(testFilters())
	m.SetFocused(false)

	if cmd := m.Update(key("a")); cmd != nil {
		t.Error("unfocused panel should not produce commands")
	}
}

func TestEditingBlocksRowKeys(t *testing.T) {
	m := newTestPanel(testFilters())
	m.SetEditing(0, "editor", 1, false)

	if cmd := m.Update(key("d")); cmd != nil {
		t.Error("panel should ignore row keys while editing")
	}
}

func TestAppendMovesCursor(t *testing.T) {
	m := newTestPanel(testFilters())

	idx := m.Append(filter.Filter{Column: "name", Op: filter.OpEquals, Enabled: true})

	if idx != 3 {
		t.Errorf("Append index = %d, want 3", idx)
	}
	if m.Selected() != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected())
	}
}

func TestRemoveAtClampsCursor(t *testing.T) {
	m := newTestPanel(testFilters())
	m.Update(key("j"))
	m.Update(key("j"))

	m.RemoveAt(2)

	if len(m.Filters()) != 2 {
		t.Fatalf("len = %d, want 2", len(m.Filters()))
	}
	if m.Selected() != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected())
	}
}

func TestRemoveEditedRowClearsEditing(t *testing.T) {
	m := newTestPanel(testFilters())
	m.SetEditing(1, "editor", 1, false)

	m.RemoveAt(1)

	if m.Editing() != -1 {
		t.Errorf("Editing = %d, want -1", m.Editing())
	}
}

func TestViewShowsRows(t *testing.T) {
	m := newTestPanel(testFilters())

	view := testutil.StripANSI(m.View())

	if !strings.Contains(view, "Filters (3)") {
		t.Error("expected header with row count")
	}
	if !strings.Contains(view, "name") || !strings.Contains(view, "contains") {
		t.Error("expected first row column and operator")
	}
	if !strings.Contains(view, "ali") {
		t.Error("expected first row operand")
	}
}

func TestViewEmptyHint(t *testing.T) {
	m := newTestPanel(nil)

	view := testutil.StripANSI(m.View())

	if !strings.Contains(view, "press a to add a filter") {
		t.Error("expected empty state hint")
	}
}

func TestViewShowsEditorRows(t *testing.T) {
	m := newTestPanel(testFilters())
	m.SetEditing(0, "line one\nline two", 2, true)

	view := testutil.StripANSI(m.View())

	if !strings.Contains(view, "line one") || !strings.Contains(view, "line two") {
		t.Error("expected injected editor lines")
	}
}
