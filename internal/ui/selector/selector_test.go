package selector

import (
	"testing"

	"github.com/mrivaux/sift/internal/ui/action"
	"github.com/mrivaux/sift/internal/ui/testutil"
)

const testContext = "ctx"

func columnItems() []Item {
	return []Item{
		{ID: "name", Label: "name", Detail: "text"},
		{ID: "age", Label: "age", Detail: "number"},
		{ID: "active", Label: "active", Detail: "bool"},
		{ID: "joined", Label: "joined", Detail: "date"},
	}
}

func newTestSelector(items []Item, preselect string, context any) *testutil.PopupHarness {
	m := New()
	m.Start("Column", items, preselect, context, 80, 24)
	return testutil.NewPopupHarness(&m)
}

func getResult(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	cmd := h.LastCommand()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg := testutil.ExecuteCmd(cmd)
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

func TestSelectFirstItem(t *testing.T) {
	h := newTestSelector(columnItems(), "", testContext)

	h.SendEnter()

	result := getResult(t, h)
	if result.Canceled {
		t.Error("expected Canceled=false")
	}
	if result.Item.ID != "name" {
		t.Errorf("Item.ID = %q, want %q", result.Item.ID, "name")
	}
	if result.Context != testContext {
		t.Errorf("Context = %v, want %q", result.Context, testContext)
	}
}

func TestNavigateAndSelect(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	h.SendDown()
	h.SendDown()
	h.SendEnter()

	result := getResult(t, h)
	if result.Item.ID != "active" {
		t.Errorf("Item.ID = %q, want %q", result.Item.ID, "active")
	}
}

func TestCancelWithEscape(t *testing.T) {
	h := newTestSelector(columnItems(), "", testContext)

	h.SendEscape()

	result := getResult(t, h)
	if !result.Canceled {
		t.Error("expected Canceled=true")
	}
	if result.Context != testContext {
		t.Errorf("Context = %v, want %q", result.Context, testContext)
	}
}

func TestTypeaheadNarrowsItems(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	h.SendKey("a")
	h.SendKey("g")
	h.SendEnter()

	result := getResult(t, h)
	if result.Item.ID != "age" {
		t.Errorf("Item.ID = %q, want %q", result.Item.ID, "age")
	}
}

func TestTypeaheadCaseInsensitive(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	h.SendKey("J")
	h.SendEnter()

	result := getResult(t, h)
	if result.Item.ID != "joined" {
		t.Errorf("Item.ID = %q, want %q", result.Item.ID, "joined")
	}
}

func TestEnterOnEmptyMatchesIsNoop(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	h.SendKey("z")
	h.SendKey("z")
	h.ClearCommands()
	h.SendEnter()

	if h.LastCommand() != nil {
		t.Error("enter with no matches should not produce a command")
	}
}

func TestTypeaheadClampsCursor(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	// Cursor on the last item, then narrow to a single match.
	h.SendDown()
	h.SendDown()
	h.SendDown()
	h.SendKey("n")
	h.SendKey("a")
	h.SendKey("m")
	h.SendEnter()

	result := getResult(t, h)
	if result.Item.ID != "name" {
		t.Errorf("Item.ID = %q, want %q", result.Item.ID, "name")
	}
}

func TestPreselectPositionsCursor(t *testing.T) {
	h := newTestSelector(columnItems(), "active", nil)

	h.SendEnter()

	result := getResult(t, h)
	if result.Item.ID != "active" {
		t.Errorf("Item.ID = %q, want %q", result.Item.ID, "active")
	}
}

func TestNavigationBounds(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	h.SendUp()
	h.SendUp()
	h.SendEnter()

	result := getResult(t, h)
	if result.Item.ID != "name" {
		t.Errorf("Item.ID = %q, want %q (should stay at first)", result.Item.ID, "name")
	}
}

func TestView(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	if err := h.AssertViewContains("Column"); err != "" {
		t.Error(err)
	}
	if err := h.AssertViewContains("name"); err != "" {
		t.Error(err)
	}
	if err := h.AssertViewContains("age"); err != "" {
		t.Error(err)
	}
}

func TestView_NoMatches(t *testing.T) {
	h := newTestSelector(columnItems(), "", nil)

	h.SendKey("z")
	h.SendKey("z")

	if err := h.AssertViewContains("no matches"); err != "" {
		t.Error(err)
	}
}

func TestReset(t *testing.T) {
	m := New()
	m.Start("Column", columnItems(), "", testContext, 80, 24)
	m.Reset()

	if _, ok := m.Selected(); ok {
		t.Error("expected no selection after Reset")
	}
}
