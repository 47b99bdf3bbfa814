package cursor

import "testing"

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		start      int
		delta      int
		listLen    int
		height     int
		wantPos    int
		wantOffset int
	}{
		{"down inside view", 2, 0, 1, 10, 5, 1, 0},
		{"down into margin scrolls", 2, 0, 3, 10, 5, 3, 1},
		{"up clamps at zero", 2, 2, -5, 10, 5, 0, 0},
		{"down clamps at last row", 2, 5, 15, 10, 5, 9, 5},
		{"scrolls to follow selection", 2, 2, 3, 10, 5, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.pos = tt.start
			c.Move(tt.delta, tt.listLen, tt.height)
			if c.Pos() != tt.wantPos || c.Offset() != tt.wantOffset {
				t.Errorf("pos=%d offset=%d, want pos=%d offset=%d",
					c.Pos(), c.Offset(), tt.wantPos, tt.wantOffset)
			}
		})
	}
}

func TestMoveEmptyList(t *testing.T) {
	c := New(2)
	c.pos = 5
	c.Move(1, 0, 5)
	if c.Pos() != 5 {
		t.Errorf("pos = %d, want unchanged 5", c.Pos())
	}
}

func TestJumpClamps(t *testing.T) {
	c := New(2)
	c.Jump(5, 10, 5)
	if c.Pos() != 5 {
		t.Errorf("pos = %d, want 5", c.Pos())
	}
	c.Jump(100, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("pos = %d, want 9", c.Pos())
	}
	c.Jump(-5, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("pos = %d, want 0", c.Pos())
	}
}

func TestJumpStartAndEnd(t *testing.T) {
	c := New(2)
	c.JumpEnd(10, 5)
	if c.Pos() != 9 {
		t.Errorf("JumpEnd pos = %d, want 9", c.Pos())
	}
	c.JumpStart()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("JumpStart pos=%d offset=%d, want 0/0", c.Pos(), c.Offset())
	}

	empty := New(2)
	empty.JumpEnd(0, 5)
	if empty.Pos() != 0 {
		t.Errorf("JumpEnd on empty list pos = %d, want 0", empty.Pos())
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		pos        int
		offset     int
		listLen    int
		height     int
		wantOffset int
	}{
		{"already visible", 2, 5, 3, 10, 5, 3},
		{"above view scrolls up", 2, 1, 5, 10, 5, 0},
		{"below view scrolls down", 2, 8, 0, 10, 5, 5},
		{"no margin stays put", 0, 4, 0, 10, 5, 0},
		{"no margin scrolls one", 0, 5, 0, 10, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.pos = tt.pos
			c.offset = tt.offset
			c.EnsureVisible(tt.listLen, tt.height)
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestClampToBounds(t *testing.T) {
	tests := []struct {
		name        string
		pos         int
		offset      int
		listLen     int
		wantChanged bool
		wantPos     int
	}{
		{"in bounds", 3, 0, 10, false, 3},
		{"past shortened list", 8, 5, 5, true, 4},
		{"list emptied", 5, 3, 0, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2)
			c.pos = tt.pos
			c.offset = tt.offset
			if got := c.ClampToBounds(tt.listLen); got != tt.wantChanged {
				t.Errorf("changed = %v, want %v", got, tt.wantChanged)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		listLen   int
		height    int
		wantStart int
		wantEnd   int
	}{
		{"middle of list", 2, 10, 5, 2, 7},
		{"short tail", 7, 10, 5, 7, 10},
		{"empty list", 0, 0, 5, 0, 0},
		{"zero height", 0, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2)
			c.offset = tt.offset
			start, end := c.VisibleRange(tt.listLen, tt.height)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("range = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestHandleKey(t *testing.T) {
	c := New(1)
	if !c.HandleKey("G", 10, 5) {
		t.Fatal("G not handled")
	}
	if c.Pos() != 9 {
		t.Errorf("pos = %d, want 9", c.Pos())
	}
	if !c.HandleKey("ctrl+u", 10, 5) {
		t.Fatal("ctrl+u not handled")
	}
	if c.Pos() != 7 {
		t.Errorf("pos = %d, want 7", c.Pos())
	}
	if c.HandleKey("x", 10, 5) {
		t.Error("x should not be handled")
	}
}

func TestReset(t *testing.T) {
	c := New(2)
	c.pos = 5
	c.offset = 3
	c.Reset()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("pos=%d offset=%d, want 0/0", c.Pos(), c.Offset())
	}
}
