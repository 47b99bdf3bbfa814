package multiline

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 2 * time.Millisecond

	// settle is long enough for any pending 16ms timer to have fired.
	settle = 100 * time.Millisecond
)

// fakeSurface is a Surface with settable heights. Reads are counted so
// tests can verify how many scheduled measurements actually ran; timer
// callbacks read from their own goroutines, hence the mutex.
type fakeSurface struct {
	mu      sync.Mutex
	empty   bool
	content int
	visible int
	reads   int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{empty: true}
}

func (s *fakeSurface) set(content, visible int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empty = false
	s.content = content
	s.visible = visible
}

func (s *fakeSurface) setEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empty = true
}

func (s *fakeSurface) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.empty
}

func (s *fakeSurface) ContentHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.content
}

func (s *fakeSurface) VisibleHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *fakeSurface) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// transitions records onChange notifications.
type transitions struct {
	mu     sync.Mutex
	states []bool
}

func (r *transitions) record(state bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *transitions) all() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.states...)
}

func TestEvaluate_CalibratesOnFirstMeasurement(t *testing.T) {
	s := newFakeSurface()
	s.set(20, 20)
	d := New(nil)
	d.Attach(s, 4, 12)

	baseline, ok := d.Baseline()
	if !ok {
		t.Fatal("expected calibrated baseline after first evaluate")
	}
	if baseline != 20 {
		t.Errorf("baseline = %d, want 20", baseline)
	}
	if d.IsMultiline() {
		t.Error("single-line content should not be multiline")
	}
}

func TestEvaluate_GrowShrinkScenario(t *testing.T) {
	rec := &transitions{}
	s := newFakeSurface()
	d := New(rec.record)
	d.Attach(s, 4, 12)

	// Empty start: no baseline, not multiline.
	if _, ok := d.Baseline(); ok {
		t.Fatal("empty content must not calibrate a baseline")
	}

	// Typing: calibrates to 20, overflow 0.
	s.set(20, 20)
	d.Evaluate()
	if d.IsMultiline() {
		t.Error("overflow 0 should stay single-line")
	}

	// Grows to 26: overflow 6 > 4, triggers.
	s.set(26, 20)
	d.Evaluate()
	if !d.IsMultiline() {
		t.Error("overflow 6 should trigger multiline")
	}

	// Shrinks to 15: overflow -5, inside the band, holds.
	s.set(15, 20)
	d.Evaluate()
	if !d.IsMultiline() {
		t.Error("overflow -5 should hold multiline (hysteresis)")
	}

	// Shrinks to 7: overflow -13 < -12, releases and recalibrates.
	s.set(7, 20)
	d.Evaluate()
	if d.IsMultiline() {
		t.Error("overflow -13 should release multiline")
	}
	baseline, ok := d.Baseline()
	if !ok || baseline != 7 {
		t.Errorf("baseline = %d (calibrated=%v), want 7 after release", baseline, ok)
	}

	// Same content again: overflow 0, nothing changes.
	d.Evaluate()
	if d.IsMultiline() {
		t.Error("overflow 0 after recalibration should stay single-line")
	}

	got := rec.all()
	want := []bool{true, false}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", got, want)
		}
	}
}

func TestEvaluate_PasteOverflowCalibration(t *testing.T) {
	s := newFakeSurface()
	d := New(nil)
	d.Attach(s, 4, 12)

	// Paste into an empty field before any baseline exists. Content
	// already overflows the viewport, so the viewport height becomes
	// the baseline and the excess counts as overflow.
	s.set(50, 20)
	d.Evaluate()

	baseline, ok := d.Baseline()
	if !ok || baseline != 20 {
		t.Errorf("baseline = %d (calibrated=%v), want 20", baseline, ok)
	}
	if !d.IsMultiline() {
		t.Error("overflow 30 should trigger multiline immediately")
	}
}

func TestEvaluate_EmptyResets(t *testing.T) {
	s := newFakeSurface()
	s.set(50, 20)
	d := New(nil)
	d.Attach(s, 4, 12)
	if !d.IsMultiline() {
		t.Fatal("setup: expected multiline")
	}

	s.setEmpty()
	d.Evaluate()

	if d.IsMultiline() {
		t.Error("empty content must reset multiline")
	}
	if _, ok := d.Baseline(); ok {
		t.Error("empty content must clear the baseline")
	}
}

func TestEvaluate_DeadBandStable(t *testing.T) {
	rec := &transitions{}
	s := newFakeSurface()
	s.set(20, 20)
	d := New(rec.record)
	d.Attach(s, 4, 12)

	// Overflow oscillating strictly between -12 and 4: no flicker.
	for _, content := range []int{23, 17, 24, 16, 22, 20} {
		s.set(content, 20)
		d.Evaluate()
	}
	if len(rec.all()) != 0 {
		t.Fatalf("dead-band oscillation produced transitions: %v", rec.all())
	}

	// Trigger, then oscillate inside the band again: still stable.
	s.set(26, 20)
	d.Evaluate()
	for _, content := range []int{23, 15, 24, 9} {
		s.set(content, 20)
		d.Evaluate()
	}
	got := rec.all()
	if len(got) != 1 || !got[0] {
		t.Fatalf("transitions = %v, want exactly one trigger", got)
	}
}

func TestAttach_EvaluatesImmediately(t *testing.T) {
	rec := &transitions{}
	s := newFakeSurface()
	s.set(30, 20)

	d := New(rec.record)
	d.Attach(s, 4, 12)

	// Content present before any event fires is still detected.
	if !d.IsMultiline() {
		t.Error("attach must evaluate synchronously")
	}
	got := rec.all()
	if len(got) != 1 || !got[0] {
		t.Errorf("transitions = %v, want [true]", got)
	}
}

func TestAttach_ZeroThresholdsUseDefaults(t *testing.T) {
	s := newFakeSurface()
	s.set(24, 20)
	d := New(nil)
	d.Attach(s, 0, 0)

	// Default threshold is 4; overflow must exceed it.
	s.set(28, 20)
	d.Evaluate()
	if d.IsMultiline() {
		t.Error("overflow 4 should not exceed default threshold 4")
	}
	s.set(29, 20)
	d.Evaluate()
	if !d.IsMultiline() {
		t.Error("overflow 5 should exceed default threshold 4")
	}
}

func TestAttach_RebindResetsCalibration(t *testing.T) {
	first := newFakeSurface()
	first.set(20, 20)
	d := New(nil)
	d.Attach(first, 4, 12)

	second := newFakeSurface()
	second.set(10, 10)
	d.Attach(second, 4, 12)

	baseline, ok := d.Baseline()
	if !ok || baseline != 10 {
		t.Errorf("baseline = %d (calibrated=%v), want fresh calibration to 10", baseline, ok)
	}
}

func TestAttach_StaleTeardownIsNoop(t *testing.T) {
	first := newFakeSurface()
	first.set(20, 20)
	d := New(nil)
	release1 := d.Attach(first, 4, 12)

	second := newFakeSurface()
	second.set(20, 20)
	d.Attach(second, 4, 12)

	// The old handle must not tear down the new binding.
	release1()
	second.set(26, 20)
	d.Evaluate()
	if !d.IsMultiline() {
		t.Error("stale teardown handle detached the active surface")
	}
}

func TestDebounce_EventuallyMeasures(t *testing.T) {
	s := newFakeSurface()
	d := New(nil)
	d.Attach(s, 4, 12)

	s.set(50, 20)
	d.ContentChanged(false)

	require.Eventually(t, d.IsMultiline, waitFor, tick,
		"debounced measurement never ran")
}

func TestDebounce_CoalescesBursts(t *testing.T) {
	s := newFakeSurface()
	d := New(nil)
	d.Attach(s, 4, 12) // empty: the initial evaluate reads no heights

	s.set(50, 20)
	for i := 0; i < 5; i++ {
		d.ContentChanged(false)
	}

	require.Eventually(t, d.IsMultiline, waitFor, tick)
	time.Sleep(settle)
	assert.Equal(t, 1, s.readCount(),
		"a keystroke burst should result in a single measurement")
}

func TestPaste_PreemptsDebounce(t *testing.T) {
	s := newFakeSurface()
	d := New(nil)
	d.Attach(s, 4, 12)

	s.set(50, 20)
	d.ContentChanged(false)
	d.PasteOccurred()

	require.Eventually(t, d.IsMultiline, waitFor, tick)
	time.Sleep(settle)
	assert.Equal(t, 1, s.readCount(),
		"the pending debounced task must not run once paste preempts it")
}

func TestPasteTaggedChange_TakesPastePath(t *testing.T) {
	s := newFakeSurface()
	d := New(nil)
	d.Attach(s, 4, 12)

	s.set(50, 20)
	d.ContentChanged(false)
	d.ContentChanged(true) // paste-tagged change preempts the debounce

	require.Eventually(t, d.IsMultiline, waitFor, tick)
	time.Sleep(settle)
	assert.Equal(t, 1, s.readCount())
}

func TestDetach_CancelsPending(t *testing.T) {
	s := newFakeSurface()
	d := New(nil)
	d.Attach(s, 4, 12)

	s.set(50, 20)
	d.ContentChanged(false)
	d.PasteOccurred()
	d.Detach()

	time.Sleep(settle)
	assert.Zero(t, s.readCount(), "canceled measurements must not touch the surface")
	assert.False(t, d.IsMultiline())

	// Events on an unbound detector are silent no-ops.
	d.ContentChanged(false)
	d.PasteOccurred()
	d.Evaluate()
	time.Sleep(settle)
	assert.Zero(t, s.readCount())
}

func TestDetach_Idempotent(t *testing.T) {
	s := newFakeSurface()
	s.set(20, 20)
	d := New(nil)
	release := d.Attach(s, 4, 12)

	release()
	release()
	d.Detach()
}
