// Package multiline infers whether a text field currently spans more than
// one visual line, using only height measurements of the field.
//
// The detector binds to a Surface, calibrates a single-line baseline from
// the first measurement after a reset, and applies a hysteresis band so
// small height fluctuations never flip the published state back and forth.
// Content-change notifications are debounced; paste notifications wait a
// frame plus one extra scheduling turn so the surface has committed its
// new layout before it is measured.
package multiline

import (
	"sync"
	"time"
)

// Surface is the measurement boundary of the host text field. Heights are
// in whatever unit the surface renders in (terminal rows for a textarea);
// the detector never inspects the content itself.
type Surface interface {
	// Empty reports whether the field currently holds no content.
	Empty() bool
	// ContentHeight is the full vertical extent needed to render all
	// current content, including any portion not visible.
	ContentHeight() int
	// VisibleHeight is the vertical extent of the field's viewport.
	VisibleHeight() int
}

// Default hysteresis configuration. ReleaseThreshold must exceed
// Threshold or the band degenerates and the state can oscillate; this is
// a caller contract, not something Attach validates.
const (
	DefaultThreshold        = 4
	DefaultReleaseThreshold = 12
)

const (
	// debounceDelay coalesces measurement work during steady typing.
	// Roughly one display frame: only the last keystroke of a burst
	// pays for a layout read.
	debounceDelay = 16 * time.Millisecond

	// frameDelay is how long the paste path waits before its zero-delay
	// follow-up. Pasted content may not be reflected in the surface's
	// measurable layout within the turn it was inserted.
	frameDelay = 16 * time.Millisecond
)

// Detector watches one Surface and publishes a single boolean: whether
// the field's content occupies more than one visual line.
//
// Timer callbacks run on their own goroutines, so shared state is mutex
// guarded. The "only the newest scheduled measurement runs" ordering is
// enforced by a sequence counter: every cancel bumps it, and a fired
// callback whose captured sequence no longer matches is stale and does
// nothing.
type Detector struct {
	mu sync.Mutex

	surface Surface
	gen     int // binding generation, invalidates old teardown handles

	threshold        int
	releaseThreshold int

	baseline   int
	calibrated bool
	multiline  bool

	debounce *time.Timer
	frame    *time.Timer
	seq      int // scheduling sequence, invalidates pending measurements

	onChange func(bool)
}

// New creates an unbound detector. onChange, if non-nil, is invoked
// (without the detector's lock held) each time the published state
// flips.
func New(onChange func(bool)) *Detector {
	return &Detector{
		threshold:        DefaultThreshold,
		releaseThreshold: DefaultReleaseThreshold,
		onChange:         onChange,
	}
}

// Attach binds the detector to a surface and evaluates it once
// synchronously, so content present before any event fires is detected.
// Any previous binding is torn down first: its pending measurements are
// canceled and its teardown handle invalidated.
//
// Thresholds at or below zero fall back to the package defaults.
// releaseThreshold must exceed threshold for a sane hysteresis band;
// the detector does not reorder or reject the caller's numbers.
//
// The returned release func detaches the surface. Calling it more than
// once, or after a newer Attach, is a no-op.
func (d *Detector) Attach(surface Surface, threshold, releaseThreshold int) func() {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if releaseThreshold <= 0 {
		releaseThreshold = DefaultReleaseThreshold
	}

	d.mu.Lock()
	d.cancelPendingLocked()
	d.gen++
	gen := d.gen
	d.surface = surface
	d.threshold = threshold
	d.releaseThreshold = releaseThreshold
	d.baseline = 0
	d.calibrated = false
	changed, state := d.evaluateLocked()
	d.mu.Unlock()

	d.notify(changed, state)

	return func() {
		d.mu.Lock()
		if d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.detachLocked()
		d.mu.Unlock()
	}
}

// Detach unbinds the current surface and cancels pending measurements.
// Safe to call when already unbound.
func (d *Detector) Detach() {
	d.mu.Lock()
	d.detachLocked()
	d.mu.Unlock()
}

func (d *Detector) detachLocked() {
	d.cancelPendingLocked()
	d.gen++
	d.surface = nil
}

// IsMultiline returns the published state.
func (d *Detector) IsMultiline() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.multiline
}

// Baseline returns the calibrated single-line content height, and false
// when no baseline is established (empty content or never measured).
func (d *Detector) Baseline() (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.baseline, d.calibrated
}

// ContentChanged routes a content-change notification. Paste-originated
// changes take the frame-aligned path and preempt any pending debounced
// measurement; everything else is debounced.
func (d *Detector) ContentChanged(pasted bool) {
	if pasted {
		d.PasteOccurred()
		return
	}

	d.mu.Lock()
	if d.surface == nil {
		d.mu.Unlock()
		return
	}
	d.cancelPendingLocked()
	seq := d.seq
	d.debounce = time.AfterFunc(debounceDelay, func() {
		d.fire(seq)
	})
	d.mu.Unlock()
}

// PasteOccurred schedules a measurement on the paste path: one frame's
// delay, then a zero-delay follow-up, then evaluate. Cancels whatever is
// pending on either path.
func (d *Detector) PasteOccurred() {
	d.mu.Lock()
	if d.surface == nil {
		d.mu.Unlock()
		return
	}
	d.cancelPendingLocked()
	seq := d.seq
	d.frame = time.AfterFunc(frameDelay, func() {
		d.mu.Lock()
		if d.seq != seq || d.surface == nil {
			d.mu.Unlock()
			return
		}
		// Same logical task, so it keeps its sequence number.
		d.frame = time.AfterFunc(0, func() {
			d.fire(seq)
		})
		d.mu.Unlock()
	})
	d.mu.Unlock()
}

// fire runs a scheduled measurement if it is still the newest one.
func (d *Detector) fire(seq int) {
	d.mu.Lock()
	if d.seq != seq || d.surface == nil {
		d.mu.Unlock()
		return
	}
	changed, state := d.evaluateLocked()
	d.mu.Unlock()
	d.notify(changed, state)
}

// Evaluate measures the surface and updates the published state
// synchronously. Redundant calls are safe. Unbound detectors treat this
// as nothing to do.
func (d *Detector) Evaluate() {
	d.mu.Lock()
	changed, state := d.evaluateLocked()
	d.mu.Unlock()
	d.notify(changed, state)
}

// evaluateLocked is the measurement/calibration step. It returns whether
// the published state flipped and its current value.
func (d *Detector) evaluateLocked() (changed, state bool) {
	if d.surface == nil {
		return false, d.multiline
	}

	// Empty content is unconditionally single-line and un-calibrated.
	if d.surface.Empty() {
		d.baseline = 0
		d.calibrated = false
		if d.multiline {
			d.multiline = false
			return true, false
		}
		return false, false
	}

	content := d.surface.ContentHeight()
	visible := d.surface.VisibleHeight()

	if !d.calibrated {
		if content > visible+d.threshold {
			// Content already overflows at calibration time (bulk
			// paste before any baseline existed). Keep the excess as
			// measured overflow instead of mistaking it for the
			// single-line reference.
			d.baseline = visible
		} else {
			d.baseline = content
		}
		d.calibrated = true
	}

	overflow := content - d.baseline

	switch {
	case overflow > d.threshold && !d.multiline:
		d.multiline = true
		return true, true
	case overflow < -d.releaseThreshold && d.multiline:
		// The field shrank back; the smaller height becomes the new
		// single-line reference so future growth is measured against
		// the current layout, not a stale one.
		d.multiline = false
		d.baseline = content
		return true, false
	}
	return false, d.multiline
}

// cancelPendingLocked stops both scheduled paths and invalidates any
// callback already in flight. Idempotent: stopping a fired or stopped
// timer is a no-op, and the sequence bump catches the rest.
func (d *Detector) cancelPendingLocked() {
	if d.debounce != nil {
		d.debounce.Stop()
		d.debounce = nil
	}
	if d.frame != nil {
		d.frame.Stop()
		d.frame = nil
	}
	d.seq++
}

func (d *Detector) notify(changed, state bool) {
	if changed && d.onChange != nil {
		d.onChange(state)
	}
}
