package valueeditor

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mrivaux/sift/internal/multiline"
)

const (
	// collapsedRows is the text editor height while the value fits one line.
	collapsedRows = 1

	// maxExpandedRows caps how tall the text editor grows once the value
	// wraps, so one long value cannot take over the panel.
	maxExpandedRows = 6

	// textCharLimit bounds value length; filter operands are short strings,
	// not documents.
	textCharLimit = 2048
)

// textSurface is the measurement snapshot the detector reads. Detector
// timer callbacks run on their own goroutines, so the snapshot carries
// its own lock instead of touching the textarea directly.
type textSurface struct {
	mu      sync.Mutex
	value   string
	width   int
	visible int
}

var _ multiline.Surface = (*textSurface)(nil)

func (s *textSurface) update(value string, width, visible int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.width = width
	s.visible = visible
}

// Empty implements multiline.Surface.
func (s *textSurface) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value == ""
}

// ContentHeight implements multiline.Surface. It measures how many rows
// the value occupies when wrapped to the editor width.
func (s *textSurface) ContentHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == "" {
		return 0
	}
	width := s.width
	if width < 1 {
		width = 1
	}
	return lipgloss.Height(ansi.Hardwrap(s.value, width, true))
}

// VisibleHeight implements multiline.Surface.
func (s *textSurface) VisibleHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// textModel hosts a textarea together with the detector that decides
// whether the value currently wraps past one row.
type textModel struct {
	area    textarea.Model
	surface *textSurface
	det     *multiline.Detector
	release func()
	events  chan bool
	width   int
	rows    int
}

func newTextModel() textModel {
	area := textarea.New()
	area.ShowLineNumbers = false
	area.CharLimit = textCharLimit
	area.Prompt = ""
	// Enter commits the value; ctrl+j inserts a literal newline.
	area.KeyMap.InsertNewline.SetKeys("ctrl+j")
	return textModel{
		area:    area,
		surface: &textSurface{},
		events:  make(chan bool, 16),
		rows:    collapsedRows,
	}
}

// start binds the detector to a fresh surface and seeds the initial value.
// Rebinding while a previous binding is live tears the old one down first.
func (t *textModel) start(initial string, width int, threshold, releaseThreshold int) {
	t.stop()

	t.width = width
	t.rows = collapsedRows
	t.area.SetWidth(width)
	t.area.SetHeight(t.rows)
	t.area.SetValue(initial)
	t.area.CursorEnd()
	t.area.Focus()

	t.surface.update(initial, width, t.rows)
	if t.det == nil {
		t.det = multiline.New(t.publish)
	}
	t.release = t.det.Attach(t.surface, threshold, releaseThreshold)
	t.syncRows()
}

// syncRows applies the detector's current verdict to the widget height.
func (t *textModel) syncRows() {
	t.setMultiline(t.multiline())
}

// stop releases the detector binding. Safe to call twice.
func (t *textModel) stop() {
	if t.release != nil {
		t.release()
		t.release = nil
	}
	t.area.Blur()
}

// publish is the detector change callback. It runs on timer goroutines,
// so it only forwards the state onto the events channel. A full channel
// drops the oldest entry; only the latest state matters.
func (t *textModel) publish(state bool) {
	for {
		select {
		case t.events <- state:
			return
		default:
			select {
			case <-t.events:
			default:
			}
		}
	}
}

// Events exposes detector transitions for the app to wait on.
func (t *textModel) Events() <-chan bool {
	return t.events
}

func (t *textModel) update(msg tea.Msg) tea.Cmd {
	pasted := false
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		pasted = keyMsg.Paste
	}

	before := t.area.Value()
	var cmd tea.Cmd
	t.area, cmd = t.area.Update(msg)
	after := t.area.Value()

	if after != before {
		t.surface.update(after, t.width, t.rows)
		if t.det != nil {
			t.det.ContentChanged(pasted)
		}
	}
	return cmd
}

// setMultiline applies a detector transition to the widget height.
func (t *textModel) setMultiline(on bool) {
	if on {
		t.rows = min(t.surface.ContentHeight(), maxExpandedRows)
		if t.rows < collapsedRows+1 {
			t.rows = collapsedRows + 1
		}
	} else {
		t.rows = collapsedRows
	}
	t.area.SetHeight(t.rows)
	t.surface.update(t.area.Value(), t.width, t.rows)
}

func (t *textModel) multiline() bool {
	return t.det != nil && t.det.IsMultiline()
}

func (t *textModel) value() string {
	return strings.TrimRight(t.area.Value(), "\n")
}

func (t *textModel) view() string {
	return t.area.View()
}
