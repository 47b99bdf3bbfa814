// Package filter holds the filter model for the builder UI: typed
// operators per column kind, operand values, and row matching.
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/mrivaux/sift/internal/dataset"
)

// Value is a filter operand. Only the fields relevant to the operator
// are meaningful; the struct is kept flat so it serializes cleanly for
// persistence.
type Value struct {
	Text     string    `json:"text,omitempty"`
	Number   float64   `json:"number,omitempty"`
	NumberTo float64   `json:"number_to,omitempty"`
	From     time.Time `json:"from,omitzero"`
	To       time.Time `json:"to,omitzero"`
	Selected []string  `json:"selected,omitempty"`
}

// Filter is one row of the filter builder.
type Filter struct {
	Column  string   `json:"column"`
	Op      Operator `json:"-"`
	Value   Value    `json:"value"`
	Enabled bool     `json:"enabled"`
}

// Complete reports whether the filter has enough operand to evaluate
// against a column of the given type. Incomplete filters are skipped by
// Apply rather than failing rows.
func (f Filter) Complete(colType dataset.ColumnType) bool {
	if !f.Op.NeedsValue() {
		return true
	}
	switch f.Op {
	case OpEquals, OpNotEquals:
		if colType == dataset.Number {
			return true // zero is a legitimate operand
		}
		return f.Value.Text != ""
	case OpContains, OpNotContains, OpStartsWith, OpEndsWith:
		return f.Value.Text != ""
	case OpGreater, OpGreaterEq, OpLess, OpLessEq:
		return true // zero is a legitimate bound
	case OpBetween:
		return !f.betweenIsDate() || (!f.Value.From.IsZero() && !f.Value.To.IsZero())
	case OpBefore, OpAfter, OpOn:
		return !f.Value.From.IsZero()
	case OpIn, OpNotIn:
		return len(f.Value.Selected) > 0
	}
	return false
}

// betweenIsDate distinguishes the date form of OpBetween from the
// numeric one by which operand fields are populated.
func (f Filter) betweenIsDate() bool {
	return !f.Value.From.IsZero() || !f.Value.To.IsZero()
}

// Summary renders a short human-readable description of the filter for
// the compact row layout, e.g. `status is any of [open, stale]`.
func (f Filter) Summary() string {
	var b strings.Builder
	b.WriteString(f.Column)
	b.WriteByte(' ')
	b.WriteString(f.Op.Label())
	if !f.Op.NeedsValue() {
		return b.String()
	}
	b.WriteByte(' ')
	b.WriteString(f.operandString())
	return b.String()
}

func (f Filter) operandString() string {
	switch f.Op {
	case OpEquals, OpNotEquals:
		// The numeric editor commits Number and leaves Text empty.
		if f.Value.Text == "" {
			return trimFloat(f.Value.Number)
		}
		return f.Value.Text
	case OpContains, OpNotContains, OpStartsWith, OpEndsWith:
		return f.Value.Text
	case OpGreater, OpGreaterEq, OpLess, OpLessEq:
		return trimFloat(f.Value.Number)
	case OpBetween:
		if f.betweenIsDate() {
			return f.Value.From.Format("2006-01-02") + " and " + f.Value.To.Format("2006-01-02")
		}
		return trimFloat(f.Value.Number) + " and " + trimFloat(f.Value.NumberTo)
	case OpBefore, OpAfter, OpOn:
		return f.Value.From.Format("2006-01-02")
	case OpIn, OpNotIn:
		return "[" + strings.Join(f.Value.Selected, ", ") + "]"
	}
	return ""
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
