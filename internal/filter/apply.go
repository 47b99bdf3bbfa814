package filter

import (
	"strings"

	"github.com/mrivaux/sift/internal/dataset"
)

// Apply evaluates the filters conjunctively against the table and
// returns the indices of matching rows. Disabled and incomplete filters
// are skipped.
func Apply(t *dataset.Table, filters []Filter) []int {
	active := make([]Filter, 0, len(filters))
	cols := make([]int, 0, len(filters))
	types := make([]dataset.ColumnType, 0, len(filters))
	for _, f := range filters {
		if !f.Enabled {
			continue
		}
		idx := t.ColumnIndex(f.Column)
		if idx < 0 || !f.Complete(t.Columns[idx].Type) {
			continue
		}
		active = append(active, f)
		cols = append(cols, idx)
		types = append(types, t.Columns[idx].Type)
	}

	matched := make([]int, 0, len(t.Rows))
	for i, row := range t.Rows {
		ok := true
		for j, f := range active {
			var cell string
			if cols[j] < len(row) {
				cell = row[cols[j]]
			}
			if !f.matches(cell, types[j]) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, i)
		}
	}
	return matched
}

// matches evaluates the filter against a single cell. Cells that fail
// to parse for typed operators do not match; the next edit corrects the
// filter, not the data.
func (f Filter) matches(cell string, colType dataset.ColumnType) bool {
	switch f.Op {
	case OpContains:
		return containsFold(cell, f.Value.Text)
	case OpNotContains:
		return !containsFold(cell, f.Value.Text)
	case OpEquals, OpNotEquals:
		if colType == dataset.Number {
			n, ok := dataset.ParseNumber(cell)
			if !ok {
				return false
			}
			return (n == f.Value.Number) == (f.Op == OpEquals)
		}
		return strings.EqualFold(cell, f.Value.Text) == (f.Op == OpEquals)
	case OpStartsWith:
		return hasPrefixFold(cell, f.Value.Text)
	case OpEndsWith:
		return hasSuffixFold(cell, f.Value.Text)
	case OpIsEmpty:
		return cell == ""
	case OpIsNotEmpty:
		return cell != ""

	case OpGreater, OpGreaterEq, OpLess, OpLessEq:
		n, ok := dataset.ParseNumber(cell)
		if !ok {
			return false
		}
		switch f.Op {
		case OpGreater:
			return n > f.Value.Number
		case OpGreaterEq:
			return n >= f.Value.Number
		case OpLess:
			return n < f.Value.Number
		default:
			return n <= f.Value.Number
		}

	case OpBetween:
		if f.betweenIsDate() {
			d, ok := dataset.ParseDate(cell)
			if !ok {
				return false
			}
			return !d.Before(f.Value.From) && !d.After(f.Value.To)
		}
		n, ok := dataset.ParseNumber(cell)
		if !ok {
			return false
		}
		return n >= f.Value.Number && n <= f.Value.NumberTo

	case OpIsTrue, OpIsFalse:
		b, ok := dataset.ParseBool(cell)
		if !ok {
			return false
		}
		return b == (f.Op == OpIsTrue)

	case OpBefore, OpAfter, OpOn:
		d, ok := dataset.ParseDate(cell)
		if !ok {
			return false
		}
		switch f.Op {
		case OpBefore:
			return d.Before(f.Value.From)
		case OpAfter:
			return d.After(f.Value.From)
		default:
			return d.Equal(f.Value.From)
		}

	case OpIn, OpNotIn:
		found := false
		for _, v := range f.Value.Selected {
			if v == cell {
				found = true
				break
			}
		}
		return found == (f.Op == OpIn)
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

func hasSuffixFold(s, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
}
