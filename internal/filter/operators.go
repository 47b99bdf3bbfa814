package filter

import "github.com/mrivaux/sift/internal/dataset"

// Operator identifies a filter comparison.
type Operator int

const (
	OpContains Operator = iota
	OpNotContains
	OpEquals
	OpNotEquals
	OpStartsWith
	OpEndsWith
	OpIsEmpty
	OpIsNotEmpty
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpBetween
	OpIsTrue
	OpIsFalse
	OpBefore
	OpAfter
	OpOn
	OpIn
	OpNotIn
)

// opNames are the stable identifiers used for persistence.
var opNames = map[Operator]string{
	OpContains:    "contains",
	OpNotContains: "not_contains",
	OpEquals:      "eq",
	OpNotEquals:   "neq",
	OpStartsWith:  "starts_with",
	OpEndsWith:    "ends_with",
	OpIsEmpty:     "is_empty",
	OpIsNotEmpty:  "is_not_empty",
	OpGreater:     "gt",
	OpGreaterEq:   "gte",
	OpLess:        "lt",
	OpLessEq:      "lte",
	OpBetween:     "between",
	OpIsTrue:      "is_true",
	OpIsFalse:     "is_false",
	OpBefore:      "before",
	OpAfter:       "after",
	OpOn:          "on",
	OpIn:          "in",
	OpNotIn:       "not_in",
}

var opLabels = map[Operator]string{
	OpContains:    "contains",
	OpNotContains: "does not contain",
	OpEquals:      "equals",
	OpNotEquals:   "does not equal",
	OpStartsWith:  "starts with",
	OpEndsWith:    "ends with",
	OpIsEmpty:     "is empty",
	OpIsNotEmpty:  "is not empty",
	OpGreater:     "greater than",
	OpGreaterEq:   "at least",
	OpLess:        "less than",
	OpLessEq:      "at most",
	OpBetween:     "between",
	OpIsTrue:      "is true",
	OpIsFalse:     "is false",
	OpBefore:      "before",
	OpAfter:       "after",
	OpOn:          "on",
	OpIn:          "is any of",
	OpNotIn:       "is none of",
}

// String returns the operator's stable identifier.
func (op Operator) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

// Label returns the human-readable form shown in the operator selector.
func (op Operator) Label() string {
	if label, ok := opLabels[op]; ok {
		return label
	}
	return op.String()
}

// ParseOperator resolves a stable identifier back to an Operator.
func ParseOperator(name string) (Operator, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

// NeedsValue reports whether the operator requires an operand.
func (op Operator) NeedsValue() bool {
	switch op {
	case OpIsEmpty, OpIsNotEmpty, OpIsTrue, OpIsFalse:
		return false
	}
	return true
}

// OperatorsFor returns the operators applicable to a column type, in
// selector display order.
func OperatorsFor(t dataset.ColumnType) []Operator {
	switch t {
	case dataset.Number:
		return []Operator{OpEquals, OpNotEquals, OpGreater, OpGreaterEq, OpLess, OpLessEq, OpBetween}
	case dataset.Bool:
		return []Operator{OpIsTrue, OpIsFalse}
	case dataset.Date:
		return []Operator{OpOn, OpBefore, OpAfter, OpBetween}
	case dataset.Enum:
		return []Operator{OpIn, OpNotIn, OpIsEmpty, OpIsNotEmpty}
	default:
		return []Operator{OpContains, OpNotContains, OpEquals, OpNotEquals, OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty}
	}
}
