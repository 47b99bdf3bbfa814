// Package dataset loads CSV files into typed, in-memory tables.
//
// The first record is the header. Column types are inferred from the
// data so the filter builder can offer type-appropriate operators and
// editors without any user-side schema.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrEmpty is returned when a file has no header record.
var ErrEmpty = errors.New("dataset: file has no header record")

// ColumnType classifies a column for operator selection and editing.
type ColumnType int

const (
	Text ColumnType = iota
	Number
	Bool
	Date
	Enum
)

func (t ColumnType) String() string {
	switch t {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Date:
		return "date"
	case Enum:
		return "enum"
	default:
		return "text"
	}
}

// MaxEnumValues is the distinct-value ceiling for treating a text column
// as an enumeration.
const MaxEnumValues = 12

// Column describes one table column.
type Column struct {
	Name   string
	Type   ColumnType
	Values []string // distinct values, populated for Enum columns
}

// Row holds one record's cells, indexed like Columns.
type Row []string

// Table is a loaded dataset.
type Table struct {
	Name    string
	Path    string
	Columns []Column
	Rows    []Row
}

// Load reads a CSV file and infers column types.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, missing cells read as empty

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	header := records[0]
	t := &Table{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}

	t.Rows = make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i := range header {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}

	t.Columns = make([]Column, len(header))
	for i, name := range header {
		t.Columns[i] = inferColumn(strings.TrimSpace(name), t.Rows, i)
	}

	return t, nil
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	if i := t.ColumnIndex(name); i >= 0 {
		return t.Columns[i], true
	}
	return Column{}, false
}

// Cell returns the row's value for the named column.
func (t *Table) Cell(row Row, column string) string {
	if i := t.ColumnIndex(column); i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}

// inferColumn classifies a column from its non-empty cells.
func inferColumn(name string, rows []Row, idx int) Column {
	col := Column{Name: name, Type: Text}

	distinct := map[string]struct{}{}
	var nonEmpty, numbers, bools, dates int
	for _, row := range rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		cell := row[idx]
		nonEmpty++
		distinct[cell] = struct{}{}
		if _, ok := ParseNumber(cell); ok {
			numbers++
		}
		if _, ok := ParseBool(cell); ok {
			bools++
		}
		if _, ok := ParseDate(cell); ok {
			dates++
		}
	}
	if nonEmpty == 0 {
		return col
	}

	switch {
	case bools == nonEmpty:
		col.Type = Bool
	case numbers == nonEmpty:
		col.Type = Number
	case dates == nonEmpty:
		col.Type = Date
	case len(distinct) <= MaxEnumValues && len(distinct) < nonEmpty:
		col.Type = Enum
		col.Values = make([]string, 0, len(distinct))
		for v := range distinct {
			col.Values = append(col.Values, v)
		}
		sort.Strings(col.Values)
	}
	return col
}

// ParseNumber parses a cell as a number. Thousands separators are
// tolerated since exported spreadsheets often carry them.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseBool parses a cell as a boolean.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	}
	return false, false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate parses a cell as a date using a small set of common layouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}
