package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mrivaux/sift/internal/filter"
)

// Session is the state restored on the next launch: which dataset was
// open and the filter rows that were active.
type Session struct {
	DatasetPath string
	Filters     []filter.Filter
}

// filterRecord is the JSON shape of one persisted filter. The operator
// is stored by its stable name so enum reordering never corrupts saved
// state.
type filterRecord struct {
	Column  string       `json:"column"`
	Op      string       `json:"op"`
	Value   filter.Value `json:"value"`
	Enabled bool         `json:"enabled"`
}

func encodeFilters(filters []filter.Filter) (string, error) {
	records := make([]filterRecord, len(filters))
	for i, f := range filters {
		records[i] = filterRecord{
			Column:  f.Column,
			Op:      f.Op.String(),
			Value:   f.Value,
			Enabled: f.Enabled,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeFilters(data string) ([]filter.Filter, error) {
	var records []filterRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	filters := make([]filter.Filter, 0, len(records))
	for _, r := range records {
		op, ok := filter.ParseOperator(r.Op)
		if !ok {
			return nil, fmt.Errorf("store: unknown operator %q in session", r.Op)
		}
		filters = append(filters, filter.Filter{
			Column:  r.Column,
			Op:      op,
			Value:   r.Value,
			Enabled: r.Enabled,
		})
	}
	return filters, nil
}

func getSession(db *sql.DB) (*Session, error) {
	row := db.QueryRow(`SELECT dataset_path, filters FROM session_state WHERE id = 1`)

	var s Session
	var encoded string
	err := row.Scan(&s.DatasetPath, &encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}

	s.Filters, err = decodeFilters(encoded)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	encoded, err := encodeFilters(s.Filters)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO session_state (id, dataset_path, filters)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dataset_path = excluded.dataset_path,
			filters = excluded.filters
	`, s.DatasetPath, encoded)
	return err
}
