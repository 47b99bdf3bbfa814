package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrivaux/sift/internal/filter"
)

// FilterSet is a named collection of filters saved for one dataset.
type FilterSet struct {
	ID        int64
	Name      string
	Dataset   string
	CreatedAt time.Time
	Filters   []filter.Filter
}

// SaveSet stores a named filter set for a dataset, replacing any
// existing set with the same name.
func (m *Manager) SaveSet(name, dataset string, filters []filter.Filter) (int64, error) {
	var id int64
	err := m.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM filter_sets WHERE dataset = ? AND name = ?`, dataset, name)
		if err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO filter_sets (name, dataset, created_at) VALUES (?, ?, ?)
		`, name, dataset, time.Now().Unix())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for pos, f := range filters {
			value, err := json.Marshal(f.Value)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`
				INSERT INTO set_filters (set_id, position, column_name, op, value, enabled)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, pos, f.Column, f.Op.String(), string(value), boolInt(f.Enabled))
			if err != nil {
				return err
			}
		}
		return nil
	})
	return id, err
}

// ListSets returns the sets saved for a dataset, newest first, without
// their filters loaded.
func (m *Manager) ListSets(dataset string) ([]FilterSet, error) {
	rows, err := m.db.Query(`
		SELECT id, name, dataset, created_at
		FROM filter_sets WHERE dataset = ?
		ORDER BY created_at DESC, id DESC
	`, dataset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []FilterSet
	for rows.Next() {
		var s FilterSet
		var createdAt int64
		if err := rows.Scan(&s.ID, &s.Name, &s.Dataset, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt = time.Unix(createdAt, 0)
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// LoadSet returns a set with its filters, ordered by position.
func (m *Manager) LoadSet(id int64) (*FilterSet, error) {
	row := m.db.QueryRow(`
		SELECT id, name, dataset, created_at FROM filter_sets WHERE id = ?
	`, id)

	var s FilterSet
	var createdAt int64
	if err := row.Scan(&s.ID, &s.Name, &s.Dataset, &createdAt); err != nil {
		return nil, err
	}
	s.CreatedAt = time.Unix(createdAt, 0)

	rows, err := m.db.Query(`
		SELECT column_name, op, value, enabled
		FROM set_filters WHERE set_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var column, opName, value string
		var enabled int
		if err := rows.Scan(&column, &opName, &value, &enabled); err != nil {
			return nil, err
		}
		op, ok := filter.ParseOperator(opName)
		if !ok {
			return nil, fmt.Errorf("store: unknown operator %q in set %d", opName, id)
		}
		f := filter.Filter{Column: column, Op: op, Enabled: enabled != 0}
		if err := json.Unmarshal([]byte(value), &f.Value); err != nil {
			return nil, err
		}
		s.Filters = append(s.Filters, f)
	}
	return &s, rows.Err()
}

// DeleteSet removes a set and its filters.
func (m *Manager) DeleteSet(id int64) error {
	_, err := m.db.Exec(`DELETE FROM filter_sets WHERE id = ?`, id)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
