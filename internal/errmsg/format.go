// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Dataset operations
	OpDatasetLoad   Op = "load dataset"
	OpDatasetReload Op = "reload dataset"

	// Filter set operations
	OpSetSave   Op = "save filter set"
	OpSetLoad   Op = "load filter set"
	OpSetList   Op = "list filter sets"
	OpSetDelete Op = "delete filter set"

	// Session operations
	OpSessionRestore Op = "restore previous session"
)

// Format returns a user-facing error message for a failed operation, or
// an empty string when err is nil.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}
