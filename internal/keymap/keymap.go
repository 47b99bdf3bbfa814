// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionHelp        Action = "help"

	// Filter row actions
	ActionAddFilter    Action = "add_filter"
	ActionDeleteFilter Action = "delete_filter"
	ActionEditFilter   Action = "edit_filter"
	ActionToggleFilter Action = "toggle_filter"

	// Filter set actions
	ActionSaveSet Action = "save_set"
	ActionLoadSet Action = "load_set"

	// Dataset actions
	ActionReloadDataset Action = "reload_dataset"
)

// Binding describes a single key binding for documentation and lookup.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "filters", "results"
}

// All contains all key bindings for resolution and help generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit", "global"},
	{[]string{"tab"}, ActionSwitchFocus, "Switch focus between filters and results", "global"},
	{[]string{"?"}, ActionHelp, "Toggle help", "global"},
	{[]string{"r"}, ActionReloadDataset, "Reload dataset from disk", "global"},

	// Filter rows
	{[]string{"a"}, ActionAddFilter, "Add filter row", "filters"},
	{[]string{"d", "delete"}, ActionDeleteFilter, "Delete filter row", "filters"},
	{[]string{"enter", "e"}, ActionEditFilter, "Edit filter row", "filters"},
	{[]string{" "}, ActionToggleFilter, "Enable/disable filter row", "filters"},

	// Filter sets
	{[]string{"s"}, ActionSaveSet, "Save filters as named set", "filters"},
	{[]string{"l"}, ActionLoadSet, "Load a saved filter set", "filters"},
}
