package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrivaux/sift/internal/filter"
	"github.com/mrivaux/sift/internal/icons"
	"github.com/mrivaux/sift/internal/ui/action"
	"github.com/mrivaux/sift/internal/ui/confirm"
	"github.com/mrivaux/sift/internal/ui/filterpanel"
	"github.com/mrivaux/sift/internal/ui/prompt"
	"github.com/mrivaux/sift/internal/ui/selector"
	"github.com/mrivaux/sift/internal/ui/setpicker"
	"github.com/mrivaux/sift/internal/ui/valueeditor"
)

// handleAction routes component actions.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case filterpanel.EditRequested:
		return m.startEdit(a.Index)

	case filterpanel.DeleteRequested:
		f := m.panel.Filters()[a.Index]
		m.confirm.Show("Delete filter", f.Summary(),
			deleteRowContext{index: a.Index}, m.popupWidth(), m.popupHeight())
		m.popup = popupConfirm
		return m, nil

	case filterpanel.Toggled:
		m.applyFilters()
		m.persistSession()
		return m, nil

	case selector.Result:
		return m.handleSelector(a)

	case valueeditor.Result:
		return m.handleValueEdit(a)

	case prompt.Result:
		m.popup = popupNone
		m.prompt.Reset()
		if a.Canceled {
			return m, nil
		}
		return m, m.saveSetCmd(a.Text)

	case setpicker.Result:
		return m.handleSetPicker(a)

	case confirm.Result:
		return m.handleConfirm(a)
	}
	return m, nil
}

// startEdit opens the column selector for a new or existing row.
func (m Model) startEdit(index int) (tea.Model, tea.Cmd) {
	if m.table == nil {
		cmd := m.setStatus("load a dataset first")
		return m, cmd
	}

	edit := &editState{index: index, isNew: index < 0, enabled: true}
	preselect := ""
	if !edit.isNew {
		original := m.panel.Filters()[index]
		edit.original = original
		edit.op = original.Op
		edit.initial = original.Value
		edit.enabled = original.Enabled
		preselect = original.Column
	}
	m.edit = edit

	items := make([]selector.Item, 0, len(m.table.Columns))
	for _, col := range m.table.Columns {
		items = append(items, selector.Item{
			ID:     col.Name,
			Label:  col.Name,
			Detail: col.Type.String(),
		})
	}
	m.selector.Start("Column", items, preselect, stageColumn, m.popupWidth(), m.popupHeight())
	m.popup = popupColumn
	return m, m.selector.Init()
}

// handleSelector advances the edit flow through its two selector stages.
func (m Model) handleSelector(result selector.Result) (tea.Model, tea.Cmd) {
	stage, ok := result.Context.(editStage)
	if !ok || m.edit == nil {
		m.popup = popupNone
		return m, nil
	}
	if result.Canceled {
		return m.abortEdit()
	}

	switch stage {
	case stageColumn:
		col, ok := m.table.Column(result.Item.ID)
		if !ok {
			return m.abortEdit()
		}
		if !m.edit.isNew && col.Name != m.edit.original.Column {
			// Different column invalidates the old operand.
			m.edit.op = 0
			m.edit.initial = filter.Value{}
		}
		m.edit.column = col

		ops := filter.OperatorsFor(col.Type)
		items := make([]selector.Item, 0, len(ops))
		for _, op := range ops {
			items = append(items, selector.Item{
				ID:     op.String(),
				Label:  op.Label(),
				Symbol: icons.Operator(op),
			})
		}
		preselect := ""
		if !m.edit.isNew && col.Name == m.edit.original.Column {
			preselect = m.edit.original.Op.String()
		}
		m.selector.Start("Operator", items, preselect, stageOperator, m.popupWidth(), m.popupHeight())
		m.popup = popupOperator
		return m, nil

	case stageOperator:
		op, ok := filter.ParseOperator(result.Item.ID)
		if !ok {
			return m.abortEdit()
		}
		m.edit.op = op
		m.popup = popupNone
		m.selector.Reset()

		if !op.NeedsValue() {
			return m.finishEdit(filter.Value{})
		}
		return m.startValueEdit()
	}
	return m, nil
}

// startValueEdit places the row in the panel and opens the inline editor.
func (m Model) startValueEdit() (tea.Model, tea.Cmd) {
	staged := filter.Filter{
		Column:  m.edit.column.Name,
		Op:      m.edit.op,
		Value:   m.edit.initial,
		Enabled: m.edit.enabled,
	}
	if m.edit.isNew {
		m.edit.index = m.panel.Append(staged)
	} else {
		m.panel.UpdateAt(m.edit.index, staged)
	}

	m.editor.Start(m.edit.column, m.edit.op, m.edit.initial, nil, m.editorWidth())

	cmds := []tea.Cmd{m.editor.Init()}
	if !m.mlArmed {
		m.mlArmed = true
		cmds = append(cmds, m.waitForMultiline())
	}
	return m, tea.Batch(cmds...)
}

// handleValueEdit commits or rolls back the inline edit.
func (m Model) handleValueEdit(result valueeditor.Result) (tea.Model, tea.Cmd) {
	if m.edit == nil {
		return m, nil
	}
	if result.Canceled {
		if m.edit.isNew {
			m.panel.RemoveAt(m.edit.index)
		} else {
			m.panel.UpdateAt(m.edit.index, m.edit.original)
		}
		m.panel.ClearEditing()
		m.edit = nil
		return m, nil
	}
	return m.finishEdit(result.Value)
}

// finishEdit writes the assembled row and re-runs the filters.
func (m Model) finishEdit(value filter.Value) (tea.Model, tea.Cmd) {
	f := filter.Filter{
		Column:  m.edit.column.Name,
		Op:      m.edit.op,
		Value:   value,
		Enabled: m.edit.enabled,
	}
	if m.edit.index >= 0 && m.edit.index < len(m.panel.Filters()) {
		m.panel.UpdateAt(m.edit.index, f)
	} else {
		m.panel.Append(f)
	}
	m.panel.ClearEditing()
	m.edit = nil

	m.applyFilters()
	m.persistSession()
	return m, nil
}

// abortEdit unwinds a partially assembled row.
func (m Model) abortEdit() (tea.Model, tea.Cmd) {
	m.popup = popupNone
	m.selector.Reset()
	m.panel.ClearEditing()
	m.edit = nil
	return m, nil
}

// startSavePrompt opens the name prompt for saving the current rows.
func (m Model) startSavePrompt() (tea.Model, tea.Cmd) {
	if m.table == nil {
		cmd := m.setStatus("load a dataset first")
		return m, cmd
	}
	if len(m.panel.Filters()) == 0 {
		cmd := m.setStatus("nothing to save")
		return m, cmd
	}
	m.prompt.Start("Save filter set", "", nil, nil, m.popupWidth(), m.popupHeight())
	m.popup = popupPrompt
	return m, m.prompt.Init()
}

func (m Model) handleSetPicker(result setpicker.Result) (tea.Model, tea.Cmd) {
	if result.Canceled {
		m.popup = popupNone
		m.picker.Reset()
		return m, nil
	}

	if result.Delete {
		m.confirm.Show("Delete filter set",
			fmt.Sprintf("Delete %q? This cannot be undone.", result.Set.Name),
			deleteSetContext{id: result.Set.ID}, m.popupWidth(), m.popupHeight())
		m.popup = popupConfirm
		return m, nil
	}

	m.popup = popupNone
	m.picker.Reset()
	m.panel.SetFilters(result.Set.Filters)
	m.applyFilters()
	m.persistSession()
	cmd := m.setStatus(fmt.Sprintf("Loaded filter set %q", result.Set.Name))
	return m, cmd
}

func (m Model) handleConfirm(result confirm.Result) (tea.Model, tea.Cmd) {
	switch ctx := result.Context.(type) {
	case deleteRowContext:
		m.popup = popupNone
		m.confirm.Reset()
		if result.Confirmed {
			m.panel.RemoveAt(ctx.index)
			m.applyFilters()
			m.persistSession()
		}
		return m, nil

	case deleteSetContext:
		m.confirm.Reset()
		if result.Confirmed {
			// deleteSetCmd re-lists and reopens the picker.
			return m, m.deleteSetCmd(ctx.id)
		}
		m.popup = popupSets
		return m, nil
	}

	m.popup = popupNone
	m.confirm.Reset()
	return m, nil
}
