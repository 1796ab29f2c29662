package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/multiselect/internal/logging"
	"github.com/atomicstack/multiselect/internal/logging/events"
	"github.com/atomicstack/multiselect/internal/ui/command"
	"github.com/atomicstack/multiselect/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.Type {
	case tea.KeyTab:
		m.toggleFocused()
		return nil
	case tea.KeyShiftTab:
		m.switchFocus()
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.cancel()
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.accept()
	case " ", "space":
		m.toggleFocused()
	case "delete", "backspace":
		if m.focus == focusSelected {
			m.removeSelectedAtCursor()
		}
	case "ctrl+s":
		m.selectAll()
	case "ctrl+x":
		m.clearAll()
	case "ctrl+y":
		return m.copySelection()
	case "up":
		m.moveCursor(m.list.MoveCursorUp, m.moveSelectedBy(-1))
	case "down":
		m.moveCursor(m.list.MoveCursorDown, m.moveSelectedBy(1))
	case "pgup":
		m.moveCursor(m.list.MoveCursorPageUp, m.moveSelectedBy(-m.selected.Height))
	case "pgdown":
		m.moveCursor(m.list.MoveCursorPageDown, m.moveSelectedBy(m.selected.Height))
	case "home":
		m.moveCursor(m.list.MoveCursorHome, m.moveSelectedTo(0))
	case "end":
		m.moveCursor(m.list.MoveCursorEnd, m.moveSelectedTo(m.list.SelectedCount()-1))
	}
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if m.focus == focusSelected {
		m.setFocus(focusList)
		return nil
	}
	if m.opts.ShowSearch && m.list.Filter() != "" {
		before := m.list.FilterCursorPos()
		if m.list.ClearFilter() {
			m.noteFilterCursorChange(before)
			m.afterFilterEdit()
			events.Filter.Cleared(m.list.ID)
		}
		return nil
	}
	return m.cancel()
}

func (m *Model) accept() tea.Cmd {
	m.accepted = true
	events.App.Accept(m.list.SelectedCount())
	return tea.Quit
}

func (m *Model) cancel() tea.Cmd {
	m.cancelled = true
	events.App.Cancel()
	return tea.Quit
}

// moveCursor applies listMove or selectedMove depending on the focused panel.
func (m *Model) moveCursor(listMove func() bool, selectedMove func() bool) {
	if m.focus == focusSelected {
		if selectedMove() {
			events.UI.Cursor(m.list.ID+":selected", m.selCur)
		}
		return
	}
	if listMove() {
		events.UI.Cursor(m.list.ID, m.list.Cursor)
	}
}

func (m *Model) moveSelectedBy(delta int) func() bool {
	return func() bool {
		n := m.list.SelectedCount()
		if n == 0 {
			return false
		}
		next := m.selCur + delta
		if delta == 1 || delta == -1 {
			next = (next + n) % n
		}
		return m.moveSelectedTo(next)()
	}
}

func (m *Model) moveSelectedTo(index int) func() bool {
	return func() bool {
		old := m.selCur
		m.selCur = index
		m.clampSelectedCursor()
		return old != m.selCur
	}
}

func (m *Model) clampSelectedCursor() {
	n := m.list.SelectedCount()
	if n == 0 {
		m.selCur = 0
		m.selected.Scroll = 0
		if m.focus == focusSelected {
			m.setFocus(focusList)
		}
		return
	}
	if m.selCur >= n {
		m.selCur = n - 1
	}
	if m.selCur < 0 {
		m.selCur = 0
	}
	m.selected.EnsureVisible(n, m.selCur)
}

func (m *Model) switchFocus() {
	if m.focus == focusSelected {
		m.setFocus(focusList)
		return
	}
	if !m.opts.ShowSelectedItems || m.list.SelectedCount() == 0 {
		return
	}
	m.setFocus(focusSelected)
}

func (m *Model) setFocus(f focus) {
	if m.focus == f {
		return
	}
	m.focus = f
	m.clampSelectedCursor()
	events.UI.Focus(f.String())
}

func (m *Model) toggleFocused() {
	if m.focus == focusSelected {
		m.removeSelectedAtCursor()
		return
	}
	current, ok := m.list.Current()
	if !ok {
		return
	}
	m.report("toggle", current.ID, m.list.ToggleCurrent())
}

func (m *Model) toggleAt(index int) {
	if !m.list.MoveCursorTo(index) && index != m.list.Cursor {
		return
	}
	events.UI.Cursor(m.list.ID, m.list.Cursor)
	m.toggleFocused()
}

func (m *Model) removeSelectedAtCursor() {
	m.removeSelectedAt(m.selCur)
}

func (m *Model) removeSelectedAt(index int) {
	it, ok := m.list.SelectedAt(index)
	if !ok {
		return
	}
	m.report("deselect", it.ID, m.list.Deselect(it.ID))
}

func (m *Model) selectAll() {
	if !m.opts.ShowSelectAll {
		return
	}
	m.flushFilter()
	outcome := m.list.SelectAll()
	events.Selection.All(outcome.String(), m.list.SelectedCount())
	m.afterSelection(outcome)
}

// toggleSelectAll mirrors the select-all checkbox: checked clears, otherwise selects.
func (m *Model) toggleSelectAll() {
	m.flushFilter()
	if m.list.AllVisibleSelected() {
		m.clearAll()
		return
	}
	m.selectAll()
}

func (m *Model) clearAll() {
	m.flushFilter()
	outcome := m.list.ClearAll()
	events.Selection.Clear(outcome.String(), m.list.SelectedCount())
	m.afterSelection(outcome)
}

func (m *Model) report(op, id string, outcome state.Outcome) {
	events.Selection.Outcome(op, id, outcome.String(), m.list.SelectedCount())
	switch outcome {
	case state.OutcomeDisabled:
		events.Selection.Disabled(id)
	case state.OutcomeLimitReached:
		events.Selection.Limit(id, m.list.MaxSelected)
	}
	m.afterSelection(outcome)
}

func (m *Model) afterSelection(outcome state.Outcome) {
	switch outcome {
	case state.OutcomeChanged:
		m.forceClearInfo()
	case state.OutcomeLimitReached:
		m.setInfo(m.messages.Tooltip(m.list.MaxSelected))
	}
	m.clampSelectedCursor()
}

func (m *Model) copySelection() tea.Cmd {
	selected := m.list.SelectedItems()
	if len(selected) == 0 {
		m.setInfo(m.messages.NoneSelected)
		return nil
	}
	labels := make([]string, len(selected))
	for i, it := range selected {
		labels[i] = it.Label
	}
	label := fmt.Sprintf("%d %s", len(selected), m.messages.Selected)
	return m.bus.Execute(command.CopyRequest(label, strings.Join(labels, "\n")))
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ResultMsg)
	if !ok {
		return nil
	}
	if result.Err != nil {
		logging.Error(result.Err)
		m.errMsg = result.Err.Error()
		return nil
	}
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Copied %s", result.Label))
	return nil
}
