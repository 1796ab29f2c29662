package ui

import (
	"testing"

	"github.com/atomicstack/multiselect/internal/item"
	tea "github.com/charmbracelet/bubbletea"
)

func TestFilterEditingKeys(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(3)))
	list := h.Model().List()

	h.Type("foo bar")
	if list.FilterCursorPos() != 7 {
		t.Fatalf("expected cursor at end, got %d", list.FilterCursorPos())
	}
	h.Key(tea.KeyCtrlW)
	if list.Filter() != "foo " {
		t.Fatalf("expected word deleted, got %q", list.Filter())
	}
	h.Key(tea.KeyCtrlA)
	if list.FilterCursorPos() != 0 {
		t.Fatalf("expected cursor at start, got %d", list.FilterCursorPos())
	}
	h.Type("x")
	if list.Filter() != "xfoo " {
		t.Fatalf("expected insert at cursor, got %q", list.Filter())
	}
	h.Key(tea.KeyCtrlE)
	h.Key(tea.KeyLeft)
	h.Key(tea.KeyBackspace)
	if list.Filter() != "xfo " {
		t.Fatalf("expected rune before cursor removed, got %q", list.Filter())
	}
	h.Key(tea.KeyRight)
	if list.FilterCursorPos() != 4 {
		t.Fatalf("expected cursor at end, got %d", list.FilterCursorPos())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true})
	if list.FilterCursorPos() != 0 {
		t.Fatalf("expected alt+b to jump a word back, got %d", list.FilterCursorPos())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}, Alt: true})
	if list.FilterCursorPos() == 0 {
		t.Fatalf("expected alt+f to move forward")
	}
	h.Key(tea.KeyCtrlU)
	if list.Filter() != "" {
		t.Fatalf("expected cleared filter, got %q", list.Filter())
	}
}

func TestFilterInputIgnoredInSelectedPanel(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(3)))
	h.Key(tea.KeyTab)
	h.Key(tea.KeyShiftTab)
	h.Type("a")
	if got := h.Model().List().Filter(); got != "" {
		t.Fatalf("expected no filter edits while the selected panel has focus, got %q", got)
	}
}

func TestFilterEditClearsInfo(t *testing.T) {
	opts := testOptions(item.Generate(3))
	opts.ShowSelectedItems = false
	h := newTestHarness(opts)
	h.Key(tea.KeyCtrlY)
	if h.Model().currentInfo() == "" {
		t.Fatalf("expected info message")
	}
	h.Type("I")
	if h.Model().currentInfo() != "" {
		t.Fatalf("expected info cleared by filter edit")
	}
}
