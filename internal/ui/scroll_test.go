package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/multiselect/internal/item"
	tea "github.com/charmbracelet/bubbletea"
)

func wheelDown(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func TestScrollThrottleCoalescesDeltas(t *testing.T) {
	now := time.Unix(0, 0)
	th := newScrollThrottle(16 * time.Millisecond)
	th.now = func() time.Time { return now }

	if rows, wait := th.push(3); rows != 3 || wait != 0 {
		t.Fatalf("expected first push applied, got rows=%d wait=%v", rows, wait)
	}
	now = now.Add(time.Millisecond)
	if rows, wait := th.push(3); rows != 0 || wait != 15*time.Millisecond {
		t.Fatalf("expected deferred push, got rows=%d wait=%v", rows, wait)
	}
	if rows, _ := th.push(-1); rows != 0 {
		t.Fatalf("expected deferred push, got rows=%d", rows)
	}
	if rows := th.flush(); rows != 2 {
		t.Fatalf("expected accumulated delta 2, got %d", rows)
	}
	if rows := th.flush(); rows != 0 {
		t.Fatalf("expected empty flush, got %d", rows)
	}
}

func TestScrollThrottleDisabled(t *testing.T) {
	th := newScrollThrottle(-1)
	for i := 0; i < 3; i++ {
		if rows, wait := th.push(3); rows != 3 || wait != 0 {
			t.Fatalf("expected passthrough, got rows=%d wait=%v", rows, wait)
		}
	}
}

func TestWheelScrollsListAndDragsCursor(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(100)))
	h.Send(wheelDown(5, 5))
	list := h.Model().List()
	if list.Viewport.Scroll != wheelStep {
		t.Fatalf("expected scroll %d, got %d", wheelStep, list.Viewport.Scroll)
	}
	if list.Cursor != wheelStep {
		t.Fatalf("expected cursor dragged to first visible row, got %d", list.Cursor)
	}
	if view := h.View(); strings.Contains(view, "Item 0 ") {
		t.Fatalf("expected Item 0 scrolled out:\n%s", view)
	}
}

func TestWheelDeferredFlushAppliesFinalPosition(t *testing.T) {
	opts := testOptions(item.Generate(100))
	opts.ScrollInterval = 50 * time.Millisecond
	m := NewModel(opts)
	now := time.Unix(0, 0)
	m.scroll.now = func() time.Time { return now }

	m.Update(wheelDown(5, 5))
	if m.List().Viewport.Scroll != 3 {
		t.Fatalf("expected immediate scroll, got %d", m.List().Viewport.Scroll)
	}
	_, cmd := m.Update(wheelDown(5, 5))
	if cmd == nil {
		t.Fatalf("expected a scheduled flush")
	}
	m.Update(wheelDown(5, 5))
	if m.List().Viewport.Scroll != 3 {
		t.Fatalf("expected deltas held back, got %d", m.List().Viewport.Scroll)
	}
	m.Update(scrollFlushMsg{})
	if m.List().Viewport.Scroll != 9 {
		t.Fatalf("expected flushed scroll 9, got %d", m.List().Viewport.Scroll)
	}
}

func TestClickTogglesRow(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Send(leftClick(5, 4))
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 2" {
		t.Fatalf("expected Item 2 selected, got %v", got)
	}
	if h.Model().List().Cursor != 2 {
		t.Fatalf("expected cursor on clicked row, got %d", h.Model().List().Cursor)
	}
}

func TestClickSelectAllRow(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(5)))
	h.Send(leftClick(3, 1))
	if n := h.Model().List().SelectedCount(); n != 5 {
		t.Fatalf("expected all selected, got %d", n)
	}
	h.Send(leftClick(3, 1))
	if n := h.Model().List().SelectedCount(); n != 0 {
		t.Fatalf("expected all cleared, got %d", n)
	}
}

func TestClickSelectedRowRemovesIt(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(3)))
	h.Key(tea.KeyCtrlS)
	g := h.Model().geometry()
	h.Send(leftClick(g.rightStart+2, g.statusRows+1))
	if got := selectedLabels(h.Model()); strings.Join(got, ",") != "Item 0,Item 2" {
		t.Fatalf("expected Item 1 removed, got %v", got)
	}
}

func TestClickClearAllLabel(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(3)))
	h.Key(tea.KeyCtrlS)
	h.Send(leftClick(79, 0))
	if n := h.Model().List().SelectedCount(); n != 0 {
		t.Fatalf("expected clear all, got %d", n)
	}
}

func TestClickOutsidePanelsIgnored(t *testing.T) {
	h := newTestHarness(testOptions(item.Generate(3)))
	h.Send(leftClick(5, 19))
	h.Send(leftClick(40, 5))
	if n := h.Model().List().SelectedCount(); n != 0 {
		t.Fatalf("expected no selection, got %d", n)
	}
}
