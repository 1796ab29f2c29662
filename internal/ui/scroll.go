package ui

import (
	"time"

	"github.com/atomicstack/multiselect/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// wheelStep is the number of rows one wheel notch scrolls.
const wheelStep = 3

type scrollFlushMsg struct{}

// scrollThrottle coalesces wheel deltas so the viewport is recomputed at most
// once per interval. Deltas arriving inside the interval accumulate and are
// applied by a scheduled flush, so the final position is never lost.
type scrollThrottle struct {
	interval  time.Duration
	next      time.Time
	pending   int
	panel     focus
	scheduled bool
	now       func() time.Time
}

func newScrollThrottle(interval time.Duration) *scrollThrottle {
	if interval == 0 {
		interval = defaultScrollInterval
	}
	if interval < 0 {
		interval = 0
	}
	return &scrollThrottle{interval: interval, now: time.Now}
}

// push records delta and returns the rows to apply immediately, or the wait
// until the next flush when the interval has not elapsed.
func (t *scrollThrottle) push(delta int) (int, time.Duration) {
	if t.interval <= 0 {
		return delta, 0
	}
	t.pending += delta
	now := t.now()
	if wait := t.next.Sub(now); wait > 0 {
		return 0, wait
	}
	apply := t.pending
	t.pending = 0
	t.next = now.Add(t.interval)
	return apply, 0
}

func (t *scrollThrottle) flush() int {
	apply := t.pending
	t.pending = 0
	t.scheduled = false
	if apply != 0 {
		t.next = t.now().Add(t.interval)
	}
	return apply
}

func (m *Model) handleScrollFlushMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(scrollFlushMsg); !ok {
		return nil
	}
	panel := m.scroll.panel
	if rows := m.scroll.flush(); rows != 0 {
		m.applyScroll(panel, rows)
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	g := m.geometry()
	panel, inside := m.panelAt(g, mouse.X, mouse.Y)
	if !inside {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		return m.wheel(panel, -wheelStep)
	case tea.MouseButtonWheelDown:
		return m.wheel(panel, wheelStep)
	case tea.MouseButtonLeft:
		if mouse.Action != tea.MouseActionPress {
			return nil
		}
		if panel == focusSelected {
			m.clickSelected(g, mouse.X, mouse.Y)
		} else {
			m.clickList(g, mouse.Y)
		}
	}
	return nil
}

func (m *Model) panelAt(g geometry, x, y int) (focus, bool) {
	if y < 0 || y >= g.bodyRows || x < 0 {
		return focusList, false
	}
	if x < g.leftWidth {
		return focusList, true
	}
	if g.rightWidth > 0 && x >= g.rightStart && x < g.rightStart+g.rightWidth {
		return focusSelected, true
	}
	return focusList, false
}

func (m *Model) wheel(panel focus, delta int) tea.Cmd {
	if m.scroll.pending != 0 && m.scroll.panel != panel {
		prev := m.scroll.panel
		if rows := m.scroll.flush(); rows != 0 {
			m.applyScroll(prev, rows)
		}
	}
	m.scroll.panel = panel
	rows, wait := m.scroll.push(delta)
	if rows != 0 {
		m.applyScroll(panel, rows)
	}
	if wait <= 0 || m.scroll.scheduled {
		return nil
	}
	m.scroll.scheduled = true
	events.Scroll.Deferred(m.list.ID, m.scroll.pending)
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return scrollFlushMsg{}
	})
}

// applyScroll moves the panel's viewport and drags its cursor along so it
// stays on screen without snapping the viewport back.
func (m *Model) applyScroll(panel focus, rows int) {
	if panel == focusSelected {
		count := m.list.SelectedCount()
		m.selected.ScrollBy(count, rows)
		if count == 0 {
			return
		}
		first := m.selected.IndexAt(count, m.selected.Scroll)
		last := m.selected.IndexAt(count, m.selected.Scroll+m.selected.Height-1)
		if last < 0 {
			last = count - 1
		}
		if first >= 0 && m.selCur < first {
			m.selCur = first
		}
		if m.selCur > last {
			m.selCur = last
		}
		events.Scroll.Apply(m.list.ID+":selected", m.selected.Scroll, first, last+1)
		return
	}
	l := m.list
	l.Viewport.ScrollBy(l.Len(), rows)
	if l.Len() == 0 {
		return
	}
	if first := l.RowAt(0); first >= 0 && l.Cursor < first {
		l.Cursor = first
	}
	last := l.RowAt(l.Viewport.Height - 1)
	if last < 0 {
		last = l.Len() - 1
	}
	if l.Cursor > last {
		l.Cursor = last
	}
	w := l.Layout()
	events.Scroll.Apply(l.ID, l.Viewport.Scroll, w.Start, w.End)
}

func (m *Model) clickList(g geometry, y int) {
	if m.focus != focusList {
		m.setFocus(focusList)
	}
	switch {
	case y < g.searchRows:
		return
	case y < g.listTop:
		m.toggleSelectAll()
	case y < g.listTop+g.listRows:
		if m.loading {
			return
		}
		if idx := m.list.RowAt(y - g.listTop); idx >= 0 {
			m.toggleAt(idx)
		}
	}
}

func (m *Model) clickSelected(g geometry, x, y int) {
	count := m.list.SelectedCount()
	if count == 0 {
		return
	}
	if y < g.statusRows {
		if x >= g.rightStart+g.rightWidth-lipgloss.Width(m.messages.ClearAll) {
			m.clearAll()
		}
		return
	}
	row := y - g.statusRows
	if row >= g.selectedRows {
		return
	}
	idx := m.selected.IndexAt(count, m.selected.Scroll+row)
	if idx < 0 {
		return
	}
	m.selCur = idx
	m.removeSelectedAt(idx)
}
