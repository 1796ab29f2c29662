package state

import (
	"context"
	"strings"
	"unicode"
)

// QueryTicket represents one deferred filter run. Only the most recently
// prepared ticket can be committed.
type QueryTicket struct {
	Query string

	seq        uint64
	generation uint64
	snap       Snapshot
	engine     FilterEngine
	ctx        context.Context
	cancel     context.CancelFunc
}

// Run performs the match. It is safe to call from another goroutine.
func (t *QueryTicket) Run() ([]int, error) {
	return t.engine.Match(t.ctx, t.Query, t.snap)
}

// Seq identifies the ticket among those prepared by one list.
func (t *QueryTicket) Seq() uint64 {
	return t.seq
}

// Filter returns the current search text.
func (l *List) Filter() string {
	return l.search.Value()
}

// AppliedFilter returns the query the visible items currently reflect.
func (l *List) AppliedFilter() string {
	return l.shown
}

// Pending reports whether the visible items lag behind the search text.
func (l *List) Pending() bool {
	return l.stale
}

// SetFilter updates the search text and edit cursor position.
func (l *List) SetFilter(query string, cursor int) {
	l.search.SetValue(query)
	l.FilterCursor = cursor
	l.SyncSearch()
}

// SyncSearch reconciles the visible items with the search source. It reports
// whether the search text changed since the last call.
func (l *List) SyncSearch() bool {
	return l.syncSearch(false)
}

func (l *List) syncSearch(force bool) bool {
	value := l.search.Value()
	l.clampFilterCursor(value)
	if l.applied && value == l.query {
		return false
	}
	l.query = value
	l.applied = true
	if !force && l.deferFiltering() {
		l.stale = true
		return true
	}
	l.cancelTicket()
	indices, err := l.engine.Match(context.Background(), value, l.store.Snapshot())
	if err != nil {
		return true
	}
	l.applyMatches(value, indices)
	return true
}

// FlushPending matches a deferred query synchronously so the visible items
// reflect the current search text. Any ticket in flight is cancelled. It
// reports whether a deferred query was applied.
func (l *List) FlushPending() bool {
	if !l.stale {
		return false
	}
	l.cancelTicket()
	indices, err := l.engine.Match(context.Background(), l.query, l.store.Snapshot())
	if err != nil {
		return false
	}
	l.applyMatches(l.query, indices)
	return true
}

func (l *List) deferFiltering() bool {
	return l.AsyncThreshold > 0 && l.store.Len() >= l.AsyncThreshold
}

// PrepareQuery issues a ticket for the current search text, cancelling any
// ticket still in flight.
func (l *List) PrepareQuery() *QueryTicket {
	l.cancelTicket()
	l.ticketSeq++
	ctx, cancel := context.WithCancel(context.Background())
	t := &QueryTicket{
		Query:      l.query,
		seq:        l.ticketSeq,
		generation: l.store.Generation(),
		snap:       l.store.Snapshot(),
		engine:     l.engine,
		ctx:        ctx,
		cancel:     cancel,
	}
	l.ticket = t
	return t
}

// CommitQuery applies the result of a ticket. Results from superseded tickets,
// replaced item sets or failed runs are discarded.
func (l *List) CommitQuery(t *QueryTicket, indices []int, err error) bool {
	if t == nil || l.ticket != t {
		return false
	}
	l.ticket = nil
	t.cancel()
	if err != nil || t.generation != l.store.Generation() || t.Query != l.query {
		return false
	}
	l.applyMatches(t.Query, indices)
	return true
}

func (l *List) cancelTicket() {
	if l.ticket == nil {
		return
	}
	l.ticket.cancel()
	l.ticket = nil
}

func (l *List) applyMatches(query string, indices []int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.shown)
	changed := trimmed != prevTrimmed
	restore := -1
	if changed {
		if trimmed != "" {
			if prevTrimmed == "" {
				l.LastCursor = l.Cursor
			}
			l.Cursor = 0
			l.Viewport.Scroll = 0
		} else {
			restore = l.LastCursor
		}
	}
	l.shown = query
	l.visible = indices
	l.stale = false
	l.Viewport.Invalidate()
	if restore >= 0 && restore < len(l.visible) {
		l.Cursor = restore
	}
	if changed && trimmed == "" {
		l.LastCursor = -1
	}
	l.clampCursor()
	l.EnsureCursorVisible()
}

func (l *List) clampFilterCursor(value string) {
	n := len([]rune(value))
	if l.FilterCursor < 0 {
		l.FilterCursor = 0
	}
	if l.FilterCursor > n {
		l.FilterCursor = n
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *List) FilterCursorPos() int {
	runes := []rune(l.Filter())
	if l.FilterCursor < 0 {
		return 0
	}
	if l.FilterCursor > len(runes) {
		return len(runes)
	}
	return l.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *List) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter())
	pos := l.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (l *List) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter())
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (l *List) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter())
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStartBefore(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}

// ClearFilter empties the search text.
func (l *List) ClearFilter() bool {
	if l.Filter() == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (l *List) MoveFilterCursorStart() bool {
	if l.FilterCursorPos() == 0 {
		return false
	}
	l.FilterCursor = 0
	return true
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (l *List) MoveFilterCursorEnd() bool {
	end := len([]rune(l.Filter()))
	if l.FilterCursorPos() == end {
		return false
	}
	l.FilterCursor = end
	return true
}

// MoveFilterCursorWordBackward moves the filter cursor one word backward.
func (l *List) MoveFilterCursorWordBackward() bool {
	runes := []rune(l.Filter())
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStartBefore(runes, pos)
	if i == pos {
		return false
	}
	l.FilterCursor = i
	return true
}

// MoveFilterCursorWordForward moves the filter cursor one word forward.
func (l *List) MoveFilterCursorWordForward() bool {
	runes := []rune(l.Filter())
	pos := l.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	l.FilterCursor = i
	return true
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (l *List) MoveFilterCursorRuneBackward() bool {
	if l.FilterCursorPos() == 0 {
		return false
	}
	l.FilterCursor = l.FilterCursorPos() - 1
	return true
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (l *List) MoveFilterCursorRuneForward() bool {
	runes := []rune(l.Filter())
	pos := l.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	l.FilterCursor = pos + 1
	return true
}

func wordStartBefore(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
