package ui

import (
	"github.com/atomicstack/multiselect/internal/logging/events"
	"github.com/atomicstack/multiselect/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type filterResultMsg struct {
	ticket  *state.QueryTicket
	indices []int
	err     error
}

// filterCmd issues a background match when the list deferred filtering and no
// ticket for the current text is in flight.
func (m *Model) filterCmd() tea.Cmd {
	if !m.list.Pending() {
		return nil
	}
	if m.ticket != nil && m.ticket.Query == m.list.Filter() {
		return nil
	}
	ticket := m.list.PrepareQuery()
	m.ticket = ticket
	events.Filter.Deferred(m.list.ID, ticket.Query, ticket.Seq())
	return func() tea.Msg {
		indices, err := ticket.Run()
		return filterResultMsg{ticket: ticket, indices: indices, err: err}
	}
}

func (m *Model) handleFilterResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(filterResultMsg)
	if !ok {
		return nil
	}
	if m.ticket == result.ticket {
		m.ticket = nil
	}
	if !m.list.CommitQuery(result.ticket, result.indices, result.err) {
		events.Filter.Dropped(m.list.ID, result.ticket.Seq())
		return nil
	}
	events.Filter.Applied(m.list.ID, result.ticket.Query, m.list.Len())
	m.syncViewport()
	return nil
}

// flushFilter applies a deferred filter before a bulk selection so it acts on
// the items matching the current search text.
func (m *Model) flushFilter() {
	if !m.list.FlushPending() {
		return
	}
	m.ticket = nil
	events.Filter.Applied(m.list.ID, m.list.AppliedFilter(), m.list.Len())
	m.syncViewport()
}
