package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/multiselect/internal/logging/events"
	"github.com/atomicstack/multiselect/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	panelMinWidth = 40 // below this the selected panel is not drawn
	panelGap      = 3  // " │ " between the two columns
	footerText    = "tab toggle  ^s all  ^x clear  shift+tab panel  ^y copy  enter accept  esc quit"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// geometry describes where each part of the widget lands on screen.
type geometry struct {
	width         int
	leftWidth     int
	rightStart    int
	rightWidth    int
	searchRows    int
	selectAllRows int
	listTop       int
	listRows      int
	statusRows    int
	selectedRows  int
	bodyRows      int
	bottomRows    int
}

func (m *Model) geometry() geometry {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	g := geometry{width: width, leftWidth: width, bottomRows: 1}
	if m.opts.ShowSearch {
		g.searchRows = 1
	}
	if m.opts.ShowSelectAll {
		g.selectAllRows = m.opts.selectAllHeight()
	}
	g.listTop = g.searchRows + g.selectAllRows
	if m.opts.ShowFooter {
		g.bottomRows++
	}
	available := m.height
	if available > 0 && m.responsive > 0 {
		available = available * m.responsive / 100
	}
	switch {
	case m.opts.ListHeight > 0:
		g.listRows = m.opts.ListHeight
	case available > 0:
		g.listRows = available - g.listTop - g.bottomRows
	default:
		g.listRows = defaultListRows
	}
	if m.height > 0 {
		if limit := m.height - g.listTop - g.bottomRows; g.listRows > limit {
			g.listRows = limit
		}
	}
	if g.listRows < 1 {
		g.listRows = 1
	}
	g.bodyRows = g.listTop + g.listRows

	if m.opts.ShowSelectedItems && width >= panelMinWidth {
		inner := width - panelGap
		g.leftWidth = inner - inner/2
		g.rightStart = g.leftWidth + panelGap
		g.rightWidth = width - g.rightStart
		g.statusRows = 1
		if m.opts.SelectedListHeight > 0 {
			g.selectedRows = m.opts.SelectedListHeight
		} else {
			g.selectedRows = g.bodyRows - g.statusRows
		}
		if m.height > 0 {
			if limit := m.height - g.bottomRows - g.statusRows; g.selectedRows > limit {
				g.selectedRows = limit
			}
		}
		if g.selectedRows < 1 {
			g.selectedRows = 1
		}
		if rows := g.statusRows + g.selectedRows; rows > g.bodyRows {
			g.bodyRows = rows
		}
	}
	return g
}

func (m *Model) syncViewport() {
	g := m.geometry()
	m.list.SetViewportHeight(g.listRows)
	m.selected.Height = g.selectedRows
	m.clampSelectedCursor()
}

// View implements tea.Model.
func (m *Model) View() string {
	m.syncViewport()
	g := m.geometry()

	left := m.renderLeft(g)
	top := strings.Join(left, "\n")
	if g.rightWidth > 0 {
		right := m.renderRight(g)
		sep := make([]string, g.bodyRows)
		for i := range sep {
			sep[i] = " " + theme.Render(m.styles.Panel, "│") + " "
		}
		top = lipgloss.JoinHorizontal(lipgloss.Top, top, strings.Join(sep, "\n"), strings.Join(right, "\n"))
	}

	bottom := make([]styledLine, 0, 2)
	bottom = append(bottom, m.statusLine())
	if m.opts.ShowFooter {
		bottom = append(bottom, styledLine{text: footerText, style: m.styles.Footer})
	}
	bottom = applyWidth(bottom, g.width)
	return top + "\n" + renderLines(bottom)
}

func (m *Model) renderLeft(g geometry) []string {
	lines := make([]string, 0, g.bodyRows)
	if g.searchRows > 0 {
		view := SearchView{
			Value:       m.list.Filter(),
			Cursor:      m.list.FilterCursorPos(),
			Placeholder: m.messages.SearchPlaceholder,
			Pending:     m.list.Pending(),
			Line:        m.filterPrompt(),
			Width:       g.leftWidth,
			Styles:      m.styles,
		}
		lines = append(lines, fitBlock(m.renderer.RenderSearch(view), g.searchRows, g.leftWidth)...)
	}
	if g.selectAllRows > 0 {
		all := m.list.AllVisibleSelected()
		view := SelectAllView{
			Label:   m.messages.SelectAll,
			Checked: all,
			Partial: !all && m.list.SelectedCount() > 0,
			Width:   g.leftWidth,
			Height:  g.selectAllRows,
			Styles:  m.styles,
		}
		lines = append(lines, fitBlock(m.renderer.RenderSelectAll(view), g.selectAllRows, g.leftWidth)...)
	}
	lines = append(lines, m.renderListRows(g)...)
	for len(lines) < g.bodyRows {
		lines = append(lines, fitWidth("", g.leftWidth))
	}
	return lines
}

func (m *Model) renderListRows(g geometry) []string {
	rows := make([]string, 0, g.listRows)
	switch {
	case m.loading:
		rows = append(rows, fitWidth(m.spinner.View()+" "+theme.Render(m.styles.Loading, "Loading…"), g.leftWidth))
	case m.list.Len() == 0:
		rows = append(rows, fitWidth("  "+theme.Render(m.styles.Info, m.messages.NoItems), g.leftWidth))
	default:
		w := m.list.Layout()
		skip := w.Offset
		atLimit := m.list.AtLimit()
		for i := w.Start; i < w.End && len(rows) < g.listRows; i++ {
			it := m.list.VisibleAt(i)
			checked := m.list.IsSelected(it.ID)
			h := m.list.Viewport.RowHeight(i)
			view := ItemView{
				Item:     it,
				Index:    i,
				Checked:  checked,
				Disabled: it.Disabled || (atLimit && !checked),
				Current:  i == m.list.Cursor,
				Focused:  m.focus == focusList,
				Width:    g.leftWidth,
				Height:   h,
				Styles:   m.styles,
			}
			block := fitBlock(m.renderer.RenderItem(view), h, g.leftWidth)
			if skip > 0 {
				if skip >= len(block) {
					skip -= len(block)
					continue
				}
				block = block[skip:]
				skip = 0
			}
			rows = append(rows, block...)
		}
		if len(rows) > g.listRows {
			rows = rows[:g.listRows]
		}
	}
	for len(rows) < g.listRows {
		rows = append(rows, fitWidth("", g.leftWidth))
	}
	return rows
}

func (m *Model) renderRight(g geometry) []string {
	count := m.list.SelectedCount()
	status := StatusView{
		Count:    count,
		Max:      m.list.MaxSelected,
		Messages: m.messages,
		Focused:  m.focus == focusSelected,
		Width:    g.rightWidth,
		Styles:   m.styles,
	}
	lines := fitBlock(m.renderer.RenderSelectionStatus(status), g.statusRows, g.rightWidth)
	w := m.selected.Layout(count)
	for i := w.Start; i < w.End && len(lines) < g.statusRows+g.selectedRows; i++ {
		it, ok := m.list.SelectedAt(i)
		if !ok {
			continue
		}
		view := ItemView{
			Item:    it,
			Index:   i,
			Checked: true,
			Current: i == m.selCur,
			Focused: m.focus == focusSelected,
			Width:   g.rightWidth,
			Height:  1,
			Styles:  m.styles,
		}
		lines = append(lines, fitBlock(m.renderer.RenderSelectedItem(view), 1, g.rightWidth)...)
	}
	for len(lines) < g.bodyRows {
		lines = append(lines, fitWidth("", g.rightWidth))
	}
	return lines
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	}
	if tip := m.tooltipText(); tip != "" {
		return styledLine{text: tip, style: m.styles.Tooltip}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: m.styles.Info}
	}
	if m.list.Pending() {
		return styledLine{text: "filtering…", style: m.styles.Loading}
	}
	return styledLine{}
}

func (m *Model) tooltipText() string {
	if !m.list.AtLimit() || m.focus != focusList {
		return ""
	}
	current, ok := m.list.Current()
	if !ok || m.list.IsSelected(current.ID) {
		return ""
	}
	return m.messages.Tooltip(m.list.MaxSelected)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncViewport()
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{text: truncateText(line.text, width), style: line.style}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
