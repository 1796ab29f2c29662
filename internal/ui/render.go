package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// ItemView is the data handed to item renderers.
type ItemView struct {
	Item     item.Item
	Index    int
	Checked  bool
	// Disabled is set for disabled items and for unchecked items once the
	// selection cap is reached.
	Disabled bool
	Current  bool
	Focused  bool
	Width    int
	Height   int
	Styles   *theme.Styles
}

// SearchView is the data handed to search renderers. Line holds the stock
// prompt with its caret already drawn.
type SearchView struct {
	Value       string
	Cursor      int
	Placeholder string
	Pending     bool
	Line        string
	Width       int
	Styles      *theme.Styles
}

// SelectAllView is the data handed to select-all renderers.
type SelectAllView struct {
	Label   string
	Checked bool
	Partial bool
	Width   int
	Height  int
	Styles  *theme.Styles
}

// StatusView is the data handed to selection status renderers.
type StatusView struct {
	Count    int
	Max      int
	Messages Messages
	Focused  bool
	Width    int
	Styles   *theme.Styles
}

// Renderer draws the pluggable parts of the widget. Returned strings may span
// several lines; the model clips them to the configured heights and widths.
type Renderer interface {
	RenderItem(ItemView) string
	RenderSelectedItem(ItemView) string
	RenderSearch(SearchView) string
	RenderSelectAll(SelectAllView) string
	RenderSelectionStatus(StatusView) string
}

// DefaultRenderer draws the stock look. Embed it to override single hooks.
type DefaultRenderer struct{}

func (DefaultRenderer) RenderItem(v ItemView) string {
	s := v.Styles
	indicator := "▌"
	indicatorStyle := s.ItemIndicator
	lineStyle := s.Item
	mark := "[ ]"
	if v.Checked {
		mark = "[✓]"
	}
	if v.Disabled {
		if !v.Checked {
			mark = "[-]"
		}
		lineStyle = s.Disabled
	}
	if v.Current && v.Focused {
		indicatorStyle = s.SelectedItemIndicator
		lineStyle = s.SelectedItem
	}
	text := mark + " " + v.Item.Label
	if v.Width > 0 {
		if pad := v.Width - 2 - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return theme.Render(indicatorStyle, indicator) + " " + theme.Render(lineStyle, text)
}

func (DefaultRenderer) RenderSelectedItem(v ItemView) string {
	s := v.Styles
	lineStyle := s.Item
	indicatorStyle := s.ItemIndicator
	if v.Current && v.Focused {
		indicatorStyle = s.SelectedItemIndicator
		lineStyle = s.SelectedItem
	}
	text := "✕ " + v.Item.Label
	if v.Width > 0 {
		if pad := v.Width - 2 - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return theme.Render(indicatorStyle, "▌") + " " + theme.Render(lineStyle, text)
}

func (DefaultRenderer) RenderSearch(v SearchView) string {
	return v.Line
}

func (DefaultRenderer) RenderSelectAll(v SelectAllView) string {
	mark := "[ ]"
	switch {
	case v.Checked:
		mark = "[✓]"
	case v.Partial:
		mark = "[-]"
	}
	return "  " + theme.Render(v.Styles.SelectAll, mark+" "+v.Label)
}

func (DefaultRenderer) RenderSelectionStatus(v StatusView) string {
	left := v.Messages.NoneSelected
	if v.Count > 0 {
		if v.Max > 0 {
			left = fmt.Sprintf("%d/%d %s", v.Count, v.Max, v.Messages.Selected)
		} else {
			left = fmt.Sprintf("%d %s", v.Count, v.Messages.Selected)
		}
	}
	left = theme.Render(v.Styles.Status, left)
	if v.Count == 0 {
		return left
	}
	right := theme.Render(v.Styles.ClearAll, v.Messages.ClearAll)
	gap := v.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// fitWidth pads or truncates an ANSI-styled line to exactly width columns.
func fitWidth(line string, width int) string {
	if width <= 0 {
		return line
	}
	w := lipgloss.Width(line)
	if w > width {
		if width == 1 {
			return truncate.String(line, 1)
		}
		line = truncate.StringWithTail(line, uint(width-1), "…")
		w = lipgloss.Width(line)
	}
	if w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

// fitBlock splits rendered output into exactly height lines of width columns.
func fitBlock(rendered string, height, width int) []string {
	if height <= 0 {
		return nil
	}
	lines := strings.Split(rendered, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = fitWidth(line, width)
	}
	return out
}
