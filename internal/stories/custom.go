package stories

import (
	"fmt"
	"strings"

	"github.com/atomicstack/multiselect/internal/ui"
	"github.com/atomicstack/multiselect/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	componentAccent  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	componentMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	componentCurrent = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	componentHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Italic(true)
)

// componentRenderer replaces every render hook with a bullet-style look.
type componentRenderer struct {
	showValue bool
}

func (componentRenderer) RenderItem(v ui.ItemView) string {
	bullet := "○"
	switch {
	case v.Checked:
		bullet = "●"
	case v.Disabled:
		bullet = "⊘"
	}
	line := bullet + " " + v.Item.Label
	switch {
	case v.Current && v.Focused:
		return componentCurrent.Render(line)
	case v.Disabled:
		return componentMuted.Render(line)
	case v.Checked:
		return componentAccent.Render(line)
	}
	return line
}

func (componentRenderer) RenderSelectedItem(v ui.ItemView) string {
	line := "− " + v.Item.Label
	if v.Current && v.Focused {
		return componentCurrent.Render(line)
	}
	return line
}

func (r componentRenderer) RenderSearch(v ui.SearchView) string {
	if v.Value == "" {
		return componentAccent.Render("? ") + componentMuted.Render(v.Placeholder)
	}
	runes := []rune(v.Value)
	pos := v.Cursor
	if pos > len(runes) {
		pos = len(runes)
	}
	line := componentAccent.Render("? ") + string(runes[:pos]) + "_" + string(runes[pos:])
	if r.showValue {
		line += componentMuted.Render(fmt.Sprintf("  (value: %q)", v.Value))
	}
	if v.Pending {
		line += componentMuted.Render(" …")
	}
	return line
}

func (componentRenderer) RenderSelectAll(v ui.SelectAllView) string {
	bullet := "○"
	switch {
	case v.Checked:
		bullet = "●"
	case v.Partial:
		bullet = "◐"
	}
	return componentAccent.Render(bullet + " " + v.Label)
}

func (componentRenderer) RenderSelectionStatus(v ui.StatusView) string {
	if v.Count == 0 {
		return componentMuted.Render(v.Messages.NoneSelected)
	}
	status := fmt.Sprintf("%d %s", v.Count, v.Messages.Selected)
	link := "[" + v.Messages.ClearAll + "]"
	gap := v.Width - lipgloss.Width(status) - lipgloss.Width(link)
	if gap < 1 {
		gap = 1
	}
	return componentAccent.Render(status) + strings.Repeat(" ", gap) + componentMuted.Render(link)
}

// valueController owns the search text and hands it to the widget as a
// controlled search source.
type valueController struct {
	value string
	model *ui.Model
}

func newValueController(opts ui.Options) (tea.Model, *ui.Model) {
	c := &valueController{}
	opts.Search = state.NewControlledSearch(
		func() string { return c.value },
		func(v string) { c.value = v },
	)
	if opts.Height > 0 {
		opts.Height--
	}
	c.model = ui.NewModel(opts)
	return c, c.model
}

// Value returns the search text held by the controller.
func (c *valueController) Value() string {
	return c.value
}

func (c *valueController) Init() tea.Cmd {
	return c.model.Init()
}

func (c *valueController) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok && size.Height > 0 {
		size.Height--
		msg = size
	}
	_, cmd := c.model.Update(msg)
	return c, cmd
}

func (c *valueController) View() string {
	header := componentHeader.Render(fmt.Sprintf("controlled search value: %q", c.value))
	return header + "\n" + c.model.View()
}
