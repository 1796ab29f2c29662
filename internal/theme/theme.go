package theme

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Checked               *lipgloss.Style
	Disabled              *lipgloss.Style
	SelectAll             *lipgloss.Style
	Status                *lipgloss.Style
	ClearAll              *lipgloss.Style
	Panel                 *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Tooltip               *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Checked: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	),
	SelectAll: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	ClearAll: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
	),
	Panel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Tooltip: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// customStyles is a warmer palette with a framed selection panel.
var customStyles = Styles{
	Loading:               ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Italic(true)),
	Item:                  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("223"))),
	ItemIndicator:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("95"))),
	SelectedItemIndicator: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Background(lipgloss.Color("53"))),
	SelectedItem:          ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("53")).Bold(true)),
	Checked:               ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)),
	Disabled:              ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("95")).Faint(true)),
	SelectAll:             ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("217")).Bold(true)),
	Status:                ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("217")).Bold(true)),
	ClearAll:              ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Underline(true)),
	Panel:                 ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("132"))),
	Error:                 ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)),
	Info:                  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("223"))),
	Tooltip:               ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Italic(true)),
	Footer:                ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("181"))),
	Filter:                ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("223"))),
	FilterPrompt:          ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)),
	FilterPlaceholder:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("138"))),
	Cursor:                ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205")).Blink(true)),
}

var variants = map[string]*Styles{
	"default": &defaultStyles,
	"custom":  &customStyles,
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Lookup resolves a named style variant. The empty name maps to the default set.
func Lookup(name string) (*Styles, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default(), true
	}
	s, ok := variants[key]
	return s, ok
}

// Names lists the registered variants in sorted order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render applies style to text, tolerating a nil style.
func Render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
