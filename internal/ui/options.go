package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/theme"
	"github.com/atomicstack/multiselect/internal/ui/state"
)

const (
	defaultScrollInterval = 16 * time.Millisecond
	defaultWidth          = 80
	defaultListRows       = 10
	tooltipMaxToken       = "{maxSelectedItems}"
)

// Messages holds the user-facing strings of the widget.
type Messages struct {
	SearchPlaceholder    string `yaml:"search_placeholder" toml:"search_placeholder"`
	NoItems              string `yaml:"no_items" toml:"no_items"`
	NoneSelected         string `yaml:"none_selected" toml:"none_selected"`
	Selected             string `yaml:"selected" toml:"selected"`
	SelectAll            string `yaml:"select_all" toml:"select_all"`
	ClearAll             string `yaml:"clear_all" toml:"clear_all"`
	DisabledItemsTooltip string `yaml:"disabled_items_tooltip" toml:"disabled_items_tooltip"`
}

// DefaultMessages returns the stock message set.
func DefaultMessages() Messages {
	return Messages{
		SearchPlaceholder:    "Search...",
		NoItems:              "No Items...",
		NoneSelected:         "None Selected",
		Selected:             "selected",
		SelectAll:            "Select All",
		ClearAll:             "Clear All",
		DisabledItemsTooltip: "You can only select " + tooltipMaxToken + " items",
	}
}

// Merge fills empty fields of m from fallback.
func (m Messages) Merge(fallback Messages) Messages {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Messages{
		SearchPlaceholder:    pick(m.SearchPlaceholder, fallback.SearchPlaceholder),
		NoItems:              pick(m.NoItems, fallback.NoItems),
		NoneSelected:         pick(m.NoneSelected, fallback.NoneSelected),
		Selected:             pick(m.Selected, fallback.Selected),
		SelectAll:            pick(m.SelectAll, fallback.SelectAll),
		ClearAll:             pick(m.ClearAll, fallback.ClearAll),
		DisabledItemsTooltip: pick(m.DisabledItemsTooltip, fallback.DisabledItemsTooltip),
	}
}

// Tooltip renders the limit message for the given cap.
func (m Messages) Tooltip(limit int) string {
	return strings.ReplaceAll(m.DisabledItemsTooltip, tooltipMaxToken, strconv.Itoa(limit))
}

// Options configures a Model.
type Options struct {
	ID                string
	Items             []item.Item
	SelectedItems     []item.Item
	Loading           bool
	ShowSearch        bool
	ShowSelectAll     bool
	ShowSelectedItems bool
	// MaxSelectedItems caps the selection; zero means unlimited.
	MaxSelectedItems int
	Messages         Messages
	Renderer         Renderer
	// ItemHeight is the number of terminal rows per item. Zero means one.
	ItemHeight         int
	ItemHeightFunc     func(item.Item) int
	SelectAllHeight    int
	ListHeight         int
	SelectedListHeight int
	// ResponsiveHeight sizes the widget as a percentage of the terminal, e.g. "50%".
	ResponsiveHeight string
	WrapperStyle     string
	Search           state.SearchSource
	OnChange         func([]item.Item)
	Matcher          state.Matcher
	Comparator       state.Comparator
	ClearScope       state.ClearScope
	Overscan         int
	// AsyncFilterThreshold moves matching off the update loop once the store
	// holds at least this many items. Zero keeps filtering synchronous.
	AsyncFilterThreshold int
	// ScrollInterval rate-limits wheel scrolling. Zero uses the default;
	// negative disables throttling.
	ScrollInterval time.Duration
	Width          int
	Height         int
	ShowFooter     bool
	StaticCursor   bool
}

// DefaultOptions returns the options of the plain widget.
func DefaultOptions() Options {
	return Options{
		ShowSearch:        true,
		ShowSelectAll:     true,
		ShowSelectedItems: true,
		Messages:          DefaultMessages(),
	}
}

// ParseResponsiveHeight parses values such as "50%" into a percentage.
func ParseResponsiveHeight(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	if !strings.HasSuffix(trimmed, "%") {
		return 0, fmt.Errorf("responsive height %q: missing %% suffix", value)
	}
	pct, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(trimmed, "%")))
	if err != nil {
		return 0, fmt.Errorf("responsive height %q: %w", value, err)
	}
	if pct <= 0 || pct > 100 {
		return 0, fmt.Errorf("responsive height %q: must be within 1-100%%", value)
	}
	return pct, nil
}

func (o Options) styles() *theme.Styles {
	if s, ok := theme.Lookup(o.WrapperStyle); ok {
		return s
	}
	return theme.Default()
}

func (o Options) itemHeight() int {
	if o.ItemHeight > 0 {
		return o.ItemHeight
	}
	return 1
}

func (o Options) selectAllHeight() int {
	if o.SelectAllHeight > 0 {
		return o.SelectAllHeight
	}
	return 1
}
