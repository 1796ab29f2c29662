package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/multiselect/internal/format/table"
	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/logging"
	"github.com/atomicstack/multiselect/internal/logging/events"
	"github.com/atomicstack/multiselect/internal/source"
	"github.com/atomicstack/multiselect/internal/stories"
	"github.com/atomicstack/multiselect/internal/ui"
	"github.com/atomicstack/multiselect/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Story       string
	ListStories bool
	// Items replaces the story's items with that many generated ones.
	Items     int
	ItemsFile string
	Watch     bool
	// MaxSelected overrides the story's cap when zero or greater.
	MaxSelected int
	Matcher     string
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	Overrides   Overrides
}

// Overrides holds presentation settings read from a config file. Zero values
// keep the story's setting.
type Overrides struct {
	Messages             ui.Messages `yaml:"messages" toml:"messages"`
	ItemHeight           int         `yaml:"item_height" toml:"item_height"`
	SelectAllHeight      int         `yaml:"select_all_height" toml:"select_all_height"`
	ListHeight           int         `yaml:"list_height" toml:"list_height"`
	SelectedListHeight   int         `yaml:"selected_list_height" toml:"selected_list_height"`
	ResponsiveHeight     string      `yaml:"responsive_height" toml:"responsive_height"`
	Style                string      `yaml:"style" toml:"style"`
	Matcher              string      `yaml:"matcher" toml:"matcher"`
	ClearScope           string      `yaml:"clear_scope" toml:"clear_scope"`
	Overscan             int         `yaml:"overscan" toml:"overscan"`
	AsyncFilterThreshold int         `yaml:"async_filter_threshold" toml:"async_filter_threshold"`
}

// ParseClearScope maps "all" and "visible" onto state.ClearScope.
func ParseClearScope(value string) (state.ClearScope, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return state.ClearAllItems, nil
	case "visible":
		return state.ClearVisibleItems, nil
	}
	return state.ClearAllItems, fmt.Errorf("unknown clear scope %q", value)
}

// Plan is the resolved program setup for a Config.
type Plan struct {
	Story   *stories.Story
	Options ui.Options
	// Source is set when items come from a file and must be loaded after
	// the program starts.
	Source *source.File
}

// Prepare resolves the story, applies overrides and picks the item source.
func Prepare(cfg Config, reg *stories.Registry) (Plan, error) {
	name := cfg.Story
	if strings.TrimSpace(name) == "" {
		name = stories.DefaultStory
	}
	story, ok := reg.Find(name)
	if !ok {
		return Plan{}, fmt.Errorf("unknown story %q (available: %s)", name, strings.Join(reg.Names(), ", "))
	}

	base := ui.DefaultOptions()
	base.Width = cfg.Width
	base.Height = cfg.Height
	base.ShowFooter = cfg.ShowFooter
	opts := story.Apply(base)

	if err := applyOverrides(&opts, cfg.Overrides); err != nil {
		return Plan{}, err
	}
	if cfg.MaxSelected >= 0 {
		opts.MaxSelectedItems = cfg.MaxSelected
	}
	if cfg.Matcher != "" {
		m, ok := state.MatcherByName(cfg.Matcher)
		if !ok {
			return Plan{}, fmt.Errorf("unknown matcher %q", cfg.Matcher)
		}
		opts.Matcher = m
	}

	plan := Plan{Story: story}
	switch {
	case cfg.ItemsFile != "":
		plan.Source = &source.File{Path: cfg.ItemsFile}
		opts.Items = nil
		opts.Loading = true
	case cfg.Items > 0:
		items, err := source.Generated{Count: cfg.Items}.Load(context.Background())
		if err != nil {
			return Plan{}, err
		}
		opts.Items = items
	}
	plan.Options = opts
	return plan, nil
}

func applyOverrides(opts *ui.Options, o Overrides) error {
	opts.Messages = o.Messages.Merge(opts.Messages)
	if o.ItemHeight > 0 {
		opts.ItemHeight = o.ItemHeight
	}
	if o.SelectAllHeight > 0 {
		opts.SelectAllHeight = o.SelectAllHeight
	}
	if o.ListHeight > 0 {
		opts.ListHeight = o.ListHeight
	}
	if o.SelectedListHeight > 0 {
		opts.SelectedListHeight = o.SelectedListHeight
	}
	if o.ResponsiveHeight != "" {
		opts.ResponsiveHeight = o.ResponsiveHeight
	}
	if o.Style != "" {
		opts.WrapperStyle = o.Style
	}
	if o.Overscan != 0 {
		opts.Overscan = o.Overscan
	}
	if o.AsyncFilterThreshold > 0 {
		opts.AsyncFilterThreshold = o.AsyncFilterThreshold
	}
	if o.Matcher != "" {
		m, ok := state.MatcherByName(o.Matcher)
		if !ok {
			return fmt.Errorf("unknown matcher %q", o.Matcher)
		}
		opts.Matcher = m
	}
	if o.ClearScope != "" {
		scope, err := ParseClearScope(o.ClearScope)
		if err != nil {
			return err
		}
		opts.ClearScope = scope
	}
	return nil
}

// Run bootstraps and executes the Bubble Tea program. The accepted selection
// is printed to out.
func Run(cfg Config, out io.Writer) error {
	reg := stories.BuildRegistry()
	if cfg.ListStories {
		return PrintStories(out, reg)
	}
	plan, err := Prepare(cfg, reg)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		plan.Options.OnChange = func(selected []item.Item) {
			logging.Debug("selection changed", map[string]interface{}{"ids": item.IDs(selected)})
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root, widget := plan.Story.New(plan.Options)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if plan.Source != nil {
		go loadSource(ctx, program, *plan.Source, plan.Options.SelectedItems)
		if cfg.Watch {
			watcher, err := source.NewWatcher(ctx, *plan.Source, source.DefaultReloadInterval)
			if err != nil {
				return err
			}
			defer func() {
				watcher.Stop()
				watcher.Wait()
			}()
			go forwardEvents(program, watcher.Events())
		}
	}

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	if widget.Accepted() {
		return PrintSelection(out, widget.SelectedItems())
	}
	return nil
}

// sender is the part of tea.Program used to feed messages from goroutines.
type sender interface {
	Send(tea.Msg)
}

func loadSource(ctx context.Context, p sender, src source.File, preselected []item.Item) {
	items, err := src.Load(ctx)
	if err != nil {
		logging.Error(err)
		events.Source.Error(src.Name(), err)
		p.Send(ui.ErrorMsg{Err: err})
		p.Send(ui.LoadingMsg{Loading: false})
		return
	}
	events.Source.Load(src.Name(), len(items))
	p.Send(ui.ItemsMsg{Items: items})
	if len(preselected) > 0 {
		p.Send(ui.SelectedItemsMsg{Items: preselected})
	}
	p.Send(ui.LoadingMsg{Loading: false})
}

func forwardEvents(p sender, ch <-chan source.Event) {
	for evt := range ch {
		if evt.Err != nil {
			logging.Error(evt.Err)
			p.Send(ui.ErrorMsg{Err: evt.Err})
			continue
		}
		p.Send(ui.ItemsMsg{Items: evt.Items})
	}
}

// PrintSelection writes the accepted items as an aligned id/label table.
func PrintSelection(out io.Writer, items []item.Item) error {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.ID, it.Label}
	}
	return table.Fprint(out, rows, []table.Alignment{table.AlignRight, table.AlignLeft})
}

// PrintStories writes the story catalogue as an aligned name/title table.
func PrintStories(out io.Writer, reg *stories.Registry) error {
	all := reg.All()
	rows := make([][]string, len(all))
	for i, story := range all {
		rows[i] = []string{story.Name, story.Title}
	}
	return table.Fprint(out, rows, nil)
}
