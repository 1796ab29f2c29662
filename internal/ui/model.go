package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/theme"
	"github.com/atomicstack/multiselect/internal/ui/command"
	"github.com/atomicstack/multiselect/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusList focus = iota
	focusSelected
)

func (f focus) String() string {
	if f == focusSelected {
		return "selected"
	}
	return "list"
}

type msgHandler func(tea.Msg) tea.Cmd

// ItemsMsg replaces the item set, e.g. after a source reload. It also clears
// an error shown by a previous ErrorMsg.
type ItemsMsg struct {
	Items []item.Item
}

// SelectedItemsMsg replaces the selection without notifying OnChange.
type SelectedItemsMsg struct {
	Items []item.Item
}

// LoadingMsg toggles the loading indicator.
type LoadingMsg struct {
	Loading bool
}

// ErrorMsg surfaces a non-fatal error in the status line.
type ErrorMsg struct {
	Err error
}

// Model implements the Bubble Tea model for the multi-select list.
type Model struct {
	opts     Options
	messages Messages
	renderer Renderer
	styles   *theme.Styles

	list     *state.List
	selected state.Viewport
	selCur   int
	focus    focus

	loading    bool
	spinner    spinner.Model
	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	responsive  int

	scroll            *scrollThrottle
	filterCursor      cursor.Model
	filterCursorDirty bool
	ticket            *state.QueryTicket

	accepted  bool
	cancelled bool

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel initialises the UI state from opts.
func NewModel(opts Options) *Model {
	opts.Messages = opts.Messages.Merge(DefaultMessages())
	renderer := opts.Renderer
	if renderer == nil {
		renderer = DefaultRenderer{}
	}
	id := opts.ID
	if id == "" {
		id = "multiselect"
	}
	styles := opts.styles()
	m := &Model{
		opts:     opts,
		messages: opts.Messages,
		renderer: renderer,
		styles:   styles,
		loading:  opts.Loading,
		bus:      command.New(),
		selected: state.Viewport{ItemHeight: 1},
		scroll:   newScrollThrottle(opts.ScrollInterval),
	}
	m.list = state.NewList(id, state.Config{
		Items:          opts.Items,
		Selected:       opts.SelectedItems,
		MaxSelected:    opts.MaxSelectedItems,
		Matcher:        opts.Matcher,
		Comparator:     opts.Comparator,
		Search:         opts.Search,
		ClearScope:     opts.ClearScope,
		OnChange:       opts.OnChange,
		ItemHeight:     opts.itemHeight(),
		ItemHeightFunc: opts.ItemHeightFunc,
		Overscan:       opts.Overscan,
		AsyncThreshold: opts.AsyncFilterThreshold,
	})
	if pct, err := ParseResponsiveHeight(opts.ResponsiveHeight); err == nil {
		m.responsive = pct
	} else {
		m.errMsg = err.Error()
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m.spinner = sp

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	if opts.StaticCursor {
		c.SetMode(cursor.CursorStatic)
	}
	m.filterCursor = c
	m.registerHandlers()
	m.syncViewport()
	return m
}

// List exposes the underlying list state.
func (m *Model) List() *state.List {
	return m.list
}

// SelectedItems returns the current selection in selection order.
func (m *Model) SelectedItems() []item.Item {
	return m.list.SelectedItems()
}

// Accepted reports whether the user confirmed the selection.
func (m *Model) Accepted() bool {
	return m.accepted
}

// Cancelled reports whether the user dismissed the widget.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Loading reports whether the loading indicator is active.
func (m *Model) Loading() bool {
	return m.loading
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.opts.ShowSearch {
		if cmd := m.filterCursor.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.loading {
		cmds = append(cmds, m.spinner.Tick)
	}
	if cmd := m.filterCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.list.SyncSearch() {
		m.syncViewport()
	}
	if cmd := m.filterCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(scrollFlushMsg{}):    m.handleScrollFlushMsg,
		reflect.TypeOf(filterResultMsg{}):   m.handleFilterResultMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleCommandResultMsg,
		reflect.TypeOf(ItemsMsg{}):          m.handleItemsMsg,
		reflect.TypeOf(SelectedItemsMsg{}):  m.handleSelectedItemsMsg,
		reflect.TypeOf(LoadingMsg{}):        m.handleLoadingMsg,
		reflect.TypeOf(ErrorMsg{}):          m.handleErrorMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleItemsMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(ItemsMsg)
	if !ok {
		return nil
	}
	m.errMsg = ""
	m.SetItems(update.Items)
	return nil
}

func (m *Model) handleSelectedItemsMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(SelectedItemsMsg)
	if !ok {
		return nil
	}
	m.list.SetSelectedItems(update.Items)
	m.clampSelectedCursor()
	return nil
}

func (m *Model) handleLoadingMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(LoadingMsg)
	if !ok {
		return nil
	}
	return m.SetLoading(update.Loading)
}

func (m *Model) handleErrorMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(ErrorMsg)
	if !ok || update.Err == nil {
		return nil
	}
	m.errMsg = update.Err.Error()
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.loading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// SetItems replaces the item set, pruning selections that disappeared.
func (m *Model) SetItems(items []item.Item) {
	m.list.SetItems(items)
	m.ticket = nil
	m.clampSelectedCursor()
	m.syncViewport()
}

// SetLoading toggles the loading indicator and returns the spinner command.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	was := m.loading
	m.loading = loading
	if loading && !was {
		return m.spinner.Tick
	}
	return nil
}
