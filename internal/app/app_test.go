package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/multiselect/internal/item"
	"github.com/atomicstack/multiselect/internal/logging"
	"github.com/atomicstack/multiselect/internal/source"
	"github.com/atomicstack/multiselect/internal/stories"
	"github.com/atomicstack/multiselect/internal/testutil"
	"github.com/atomicstack/multiselect/internal/ui"
	"github.com/atomicstack/multiselect/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() Config {
	return Config{MaxSelected: -1}
}

func TestPrepareDefaultStory(t *testing.T) {
	plan, err := Prepare(baseConfig(), stories.BuildRegistry())
	require.NoError(t, err)
	assert.Equal(t, stories.DefaultStory, plan.Story.Name)
	assert.Len(t, plan.Options.Items, 50)
	assert.Nil(t, plan.Source)
	assert.False(t, plan.Options.Loading)
	assert.Equal(t, ui.DefaultMessages(), plan.Options.Messages)
}

func TestPrepareAppliesOverrides(t *testing.T) {
	cfg := baseConfig()
	cfg.Story = "Max-Selected"
	cfg.Items = 7
	cfg.MaxSelected = 0
	cfg.Matcher = "fuzzy"
	cfg.Width, cfg.Height, cfg.ShowFooter = 90, 25, true
	cfg.Overrides = Overrides{
		Messages:   ui.Messages{NoItems: "Empty"},
		ListHeight: 9,
		ClearScope: "visible",
		Style:      "custom",
	}
	plan, err := Prepare(cfg, stories.BuildRegistry())
	require.NoError(t, err)
	opts := plan.Options
	assert.Equal(t, "max-selected", plan.Story.Name)
	assert.Len(t, opts.Items, 7)
	assert.Zero(t, opts.MaxSelectedItems, "explicit zero lifts the story's cap")
	assert.Equal(t, "fuzzy", opts.Matcher.Name())
	assert.Equal(t, 90, opts.Width)
	assert.Equal(t, 25, opts.Height)
	assert.True(t, opts.ShowFooter)
	assert.Equal(t, 9, opts.ListHeight)
	assert.Equal(t, state.ClearVisibleItems, opts.ClearScope)
	assert.Equal(t, "custom", opts.WrapperStyle)
	assert.Equal(t, "Empty", opts.Messages.NoItems)
	assert.Equal(t, "You can select up to 4 items", opts.Messages.DisabledItemsTooltip, "story messages survive")
}

func TestPrepareKeepsStoryCapByDefault(t *testing.T) {
	cfg := baseConfig()
	cfg.Story = "max-selected"
	plan, err := Prepare(cfg, stories.BuildRegistry())
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Options.MaxSelectedItems)
}

func TestPrepareFileSourceStartsLoading(t *testing.T) {
	cfg := baseConfig()
	cfg.ItemsFile = "items.yaml"
	plan, err := Prepare(cfg, stories.BuildRegistry())
	require.NoError(t, err)
	require.NotNil(t, plan.Source)
	assert.Equal(t, "items.yaml", plan.Source.Path)
	assert.True(t, plan.Options.Loading)
	assert.Empty(t, plan.Options.Items)
}

func TestPrepareErrors(t *testing.T) {
	cfg := baseConfig()
	cfg.Story = "nope"
	_, err := Prepare(cfg, stories.BuildRegistry())
	assert.ErrorContains(t, err, `unknown story "nope"`)

	cfg = baseConfig()
	cfg.Matcher = "regex"
	_, err = Prepare(cfg, stories.BuildRegistry())
	assert.ErrorContains(t, err, "unknown matcher")

	cfg = baseConfig()
	cfg.Overrides.ClearScope = "half"
	_, err = Prepare(cfg, stories.BuildRegistry())
	assert.ErrorContains(t, err, "unknown clear scope")
}

func TestParseClearScope(t *testing.T) {
	for value, want := range map[string]state.ClearScope{"": state.ClearAllItems, "ALL": state.ClearAllItems, " visible ": state.ClearVisibleItems} {
		got, err := ParseClearScope(value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}
}

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	items := []item.Item{{ID: "3", Label: "Item 3"}, {ID: "12", Label: "Item 12"}}
	require.NoError(t, PrintSelection(&buf, items))
	assert.Equal(t, " 3  Item 3\n12  Item 12\n", buf.String())
}

func TestPrintStories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintStories(&buf, stories.BuildRegistry()))
	testutil.AssertGolden(t, "list-stories.golden", buf.String())
}

func TestRunListStories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(Config{ListStories: true}, &buf))
	assert.Contains(t, buf.String(), "custom-value")
}

type recordingSender struct {
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.msgs = append(r.msgs, msg)
}

func TestLoadSourceSendsItemsThenStopsLoading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))
	rec := &recordingSender{}
	pre := []item.Item{{ID: "b", Label: "b"}}
	loadSource(context.Background(), rec, source.File{Path: path}, pre)
	require.Len(t, rec.msgs, 3)
	assert.Equal(t, []string{"a", "b"}, item.IDs(rec.msgs[0].(ui.ItemsMsg).Items))
	assert.Equal(t, ui.SelectedItemsMsg{Items: pre}, rec.msgs[1])
	assert.Equal(t, ui.LoadingMsg{Loading: false}, rec.msgs[2])
}

func TestLoadSourceReportsErrors(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "test.log"))
	rec := &recordingSender{}
	loadSource(context.Background(), rec, source.File{Path: filepath.Join(t.TempDir(), "missing.txt")}, nil)
	require.Len(t, rec.msgs, 2)
	errMsg, ok := rec.msgs[0].(ui.ErrorMsg)
	require.True(t, ok)
	assert.ErrorContains(t, errMsg.Err, "read items")
	assert.Equal(t, ui.LoadingMsg{Loading: false}, rec.msgs[1])
}

func TestForwardEvents(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "test.log"))
	ch := make(chan source.Event, 2)
	boom := errors.New("boom")
	ch <- source.Event{Items: item.Generate(2)}
	ch <- source.Event{Err: boom}
	close(ch)
	rec := &recordingSender{}
	forwardEvents(rec, ch)
	require.Len(t, rec.msgs, 2)
	assert.Len(t, rec.msgs[0].(ui.ItemsMsg).Items, 2)
	assert.Equal(t, ui.ErrorMsg{Err: boom}, rec.msgs[1])
}
