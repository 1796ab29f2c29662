package command

import (
	"fmt"
	"sync"

	"github.com/atomicstack/multiselect/internal/logging/events"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs a side effect outside the update loop.
type Handler func() error

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// ResultMsg reports the outcome of an executed request back to the model.
type ResultMsg struct {
	ID    string
	Label string
	Err   error
}

// Bus coordinates the execution of side-effecting actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			return ResultMsg{ID: req.ID, Label: req.Label, Err: fmt.Errorf("%s: no handler", req.ID)}
		}
		err := req.Handler()
		if err != nil {
			events.Command.Error(req.ID, err)
		}
		msg := ResultMsg{ID: req.ID, Label: req.Label, Err: err}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

var (
	clipboardMu    sync.Mutex
	clipboardWrite = clipboard.WriteAll
)

// SetClipboardWriter replaces the clipboard backend and returns a restore func.
func SetClipboardWriter(fn func(string) error) func() {
	clipboardMu.Lock()
	prev := clipboardWrite
	clipboardWrite = fn
	clipboardMu.Unlock()
	return func() {
		clipboardMu.Lock()
		clipboardWrite = prev
		clipboardMu.Unlock()
	}
}

// CopyRequest builds a request that places text on the system clipboard.
func CopyRequest(label, text string) Request {
	return Request{
		ID:    "clipboard:copy",
		Label: label,
		Handler: func() error {
			clipboardMu.Lock()
			write := clipboardWrite
			clipboardMu.Unlock()
			if err := write(text); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			return nil
		},
	}
}
