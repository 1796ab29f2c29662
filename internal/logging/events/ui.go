package events

import "github.com/atomicstack/multiselect/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (UITracer) Cursor(listID string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"list": listID, "cursor": cursor})
}

func (UITracer) Focus(panel string) {
	logging.Trace("ui.focus", map[string]interface{}{"panel": panel})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (FilterTracer) Cleared(listID string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": listID})
}

func (FilterTracer) WordBackspace(listID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Cursor(listID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"list": listID, "cursor": pos})
}

func (FilterTracer) CursorWord(listID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"list": listID, "cursor": pos})
}

func (FilterTracer) Append(listID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Backspace(listID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Deferred(listID, filter string, seq uint64) {
	logging.Trace("filter.deferred", map[string]interface{}{"list": listID, "filter": filter, "ticket": seq})
}

func (FilterTracer) Applied(listID, filter string, matches int) {
	logging.Trace("filter.applied", map[string]interface{}{"list": listID, "filter": filter, "matches": matches})
}

func (FilterTracer) Dropped(listID string, seq uint64) {
	logging.Trace("filter.dropped", map[string]interface{}{"list": listID, "ticket": seq})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (CommandTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"id": id, "error": err.Error()})
}
