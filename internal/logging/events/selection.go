package events

import "github.com/atomicstack/multiselect/internal/logging"

type SelectionTracer struct{}

var Selection = SelectionTracer{}

func (SelectionTracer) Outcome(op, id, outcome string, count int) {
	logging.Trace("selection."+op, map[string]interface{}{"id": id, "outcome": outcome, "selected": count})
}

func (SelectionTracer) All(outcome string, count int) {
	logging.Trace("selection.all", map[string]interface{}{"outcome": outcome, "selected": count})
}

func (SelectionTracer) Clear(outcome string, count int) {
	logging.Trace("selection.clear", map[string]interface{}{"outcome": outcome, "selected": count})
}

func (SelectionTracer) Limit(id string, limit int) {
	logging.Trace("selection.limit", map[string]interface{}{"id": id, "max": limit})
}

func (SelectionTracer) Disabled(id string) {
	logging.Trace("selection.disabled", map[string]interface{}{"id": id})
}
