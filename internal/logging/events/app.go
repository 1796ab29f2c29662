package events

import "github.com/atomicstack/multiselect/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Accept(count int) {
	logging.Trace("app.accept", map[string]interface{}{"selected": count})
}

func (AppTracer) Cancel() {
	logging.Trace("app.cancel", nil)
}
