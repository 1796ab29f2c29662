package events

import "github.com/atomicstack/multiselect/internal/logging"

type ScrollTracer struct{}

var Scroll = ScrollTracer{}

func (ScrollTracer) Apply(listID string, offset, start, end int) {
	logging.Trace("scroll.apply", map[string]interface{}{"list": listID, "offset": offset, "start": start, "end": end})
}

func (ScrollTracer) Deferred(listID string, pending int) {
	logging.Trace("scroll.deferred", map[string]interface{}{"list": listID, "pending": pending})
}
