package events

import "github.com/atomicstack/multiselect/internal/logging"

type SourceTracer struct{}

var Source = SourceTracer{}

func (SourceTracer) Load(name string, count int) {
	logging.Trace("source.load", map[string]interface{}{"source": name, "items": count})
}

func (SourceTracer) Reload(name string, count int) {
	logging.Trace("source.reload", map[string]interface{}{"source": name, "items": count})
}

func (SourceTracer) Error(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("source.error", map[string]interface{}{"source": name, "error": err.Error()})
}
