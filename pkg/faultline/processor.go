// processor.go defines the ordered event transformation chain and its verdicts.

package faultline

// Processor inspects and optionally transforms an event before dispatch.
// A processor receives ownership of the event for the duration of Process
// and must not retain it after returning.
type Processor interface {
	// Name identifies the processor in logs and drop accounting.
	Name() string

	// Process returns Keep(event) to pass the (possibly mutated) event to
	// the next stage, or Drop() to discard it and stop the chain.
	Process(event *Event) Verdict
}

// Verdict is the explicit outcome of a processor step: either the event
// continues down the chain or it is dropped.
type Verdict struct {
	event   *Event
	dropped bool
}

// Keep passes the event to the next stage.
func Keep(event *Event) Verdict {
	return Verdict{event: event}
}

// Drop discards the event and short-circuits the rest of the chain.
func Drop() Verdict {
	return Verdict{dropped: true}
}

// Dropped reports whether the verdict discards the event.
func (v Verdict) Dropped() bool {
	return v.dropped
}

// Event returns the event carried by a keeping verdict, or nil for a drop.
func (v Verdict) Event() *Event {
	return v.event
}

// processorFunc adapts a named function to the Processor interface.
type processorFunc struct {
	name string
	fn   func(*Event) Verdict
}

// NewProcessorFunc wraps fn as a Processor with the given name.
func NewProcessorFunc(name string, fn func(*Event) Verdict) Processor {
	return &processorFunc{name: name, fn: fn}
}

func (p *processorFunc) Name() string {
	return p.name
}

func (p *processorFunc) Process(event *Event) Verdict {
	return p.fn(event)
}

// runChain feeds the event through processors in registration order. The
// first drop wins: runChain stops immediately and returns the dropping
// processor's name. A keeping verdict carrying a nil event counts as a drop
// by that processor, so the surviving event is always non-nil.
func runChain(event *Event, processors []Processor) (*Event, string, bool) {
	for _, p := range processors {
		verdict := p.Process(event)
		if verdict.Dropped() || verdict.Event() == nil {
			return nil, p.Name(), false
		}
		event = verdict.Event()
	}
	return event, "", true
}
