// scope.go implements ambient context merged into events at capture time.

package faultline

// Scope carries ambient tags and processors applied to every event captured
// with it. The caller owns the scope; a capture call only reads it, so the
// same scope can be shared across captures.
type Scope struct {
	// Tags are merged into each captured event. Tags already present on an
	// event win over scope tags with the same key.
	Tags map[string]string

	// Processors run against each captured event in registration order,
	// before the client's send filter.
	Processors []Processor
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		Tags: make(map[string]string),
	}
}

// SetTag sets a tag on the scope.
func (s *Scope) SetTag(key, value string) {
	if s.Tags == nil {
		s.Tags = make(map[string]string)
	}
	s.Tags[key] = value
}

// SetTags sets multiple tags on the scope.
func (s *Scope) SetTags(tags map[string]string) {
	for key, value := range tags {
		s.SetTag(key, value)
	}
}

// AddProcessor appends a processor to the scope's chain.
func (s *Scope) AddProcessor(p Processor) {
	s.Processors = append(s.Processors, p)
}

// mergeScopeTags folds scope tags into the event. Only tags absent from the
// event are copied; an event without tags adopts a copy of the scope's map.
// The scope itself is never mutated.
func mergeScopeTags(event *Event, scope *Scope) {
	if scope == nil || len(scope.Tags) == 0 {
		return
	}

	if event.Tags == nil {
		event.Tags = make(map[string]string, len(scope.Tags))
	}
	for key, value := range scope.Tags {
		if _, ok := event.Tags[key]; !ok {
			event.Tags[key] = value
		}
	}
}
