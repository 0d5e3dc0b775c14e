package model

import "time"

// OutboundMessage is a transient send request handed to the dispatcher.
// Exactly one of Body or TemplateID is set: free-text replies inside an
// interactive conversation window, templated sends outside it. Never
// persisted.
type OutboundMessage struct {
	TargetPhone string
	Body        string
	TemplateID  string
	// Variables substitute positionally into the template.
	Variables  []string
	EnqueuedAt time.Time
}

// Templated reports whether the message must go out as a pre-approved
// template send.
func (m OutboundMessage) Templated() bool {
	return m.TemplateID != ""
}
