package grading

import "time"

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeUpstreamError  Outcome = "upstream_error"
	OutcomeTransportError Outcome = "transport_error"
)

// Run is one invocation of the grading relay.
type Run struct {
	ID           string
	Trigger      string
	Success      bool
	Outcome      Outcome
	Message      string
	StatusCode   int
	UpstreamBody any
	Duration     time.Duration
	StartedAt    time.Time
	TraceID      string
}
