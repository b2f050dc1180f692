package taint

// TaintPath is one confirmed (or suspected, if Sanitized is false but
// confidence has decayed) source-to-sink flow.
type TaintPath struct {
	Kind        Kind
	Steps       []string // variable/call-target names from source to sink, in order
	SourceFunc  string
	SourceLine  uint32
	SinkFunc    string
	SinkLine    uint32
	SinkArg     string
	Confidence  float64
	Sanitized   bool
	CallContext []string // bounded call-string of function FQNs this flow crossed
}
