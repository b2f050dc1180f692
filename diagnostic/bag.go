package diagnostic

import "fmt"

// Kind classifies a diagnostic for programmatic filtering (e.g. "show
// only Fatal diagnostics"), independent of its free-text Message.
type Kind string

const (
	KindParseError       Kind = "parse_error"
	KindExtractionError  Kind = "extraction_error"
	KindConfigError      Kind = "config_error"
	KindAnalysisTimeout  Kind = "analysis_timeout"
	KindUnsupportedInput Kind = "unsupported_input"
)

// Range is a source span a diagnostic points at. Zero value means the
// diagnostic isn't tied to a specific location (e.g. a config error).
type Range struct {
	File      string
	StartLine int
	EndLine   int
}

// Error is one structured diagnostic: what went wrong (Kind/Message),
// where (Range), what field/value was implicated if any (Field/Value),
// and what a caller could do about it (Remediation).
type Error struct {
	Kind        Kind
	Message     string
	Field       string
	Value       string
	Range       Range
	Remediation string
}

func (e Error) Error() string {
	if e.Range.File != "" {
		return fmt.Sprintf("%s:%d: %s: %s", e.Range.File, e.Range.StartLine, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Bag collects diagnostics across a run without aborting it; stages
// append to a shared Bag so later stages' findings don't depend on
// earlier ones having zero diagnostics.
type Bag struct {
	entries []Error
}

// Add appends a diagnostic.
func (b *Bag) Add(e Error) { b.entries = append(b.entries, e) }

// Errors returns every collected diagnostic in insertion order.
func (b *Bag) Errors() []Error { return b.entries }

// HasFatal reports whether any collected diagnostic is a kind that
// should abort a run rather than just be reported. Currently only
// config errors are treated as fatal; parse/extraction errors are
// reported but don't stop the rest of the build.
func (b *Bag) HasFatal() bool {
	for _, e := range b.entries {
		if e.Kind == KindConfigError {
			return true
		}
	}
	return false
}
