package query

import (
	"sort"

	"github.com/shivasurya/code-pathfinder/engine/taint"
)

// cweByKind maps a taint.Kind to its CWE identifier, the vulnerability
// classification TaintQueryBuilder filters on.
var cweByKind = map[taint.Kind]string{
	taint.KindCodeInjection: "CWE-94",
	taint.KindSQLInjection:  "CWE-89",
	taint.KindCommandInject: "CWE-78",
	taint.KindPathTraversal: "CWE-22",
	taint.KindXSS:           "CWE-79",
}

// CWEOf returns the CWE identifier for a taint kind, or "" if unmapped.
func CWEOf(k taint.Kind) string { return cweByKind[k] }

// TaintSeverity derives a coarse severity from confidence: confidence
// is already the engine's monotone evidence signal (sanitizer evidence
// lowers it, hop count decays it), so severity buckets directly off it.
func TaintSeverity(p taint.TaintPath) string {
	switch {
	case p.Sanitized:
		return "low"
	case p.Confidence >= 0.8:
		return "critical"
	case p.Confidence >= 0.5:
		return "high"
	case p.Confidence >= 0.2:
		return "medium"
	default:
		return "low"
	}
}

// TaintQueryBuilder filters a set of discovered taint paths by
// vulnerability class (CWE), severity and minimum confidence.
type TaintQueryBuilder struct {
	paths      []taint.TaintPath
	cwe        map[string]bool
	severity   map[string]bool
	minConf    float64
}

// NewTaintQuery starts a fluent query over a slice of taint paths
// (typically the output of taint.Analyzer.Analyze).
func NewTaintQuery(paths []taint.TaintPath) *TaintQueryBuilder {
	return &TaintQueryBuilder{paths: paths, cwe: make(map[string]bool), severity: make(map[string]bool)}
}

// CWE restricts results to one or more CWE identifiers.
func (b *TaintQueryBuilder) CWE(ids ...string) *TaintQueryBuilder {
	for _, id := range ids {
		b.cwe[id] = true
	}
	return b
}

// Severity restricts results to one or more severity buckets.
func (b *TaintQueryBuilder) Severity(levels ...string) *TaintQueryBuilder {
	for _, l := range levels {
		b.severity[l] = true
	}
	return b
}

// MinConfidence sets the minimum confidence a path must carry.
func (b *TaintQueryBuilder) MinConfidence(min float64) *TaintQueryBuilder {
	b.minConf = min
	return b
}

// Run executes the query, returning paths sorted by (descending
// confidence, source function, sink function) for deterministic,
// highest-risk-first output.
func (b *TaintQueryBuilder) Run() []taint.TaintPath {
	var out []taint.TaintPath
	for _, p := range b.paths {
		if p.Confidence < b.minConf {
			continue
		}
		if len(b.cwe) > 0 && !b.cwe[CWEOf(p.Kind)] {
			continue
		}
		if len(b.severity) > 0 && !b.severity[TaintSeverity(p)] {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		if out[i].SourceFunc != out[j].SourceFunc {
			return out[i].SourceFunc < out[j].SourceFunc
		}
		return out[i].SinkFunc < out[j].SinkFunc
	})
	return out
}
