// Package repomap runs link-analysis over the IR graph: PageRank,
// Personalized PageRank and HITS, plus the mode detector that picks
// which of those an analysis run actually needs. The hierarchical
// repository map itself is ir.Tree; this package does not build one.
package repomap

import (
	"sort"

	"github.com/shivasurya/code-pathfinder/engine/ir"
)

// Mode selects how much link-analysis work an analysis run performs.
type Mode string

const (
	ModeFast         Mode = "Fast"
	ModeAI           Mode = "AI"
	ModeArchitecture Mode = "Architecture"
	ModeFull         Mode = "Full"
)

// Intent is the declared purpose of an analysis run, the input the mode
// detector selects from.
type Intent string

const (
	IntentQuickLookup     Intent = "quick-lookup"
	IntentCodeCompletion  Intent = "code-completion"
	IntentArchReview      Intent = "architecture-review"
	IntentDeepAudit       Intent = "deep-audit"
)

// DetectMode maps a declared intent to an analysis mode. Fast is the
// default for any intent the table doesn't recognize.
func DetectMode(intent Intent) Mode {
	switch intent {
	case IntentCodeCompletion:
		return ModeAI
	case IntentArchReview:
		return ModeArchitecture
	case IntentDeepAudit:
		return ModeFull
	default:
		return ModeFast
	}
}

// adjacency builds forward and reverse adjacency maps from an IR graph's
// edges, the shared input every link-analysis algorithm below walks.
func adjacency(g *ir.Graph) (out map[ir.NodeID][]ir.NodeID, in map[ir.NodeID][]ir.NodeID, nodes []ir.NodeID) {
	out = make(map[ir.NodeID][]ir.NodeID)
	in = make(map[ir.NodeID][]ir.NodeID)
	for id := range g.Nodes {
		nodes = append(nodes, id)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	for _, e := range g.Edges {
		out[e.SourceID] = append(out[e.SourceID], e.TargetID)
		in[e.TargetID] = append(in[e.TargetID], e.SourceID)
	}
	return out, in, nodes
}
