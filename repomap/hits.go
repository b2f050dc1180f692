package repomap

import (
	"math"

	"github.com/shivasurya/code-pathfinder/engine/ir"
)

// HITSConfig controls the mutual-reinforcement iteration.
type HITSConfig struct {
	Iterations int
}

// DefaultHITSConfig runs enough iterations to converge on graphs this
// engine's size class produces.
func DefaultHITSConfig() HITSConfig { return HITSConfig{Iterations: 50} }

// HITSScores holds authority and hub scores per node, each L2-normalized
// so they're comparable across runs.
type HITSScores struct {
	Authority map[ir.NodeID]float64
	Hub       map[ir.NodeID]float64
}

// HITS runs Kleinberg's hub/authority mutual-reinforcement iteration: a
// good hub points to many good authorities, a good authority is pointed
// to by many good hubs.
func HITS(g *ir.Graph, cfg HITSConfig) HITSScores {
	out, in, nodes := adjacency(g)

	auth := make(map[ir.NodeID]float64, len(nodes))
	hub := make(map[ir.NodeID]float64, len(nodes))
	for _, id := range nodes {
		auth[id] = 1.0
		hub[id] = 1.0
	}

	for iter := 0; iter < cfg.Iterations; iter++ {
		newAuth := make(map[ir.NodeID]float64, len(nodes))
		for _, id := range nodes {
			sum := 0.0
			for _, src := range in[id] {
				sum += hub[src]
			}
			newAuth[id] = sum
		}
		normalize(newAuth, nodes)

		newHub := make(map[ir.NodeID]float64, len(nodes))
		for _, id := range nodes {
			sum := 0.0
			for _, tgt := range out[id] {
				sum += newAuth[tgt]
			}
			newHub[id] = sum
		}
		normalize(newHub, nodes)

		auth, hub = newAuth, newHub
	}

	return HITSScores{Authority: auth, Hub: hub}
}

func normalize(scores map[ir.NodeID]float64, nodes []ir.NodeID) {
	sumSq := 0.0
	for _, id := range nodes {
		sumSq += scores[id] * scores[id]
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for _, id := range nodes {
		scores[id] /= norm
	}
}
