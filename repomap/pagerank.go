package repomap

import "github.com/shivasurya/code-pathfinder/engine/ir"

// PageRankConfig controls the power-iteration solver.
type PageRankConfig struct {
	Damping    float64
	Iterations int
	Tolerance  float64
}

// DefaultPageRankConfig matches the conventional 0.85 damping factor.
func DefaultPageRankConfig() PageRankConfig {
	return PageRankConfig{Damping: 0.85, Iterations: 100, Tolerance: 1e-6}
}

// CategoryWeight is one contribution to a personalized restart vector:
// a node, its category (IDE selection, query match, git change,
// history) and the weight that category carries.
type CategoryWeight struct {
	NodeID   ir.NodeID
	Category string
	Weight   float64
}

// PageRank runs standard PageRank over every edge of the graph,
// whatever its kind, returning a score per node that sums to 1.0.
func PageRank(g *ir.Graph, cfg PageRankConfig) map[ir.NodeID]float64 {
	return personalizedPageRank(g, cfg, nil)
}

// PersonalizedPageRank runs PageRank with a restart vector built from
// per-node category weights: weights across all categories for a node
// are summed, then the combined vector is normalized to sum to 1.0 and
// used both as the restart distribution and the initial scores.
func PersonalizedPageRank(g *ir.Graph, cfg PageRankConfig, weights []CategoryWeight) map[ir.NodeID]float64 {
	combined := make(map[ir.NodeID]float64)
	for _, w := range weights {
		combined[w.NodeID] += w.Weight
	}
	return personalizedPageRank(g, cfg, combined)
}

func personalizedPageRank(g *ir.Graph, cfg PageRankConfig, restart map[ir.NodeID]float64) map[ir.NodeID]float64 {
	out, _, nodes := adjacency(g)
	n := len(nodes)
	if n == 0 {
		return map[ir.NodeID]float64{}
	}

	var personalization map[ir.NodeID]float64
	if restart != nil {
		total := 0.0
		for _, w := range restart {
			total += w
		}
		personalization = make(map[ir.NodeID]float64, len(restart))
		if total > 0 {
			for id, w := range restart {
				personalization[id] = w / total
			}
		}
	}

	restartAt := func(id ir.NodeID) float64 {
		if personalization != nil {
			return personalization[id]
		}
		return 1.0 / float64(n)
	}

	scores := make(map[ir.NodeID]float64, n)
	for _, id := range nodes {
		scores[id] = restartAt(id)
	}

	for iter := 0; iter < cfg.Iterations; iter++ {
		next := make(map[ir.NodeID]float64, n)
		danglingMass := 0.0
		for _, id := range nodes {
			next[id] = (1 - cfg.Damping) * restartAt(id)
			if len(out[id]) == 0 {
				danglingMass += scores[id]
			}
		}
		for _, id := range nodes {
			targets := out[id]
			if len(targets) == 0 {
				continue
			}
			share := cfg.Damping * scores[id] / float64(len(targets))
			for _, t := range targets {
				next[t] += share
			}
		}
		if danglingMass > 0 {
			for _, id := range nodes {
				next[id] += cfg.Damping * danglingMass * restartAt(id)
			}
		}

		delta := 0.0
		for _, id := range nodes {
			diff := next[id] - scores[id]
			if diff < 0 {
				diff = -diff
			}
			delta += diff
		}
		scores = next
		if delta < cfg.Tolerance {
			break
		}
	}

	return scores
}
