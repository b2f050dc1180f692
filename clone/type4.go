package clone

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// wlLabels runs `iterations` rounds of Weisfeiler-Lehman relabeling over
// a PDG: each node's new label is the hash of its own label with its
// neighbors' labels, sorted for determinism before hashing so the result
// doesn't depend on edge insertion order.
func wlLabels(g *PDGraph, iterations int) map[string]string {
	labels := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
	}

	neighbors := make(map[string][]string)
	for _, e := range g.Edges {
		neighbors[e.From] = append(neighbors[e.From], e.To)
		neighbors[e.To] = append(neighbors[e.To], e.From)
	}

	for i := 0; i < iterations; i++ {
		next := make(map[string]string, len(labels))
		for _, n := range g.Nodes {
			nbrLabels := make([]string, 0, len(neighbors[n.ID]))
			for _, nb := range neighbors[n.ID] {
				nbrLabels = append(nbrLabels, labels[nb])
			}
			sort.Strings(nbrLabels)
			h := sha256.New()
			h.Write([]byte(labels[n.ID]))
			for _, l := range nbrLabels {
				h.Write([]byte{0})
				h.Write([]byte(l))
			}
			next[n.ID] = hex.EncodeToString(h.Sum(nil))[:16]
		}
		labels = next
	}
	return labels
}

// labelHistogram counts how many times each final WL label occurs,
// the compact signature two PDGs are compared by.
func labelHistogram(labels map[string]string) map[string]int {
	hist := make(map[string]int)
	for _, l := range labels {
		hist[l]++
	}
	return hist
}

// histogramJaccard compares two label histograms as multisets: the
// intersection count is the per-label minimum, matching the
// "compare Jaccard similarity of final label histograms" requirement.
func histogramJaccard(a, b map[string]int) float64 {
	inter, union := 0, 0
	seen := make(map[string]bool)
	for l, ca := range a {
		seen[l] = true
		cb := b[l]
		if ca < cb {
			inter += ca
		} else {
			inter += cb
		}
		if ca > cb {
			union += ca
		} else {
			union += cb
		}
	}
	for l, cb := range b {
		if seen[l] {
			continue
		}
		union += cb
	}
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

// wlBucketKey compacts a histogram into a short string used by the
// graph-LSH pass to limit pairwise WL comparisons to plausible
// candidates, the same coarse-then-precise shape Type-3 uses.
func wlBucketKey(hist map[string]int) string {
	labels := make([]string, 0, len(hist))
	for l := range hist {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	h := sha256.New()
	for _, l := range labels {
		h.Write([]byte(l))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}

// DetectType4 finds semantic clones: each fragment's PDG is relabeled
// by the WL kernel, bucketed by a compact histogram hash to limit
// pairwise work, and candidate pairs within a bucket are compared by
// histogram Jaccard similarity.
func DetectType4(fragments []Fragment, cfg Config) []Pair {
	type entry struct {
		frag Fragment
		hist map[string]int
	}

	buckets := make(map[string][]entry)
	for _, f := range fragments {
		if f.PDG == nil {
			continue
		}
		hist := labelHistogram(wlLabels(f.PDG, cfg.WLIterations))
		key := wlBucketKey(hist)
		buckets[key] = append(buckets[key], entry{frag: f, hist: hist})
	}

	var pairs []Pair
	for _, members := range buckets {
		sort.Slice(members, func(i, j int) bool { return members[i].frag.NodeID < members[j].frag.NodeID })
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				sim := histogramJaccard(members[i].hist, members[j].hist)
				if sim < cfg.SimilarityFloor {
					continue
				}
				pairs = append(pairs, Pair{
					Kind:       Type4,
					A:          members[i].frag.NodeID,
					B:          members[j].frag.NodeID,
					Similarity: sim,
				})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}
