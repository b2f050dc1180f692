package clone

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// shingles returns the set of k-token windows over a token stream, the
// unit MinHash hashes.
func shingles(tokens []string, k int) map[string]bool {
	set := make(map[string]bool)
	if len(tokens) < k {
		if len(tokens) > 0 {
			set[NormalizeTokens(tokens)] = true
		}
		return set
	}
	for i := 0; i+k <= len(tokens); i++ {
		set[NormalizeTokens(tokens[i:i+k])] = true
	}
	return set
}

// minHashSignature computes a MinHash signature of a shingle set using
// `numHashes` independently-seeded FNV-1a hashes.
func minHashSignature(shingleSet map[string]bool, numHashes int) []uint64 {
	sig := make([]uint64, numHashes)
	for i := range sig {
		sig[i] = ^uint64(0)
	}
	for s := range shingleSet {
		for i := 0; i < numHashes; i++ {
			h := fnv.New64a()
			fmt.Fprintf(h, "%d:%s", i, s)
			v := h.Sum64()
			if v < sig[i] {
				sig[i] = v
			}
		}
	}
	return sig
}

// lshBuckets splits a MinHash signature into bands and returns one
// bucket key per band; two fragments sharing any band's key are a
// candidate pair for a precise comparison.
func lshBuckets(sig []uint64, bands int) []string {
	rows := len(sig) / bands
	if rows == 0 {
		rows = 1
		bands = len(sig)
	}
	keys := make([]string, 0, bands)
	for b := 0; b < bands; b++ {
		start := b * rows
		end := start + rows
		if end > len(sig) {
			end = len(sig)
		}
		keys = append(keys, fmt.Sprintf("%d:%v", b, sig[start:end]))
	}
	return keys
}

// jaccard computes |A∩B| / |A∪B| over two shingle sets, the
// near-miss similarity score LSH candidates are re-ranked by. It is
// plain set Jaccard: shingles are unweighted and no edit distance is
// computed.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for s := range a {
		if b[s] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// DetectType3 finds near-miss clones: MinHash-LSH narrows the pairwise
// candidate set, then each candidate pair is scored by shingle Jaccard
// similarity and reported if it meets cfg.SimilarityFloor.
func DetectType3(fragments []Fragment, cfg Config) []Pair {
	type entry struct {
		frag     Fragment
		shingles map[string]bool
		sig      []uint64
	}

	entries := make([]entry, 0, len(fragments))
	buckets := make(map[string][]int)
	for idx, f := range fragments {
		sh := shingles(f.Tokens, cfg.ShingleSize)
		sig := minHashSignature(sh, cfg.MinHashFuncs)
		entries = append(entries, entry{frag: f, shingles: sh, sig: sig})
		for _, k := range lshBuckets(sig, cfg.LSHBands) {
			buckets[k] = append(buckets[k], idx)
		}
	}

	seen := make(map[[2]int]bool)
	var pairs []Pair
	for _, members := range buckets {
		sort.Ints(members)
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				key := [2]int{members[i], members[j]}
				if seen[key] {
					continue
				}
				seen[key] = true

				a, b := entries[members[i]], entries[members[j]]
				if a.frag.NodeID == b.frag.NodeID {
					continue
				}
				sim := jaccard(a.shingles, b.shingles)
				if sim < cfg.SimilarityFloor {
					continue
				}
				pairs = append(pairs, Pair{Kind: Type3, A: a.frag.NodeID, B: b.frag.NodeID, Similarity: sim})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return dedupePairs(pairs)
}

func dedupePairs(pairs []Pair) []Pair {
	out := pairs[:0]
	var lastA, lastB string
	first := true
	for _, p := range pairs {
		if !first && string(p.A) == lastA && string(p.B) == lastB {
			continue
		}
		out = append(out, p)
		lastA, lastB = string(p.A), string(p.B)
		first = false
	}
	return out
}
