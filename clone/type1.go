package clone

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// NormalizeTokens strips a fragment's tokens to the form Type-1
// comparison hashes: whitespace collapsed away already by the caller's
// tokenizer, comments never tokenized at all, so normalization here is
// just a stable join.
func NormalizeTokens(tokens []string) string {
	return strings.Join(tokens, "\x1f")
}

// fragmentHash returns the hex SHA-256 of a fragment's normalized token
// stream, the bucket key Type-1 groups fragments by.
func fragmentHash(f Fragment) string {
	sum := sha256.Sum256([]byte(NormalizeTokens(f.Tokens)))
	return hex.EncodeToString(sum[:])
}

// DetectType1 buckets fragments by exact normalized-content hash; every
// pair within a bucket of size >= 2 is reported at similarity 1.0.
// Results are sorted by (A, B) node ID for deterministic output.
func DetectType1(fragments []Fragment) []Pair {
	buckets := make(map[string][]Fragment)
	for _, f := range fragments {
		h := fragmentHash(f)
		buckets[h] = append(buckets[h], f)
	}

	var pairs []Pair
	for _, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].NodeID < bucket[j].NodeID })
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				pairs = append(pairs, Pair{
					Kind:       Type1,
					A:          bucket[i].NodeID,
					B:          bucket[j].NodeID,
					Similarity: 1.0,
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
