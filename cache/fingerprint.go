// Package cache implements the tiered result cache (L0 session, L1
// in-memory LRU, L2 disk) keyed by content fingerprint, plus the
// persistent Repository/Snapshot/Chunk/Dependency store.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint is a cryptographic-quality content hash of canonicalized
// input bytes (file bytes, or a subtree hash for file-level keys).
type Fingerprint string

// NewFingerprint hashes canonicalized bytes with SHA-256.
func NewFingerprint(content []byte) Fingerprint {
	sum := sha256.Sum256(content)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// Key is the cache key format: "{stage_id}:{stage_version}:{fingerprint}".
type Key string

// NewKey builds a cache key from a stage identifier, its version and a
// content fingerprint.
func NewKey(stageID string, stageVersion int, fp Fingerprint) Key {
	return Key(fmt.Sprintf("%s:%d:%s", stageID, stageVersion, fp))
}
