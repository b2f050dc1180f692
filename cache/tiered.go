package cache

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Stats tracks per-tier hit/miss/eviction counters, exposed for
// observability and for the determinism/cache-correctness properties'
// test harnesses.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

func (s *Stats) hit()   { atomic.AddInt64(&s.Hits, 1) }
func (s *Stats) miss()  { atomic.AddInt64(&s.Misses, 1) }
func (s *Stats) evict() { atomic.AddInt64(&s.Evictions, 1) }

// Snapshot returns a point-in-time copy safe to read concurrently.
func (s *Stats) Snapshot() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&s.Hits),
		Misses:    atomic.LoadInt64(&s.Misses),
		Evictions: atomic.LoadInt64(&s.Evictions),
	}
}

// L0 is the in-process session cache: an exact map for hits plus a
// Bloom filter so a guaranteed-absent key never even probes the map.
type L0 struct {
	mu     sync.RWMutex
	values map[Key][]byte
	bloom  *bloomFilter
	stats  Stats
}

// NewL0 creates an empty session cache sized for up to `capacityHint`
// entries (used to size the Bloom filter's bit array).
func NewL0(capacityHint int) *L0 {
	bits := capacityHint * 10
	if bits < 1024 {
		bits = 1024
	}
	return &L0{values: make(map[Key][]byte), bloom: newBloomFilter(bits, 4)}
}

func (c *L0) Get(k Key) ([]byte, bool) {
	if !c.bloom.mayContain(string(k)) {
		c.stats.miss()
		return nil, false
	}
	c.mu.RLock()
	v, ok := c.values[k]
	c.mu.RUnlock()
	if ok {
		c.stats.hit()
	} else {
		c.stats.miss()
	}
	return v, ok
}

func (c *L0) Set(k Key, v []byte) {
	c.mu.Lock()
	c.values[k] = v
	c.mu.Unlock()
	c.bloom.add(string(k))
}

func (c *L0) Evict(k Key) {
	c.mu.Lock()
	_, existed := c.values[k]
	delete(c.values, k)
	c.mu.Unlock()
	if existed {
		c.stats.evict()
	}
}

// L1 is a size- and TTL-bounded in-memory LRU.
type L1 struct {
	cache *lru.LRU[Key, []byte]
	stats Stats
}

// NewL1 builds an L1 tier with the given entry cap and TTL.
func NewL1(size int, ttl time.Duration) *L1 {
	l1 := &L1{}
	l1.cache = lru.NewLRU[Key, []byte](size, func(Key, []byte) { l1.stats.evict() }, ttl)
	return l1
}

func (c *L1) Get(k Key) ([]byte, bool) {
	v, ok := c.cache.Get(k)
	if ok {
		c.stats.hit()
	} else {
		c.stats.miss()
	}
	return v, ok
}

func (c *L1) Set(k Key, v []byte) { c.cache.Add(k, v) }
func (c *L1) Evict(k Key)         { c.cache.Remove(k) }

// L2 is a directory-backed disk cache with optional gzip compression.
// A given fingerprint's entry is written once and never mutated
// in-place: invalidation always writes a fresh key.
type L2 struct {
	dir      string
	compress bool
	stats    Stats
}

// NewL2 creates (if needed) the cache directory and returns an L2 tier
// rooted there.
func NewL2(dir string, compress bool) (*L2, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &L2{dir: dir, compress: compress}, nil
}

func (c *L2) path(k Key) string {
	return filepath.Join(c.dir, string(k)+".cache")
}

func (c *L2) Get(k Key) ([]byte, bool) {
	f, err := os.Open(c.path(k))
	if err != nil {
		c.stats.miss()
		return nil, false
	}
	defer f.Close()

	var r io.Reader = f
	if c.compress {
		gz, err := gzip.NewReader(f)
		if err != nil {
			c.stats.miss()
			return nil, false
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		c.stats.miss()
		return nil, false
	}
	c.stats.hit()
	return data, true
}

// Set writes synchronously; callers that want background writes should
// call this from their own goroutine.
func (c *L2) Set(k Key, v []byte) error {
	f, err := os.Create(c.path(k))
	if err != nil {
		return err
	}
	defer f.Close()

	if !c.compress {
		_, err = f.Write(v)
		return err
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write(v); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

func (c *L2) Evict(k Key) {
	if err := os.Remove(c.path(k)); err == nil {
		c.stats.evict()
	}
}

// Tiered composes L0/L1/L2 into the full cache: a lookup checks L0,
// then L1 (promoting into L0 on hit), then L2 (promoting into L0+L1 on
// hit). A write populates every tier; invalidation evicts from all
// three since L2 entries for a given fingerprint are immutable (a
// changed fingerprint is a new key, not an overwrite).
type Tiered struct {
	L0 *L0
	L1 *L1
	L2 *L2
}

// NewTiered wires the three tiers with the given sizes.
func NewTiered(l0Capacity, l1Size int, l1TTL time.Duration, l2Dir string, l2Compress bool) (*Tiered, error) {
	l2, err := NewL2(l2Dir, l2Compress)
	if err != nil {
		return nil, err
	}
	return &Tiered{
		L0: NewL0(l0Capacity),
		L1: NewL1(l1Size, l1TTL),
		L2: l2,
	}, nil
}

// Get checks L0, L1, then L2 in order, promoting hits upward.
func (t *Tiered) Get(k Key) ([]byte, bool) {
	if v, ok := t.L0.Get(k); ok {
		return v, true
	}
	if v, ok := t.L1.Get(k); ok {
		t.L0.Set(k, v)
		return v, true
	}
	if v, ok := t.L2.Get(k); ok {
		t.L0.Set(k, v)
		t.L1.Set(k, v)
		return v, true
	}
	return nil, false
}

// Set writes through every tier. L2's write can be deferred to a
// background goroutine by the caller (e.g. the orchestrator) when the
// write shouldn't block the analysis stage that produced the value.
func (t *Tiered) Set(k Key, v []byte) error {
	t.L0.Set(k, v)
	t.L1.Set(k, v)
	return t.L2.Set(k, v)
}

// Invalidate evicts a key from every tier. Called when a file's
// fingerprint changes; the old fingerprint's key is never reused.
func (t *Tiered) Invalidate(k Key) {
	t.L0.Evict(k)
	t.L1.Evict(k)
	t.L2.Evict(k)
}
