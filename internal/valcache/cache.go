// Package valcache deduplicates and memoizes typed constant values. Keys are
// content digests of the resolved value, so physically different storages of
// the same constant share one cache slot.
package valcache

import (
	"encoding/binary"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"lukechampine.com/blake3"

	"github.com/g2mt/zig/internal/value"
)

// DigestSize is the byte length of a cache key.
const DigestSize = 32

// Digest is a blake3 content digest of a typed value.
type Digest [DigestSize]byte

// Cache is an in-memory dedup cache of typed values. Digest collisions are
// tolerated: every hit is verified with a structural comparison before the
// cached value is returned.
type Cache struct {
	mu     sync.Mutex
	lru    *simplelru.LRU[Digest, value.TypedValue]
	ctx    *value.Context
	hits   uint64
	misses uint64
}

// New builds a cache holding at most capacity values.
func New(capacity int, ctx *value.Context) (*Cache, error) {
	lru, err := simplelru.NewLRU[Digest, value.TypedValue](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: lru, ctx: ctx}, nil
}

// Key computes the content digest of tv.
func Key(tv value.TypedValue, ctx *value.Context) (Digest, error) {
	h := blake3.New(DigestSize, nil)
	if err := value.Hash(tv, h, ctx); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// RenderKey computes the digest of tv together with the render parameters, so
// differently bounded renderings of one value key separately.
func RenderKey(tv value.TypedValue, depth int, limits value.RenderLimits, ctx *value.Context) (Digest, error) {
	h := blake3.New(DigestSize, nil)
	if err := value.Hash(tv, h, ctx); err != nil {
		return Digest{}, err
	}
	var params [24]byte
	binary.LittleEndian.PutUint64(params[0:], uint64(depth))
	binary.LittleEndian.PutUint64(params[8:], uint64(limits.MaxAggregateItems))
	binary.LittleEndian.PutUint64(params[16:], uint64(limits.MaxStringLen))
	if _, err := h.Write(params[:]); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// Intern returns the canonical representative for tv: the cached value when
// one structurally equal to tv is already present, tv itself otherwise (in
// which case tv becomes the representative).
func (c *Cache) Intern(tv value.TypedValue) (value.TypedValue, error) {
	key, err := Key(tv, c.ctx)
	if err != nil {
		return value.TypedValue{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.lru.Get(key); ok && value.Eql(cached, tv, c.ctx) {
		c.hits++
		return cached, nil
	}
	c.misses++
	c.lru.Add(key, tv)
	return tv, nil
}

// Lookup returns the value cached under key, verified against probe.
func (c *Cache) Lookup(key Digest, probe value.TypedValue) (value.TypedValue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.lru.Get(key)
	if !ok || !value.Eql(cached, probe, c.ctx) {
		return value.TypedValue{}, false
	}
	return cached, true
}

// Len returns the number of cached values.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns hit and miss counts since construction.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
