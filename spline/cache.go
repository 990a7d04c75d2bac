package spline

import (
	"container/list"
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache memoizes Matrices per (depth pattern, lambda). Many profiles in
// a survey share reference depths, so reuse saves the matrix inversion.
//
// The cache is an explicit dependency rather than package state so that
// independent batches (and tests) stay isolated. Entries are evicted
// least-recently-used once the bound is reached; eviction and insertion
// happen atomically with lookups under one mutex, making the cache safe
// for the worker-pool fan-out in the harmonize package.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64]*list.Element
	order    *list.List // front is most recently used
}

type cacheEntry struct {
	hash uint64
	key  string
	m    *Matrices
}

// NewCache returns a cache bounded to capacity entries. Non-positive
// capacity falls back to DefaultCacheSize.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[uint64]*list.Element),
		order:    list.New(),
	}
}

// Get returns the matrices for the given depth pattern, building and
// inserting them on a miss. Repeated calls with an identical pattern
// and lambda return the same *Matrices.
func (c *Cache) Get(ctx context.Context, tops, bottoms []float64, lambda float64) (*Matrices, error) {
	key := patternKey(tops, bottoms, lambda)
	hash := xxhash.Sum64String(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[hash]; ok {
		ent := el.Value.(*cacheEntry)
		if ent.key == key {
			c.order.MoveToFront(el)
			return ent.m, nil
		}
		// hash collision: rebuild and let the new pattern take the slot
	}

	m, err := buildMatrices(ctx, tops, bottoms, lambda)
	if err != nil {
		return nil, err
	}

	if el, ok := c.entries[hash]; ok {
		el.Value = &cacheEntry{hash: hash, key: key, m: m}
		c.order.MoveToFront(el)
		return m, nil
	}

	for c.order.Len() >= c.capacity {
		back := c.order.Back()
		delete(c.entries, back.Value.(*cacheEntry).hash)
		c.order.Remove(back)
	}
	c.entries[hash] = c.order.PushFront(&cacheEntry{hash: hash, key: key, m: m})

	return m, nil
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*list.Element)
	c.order.Init()
}

func patternKey(tops, bottoms []float64, lambda float64) string {
	var b strings.Builder
	for i := range tops {
		b.WriteString(strconv.FormatFloat(tops[i], 'g', -1, 64))
		b.WriteByte(':')
		if i < len(bottoms) {
			b.WriteString(strconv.FormatFloat(bottoms[i], 'g', -1, 64))
		}
		b.WriteByte('|')
	}
	b.WriteString("l=")
	b.WriteString(strconv.FormatFloat(lambda, 'g', -1, 64))
	return b.String()
}
