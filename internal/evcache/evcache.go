// Package evcache provides a validated evidence cache for predictor
// scores and population records. Entries carry an integrity hash and a
// category-specific TTL; a lookup trusts an entry only after
// revalidating it, and purges anything that fails.
package evcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// Category separates cache namespaces with distinct lifetimes.
type Category string

const (
	CategoryPredictor  Category = "predictor"
	CategoryPopulation Category = "population"
)

// TTL per category. Predictor scores churn with tool releases faster
// than population frequencies do.
const (
	predictorTTL  = 7 * 24 * time.Hour
	populationTTL = 30 * 24 * time.Hour
)

// Key identifies one cached record.
type Key struct {
	Category  Category
	Source    string
	VariantID string
	Version   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.Category, k.Source, k.VariantID, k.Version)
}

// TTL returns the lifetime for the key's category.
func (k Key) TTL() time.Duration {
	if k.Category == CategoryPopulation {
		return populationTTL
	}
	return predictorTTL
}

// entry is a stored record with its integrity metadata.
type entry struct {
	payload  []byte
	hash     string
	storedAt time.Time
}

// hashPayload produces the truncated content hash stored beside each
// entry and rechecked on every read.
func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:32]
}

// lockStripes bounds the number of per-key mutexes.
const lockStripes = 64

// Cache is an in-memory validated store. Writes of unvalidated data
// are silently dropped; reads of expired, corrupted, or malformed
// entries miss and proactively purge the entry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	stripes [lockStripes]sync.Mutex
	now     func() time.Time
}

// New creates an empty cache using wall-clock time.
func New() *Cache {
	return &Cache{entries: make(map[string]entry), now: time.Now}
}

// NewWithClock creates a cache with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{entries: make(map[string]entry), now: now}
}

// stripe returns the per-key mutex guarding compound operations on k.
func (c *Cache) stripe(k Key) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(k.String()))
	return &c.stripes[h.Sum32()%lockStripes]
}

// Set stores a value under k. Values marked unvalidated are never
// stored. The value must be JSON-serializable.
func (c *Cache) Set(k Key, value any, validated bool) error {
	if !validated {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", k, err)
	}
	e := entry{payload: payload, hash: hashPayload(payload), storedAt: c.now()}
	c.mu.Lock()
	c.entries[k.String()] = e
	c.mu.Unlock()
	return nil
}

// Get loads the value under k into out. Reports ok=false on any miss:
// absent, expired, integrity mismatch, or undecodable. Every failed
// validation also removes the entry.
func (c *Cache) Get(k Key, out any) bool {
	id := k.String()
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	if c.now().Sub(e.storedAt) > k.TTL() ||
		hashPayload(e.payload) != e.hash ||
		json.Unmarshal(e.payload, out) != nil {
		c.purge(id)
		return false
	}
	return true
}

// GetOrFill returns the cached value for k, or computes it with fill
// under the key's stripe lock and stores the validated result. Only
// one goroutine fills a given stripe at a time.
func (c *Cache) GetOrFill(k Key, out any, fill func() (any, error)) error {
	if c.Get(k, out) {
		return nil
	}
	lock := c.stripe(k)
	lock.Lock()
	defer lock.Unlock()
	if c.Get(k, out) {
		return nil
	}
	v, err := fill()
	if err != nil {
		return err
	}
	if err := c.Set(k, v, true); err != nil {
		return err
	}
	if !c.Get(k, out) {
		return fmt.Errorf("cache entry %s unreadable after fill", k)
	}
	return nil
}

func (c *Cache) purge(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Delete removes the entry under k if present.
func (c *Cache) Delete(k Key) {
	c.purge(k.String())
}

// Len returns the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
