package drift

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/natefinch/atomic"
)

// DefaultMaxSize bounds the cache when the caller or a loaded file does not
// specify a limit.
const DefaultMaxSize = 200

// ErrCorrupt is returned by Load when the cache file exists but cannot be
// parsed. The returned cache is still empty and usable; the error is an
// advisory for the caller to surface as a warning.
var ErrCorrupt = errors.New("cache file corrupted")

// Entry is one cached drift verdict. Entries are immutable once created and
// identified solely by their key.
type Entry struct {
	Key           string `json:"key"`
	DriftDetected bool   `json:"drift_detected"`
	Rationale     string `json:"rationale"`
}

// Cache is a bounded, insertion-ordered fingerprint-to-verdict store. Safe
// for concurrent use.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]Entry
	order   []string // insertion order, index 0 = oldest
}

// New creates an empty cache bounded to maxSize entries. A non-positive
// maxSize selects DefaultMaxSize.
func New(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		maxSize: maxSize,
		entries: make(map[string]Entry),
	}
}

// Get returns the entry for key. Pure lookup: it performs no I/O and never
// refreshes eviction order.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put inserts or overwrites the entry for key. Inserting a new key at
// capacity evicts the earliest-inserted key first. Overwriting an existing
// key keeps its original insertion position.
func (c *Cache) Put(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = e
		return
	}
	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = e
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// MaxSize returns the cache bound.
func (c *Cache) MaxSize() int {
	return c.maxSize
}

// Entries returns a snapshot of all entries in insertion order.
func (c *Cache) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	c.order = nil
}

// cacheFile is the on-disk representation. Array order equals insertion
// order, oldest first, so FIFO semantics survive a restart.
type cacheFile struct {
	MaxSize int     `json:"max_size"`
	Entries []Entry `json:"entries"`
}

// Load reads a persisted cache from path. A missing file yields an empty
// cache and a nil error. A malformed file yields an empty cache and an
// ErrCorrupt advisory; loading never fails hard.
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(0), nil
		}
		return New(0), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var f cacheFile
	if err := json.Unmarshal(data, &f); err != nil {
		return New(0), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	c := New(f.MaxSize)
	for _, e := range f.Entries {
		if e.Key == "" {
			return New(f.MaxSize), fmt.Errorf("%w: entry with empty key", ErrCorrupt)
		}
		c.Put(e.Key, e)
	}
	return c, nil
}

// Save atomically persists the cache to path. The snapshot is taken under
// the lock; serialization and the disk write happen outside it, so a slow
// disk never blocks concurrent lookups. The write goes to a temporary file
// in the target directory and is renamed into place, so readers never
// observe a partial file.
//
// A save failure leaves the in-memory cache fully usable; callers treat the
// returned error as an advisory.
func (c *Cache) Save(path string) error {
	c.mu.Lock()
	snapshot := cacheFile{
		MaxSize: c.maxSize,
		Entries: c.snapshotLocked(),
	}
	c.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

func (c *Cache) snapshotLocked() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, c.entries[key])
	}
	return entries
}
