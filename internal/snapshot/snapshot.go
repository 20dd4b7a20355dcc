package snapshot

import (
	"sync"
	"time"

	"github.com/nyctennis/courtfinder/internal/scraper"
)

// Cache is a single-slot, process-lifetime cache of the latest full
// scrape. It is constructed at the composition root and passed to
// whatever needs it; there is no package-level instance. Replace and
// read are guarded by a mutex so readers never observe a half-updated
// snapshot.
type Cache struct {
	mu         sync.RWMutex
	parks      []*scraper.ParkSchedule
	capturedAt time.Time
	set        bool
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Set replaces the held snapshot wholesale. Last writer wins; there is
// no merging.
func (c *Cache) Set(parks []*scraper.ParkSchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parks = parks
	c.capturedAt = time.Now().UTC()
	c.set = true
}

// Get returns the current snapshot and its capture time. ok is false
// when no snapshot has ever been set.
func (c *Cache) Get() (parks []*scraper.ParkSchedule, capturedAt time.Time, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.parks, c.capturedAt, c.set
}
