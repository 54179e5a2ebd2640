package service

import (
	"sync"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/clock"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
)

// DefaultCacheTTL is how long a fetched scheme list is served.
const DefaultCacheTTL = 60 * time.Second

// SchemeCache keeps the last scheme list for a fixed TTL. It only saves
// round trips; the ledger stays authoritative.
type SchemeCache struct {
	clock clock.Clock
	ttl   time.Duration

	mu        sync.RWMutex
	schemes   []dmodel.Scheme
	byID      map[uint64]dmodel.Scheme
	refreshed time.Time
}

// NewSchemeCache builds an empty cache. A non-positive ttl selects DefaultCacheTTL.
func NewSchemeCache(c clock.Clock, ttl time.Duration) *SchemeCache {
	if c == nil {
		c = clock.System{}
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SchemeCache{clock: c, ttl: ttl, byID: make(map[uint64]dmodel.Scheme)}
}

// Fresh returns the cached list while it is younger than the TTL.
func (c *SchemeCache) Fresh() ([]dmodel.Scheme, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.refreshed.IsZero() || c.clock.Now().Sub(c.refreshed) >= c.ttl {
		return nil, false
	}
	return append([]dmodel.Scheme(nil), c.schemes...), true
}

// Stale returns whatever was cached last, regardless of age.
func (c *SchemeCache) Stale() []dmodel.Scheme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]dmodel.Scheme(nil), c.schemes...)
}

// Lookup returns one scheme of a fresh list.
func (c *SchemeCache) Lookup(id uint64) (dmodel.Scheme, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.refreshed.IsZero() || c.clock.Now().Sub(c.refreshed) >= c.ttl {
		return dmodel.Scheme{}, false
	}
	s, ok := c.byID[id]
	return s, ok
}

// Store replaces the cached list and restarts the TTL.
func (c *SchemeCache) Store(schemes []dmodel.Scheme) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemes = append([]dmodel.Scheme(nil), schemes...)
	c.byID = make(map[uint64]dmodel.Scheme, len(schemes))
	for _, s := range schemes {
		c.byID[s.ID] = s
	}
	c.refreshed = c.clock.Now()
}

// Invalidate forces the next read to go to the ledger. The stale list is
// kept as the fallback for failed refreshes.
func (c *SchemeCache) Invalidate() {
	c.mu.Lock()
	c.refreshed = time.Time{}
	c.mu.Unlock()
}
