package application

import (
	"sync"
	"time"
)

// reportCache keeps recently computed participation rows so repeated report
// queries over the same range skip the schedule join while schedules and
// servants remain unchanged.
type reportCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]reportCacheEntry
}

type reportCacheEntry struct {
	rows      []ParticipationRow
	expiresAt time.Time
}

func newReportCache(ttl time.Duration, maxEntries int, now func() time.Time) *reportCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 64
	}
	if now == nil {
		now = time.Now
	}
	return &reportCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]reportCacheEntry),
	}
}

func (c *reportCache) Get(key string) ([]ParticipationRow, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cloneRows(entry.rows), true
}

func (c *reportCache) Store(key string, rows []ParticipationRow) {
	if c == nil {
		return
	}
	cloned := cloneRows(rows)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = reportCacheEntry{rows: cloned, expiresAt: expiry}
}

func (c *reportCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]reportCacheEntry)
	c.mu.Unlock()
}

func (c *reportCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *reportCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

func cloneRows(rows []ParticipationRow) []ParticipationRow {
	if len(rows) == 0 {
		return nil
	}
	out := make([]ParticipationRow, len(rows))
	for i, row := range rows {
		out[i] = row
		out[i].Servant = cloneServant(row.Servant)
	}
	return out
}

func reportCacheKey(from, to string) string {
	return from + "|" + to
}
