package bot

import (
	"sync"
	"time"
)

const (
	roleTTL       = 30 * time.Second
	roleMissLimit = 100
)

type roleKey struct {
	groupCode int64
	uin       int64
}

type roleEntry struct {
	role    string
	expires time.Time
}

// roleCache is a TTL map of (group, uin) to role. Accumulated misses beyond
// the limit flush the whole cache, bounding memory in churny groups.
type roleCache struct {
	mu      sync.Mutex
	entries map[roleKey]roleEntry
	misses  int
	now     func() time.Time
}

func newRoleCache() *roleCache {
	return &roleCache{
		entries: make(map[roleKey]roleEntry),
		now:     time.Now,
	}
}

func (c *roleCache) get(groupCode, uin int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[roleKey{groupCode, uin}]
	if !ok || c.now().After(e.expires) {
		return "", false
	}
	return e.role, true
}

func (c *roleCache) put(groupCode, uin int64, role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[roleKey{groupCode, uin}] = roleEntry{role: role, expires: c.now().Add(roleTTL)}
}

func (c *roleCache) recordMiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if c.misses > roleMissLimit {
		c.entries = make(map[roleKey]roleEntry)
		c.misses = 0
	}
}
