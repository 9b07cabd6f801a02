package shared

import (
	"sync"
	"time"
)

const ProcessMetaCacheTTL = 30 * time.Second

// ProcessMeta holds the parts of a Process that do not change while it runs.
type ProcessMeta struct {
	Name       string
	Path       string
	Command    string
	WorkingDir string
	User       string
	StartedAt  time.Time
	FetchedAt  time.Time
}

// ProcessMetaCache remembers ProcessMeta per PID. An entry only matches a
// process with the same start time, so a recycled PID misses.
type ProcessMetaCache struct {
	mu      sync.Mutex
	entries map[int]ProcessMeta
}

func NewProcessMetaCache() *ProcessMetaCache {
	return &ProcessMetaCache{
		entries: make(map[int]ProcessMeta),
	}
}

func (c *ProcessMetaCache) Get(pid int, startedAt, now time.Time) (ProcessMeta, bool) {
	if c == nil {
		return ProcessMeta{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	meta, ok := c.entries[pid]
	if !ok {
		return ProcessMeta{}, false
	}
	if now.Sub(meta.FetchedAt) > ProcessMetaCacheTTL || !meta.StartedAt.Equal(startedAt) {
		delete(c.entries, pid)
		return ProcessMeta{}, false
	}
	return meta, true
}

func (c *ProcessMetaCache) Set(pid int, meta ProcessMeta) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pid] = meta
}

// Prune drops entries for PIDs that keep rejects.
func (c *ProcessMetaCache) Prune(keep func(pid int) bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for pid := range c.entries {
		if !keep(pid) {
			delete(c.entries, pid)
		}
	}
}
