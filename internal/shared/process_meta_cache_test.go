package shared

import (
	"testing"
	"time"
)

func TestProcessMetaCache(t *testing.T) {
	c := NewProcessMetaCache()
	start := time.Unix(1700000000, 0)
	now := start.Add(time.Minute)

	c.Set(42, ProcessMeta{Name: "node", StartedAt: start, FetchedAt: now})

	if m, ok := c.Get(42, start, now.Add(time.Second)); !ok || m.Name != "node" {
		t.Fatalf("Get = %+v, %v", m, ok)
	}
	if _, ok := c.Get(42, start.Add(time.Second), now); ok {
		t.Fatal("hit for a recycled PID")
	}

	c.Set(42, ProcessMeta{Name: "node", StartedAt: start, FetchedAt: now})
	if _, ok := c.Get(42, start, now.Add(ProcessMetaCacheTTL+time.Second)); ok {
		t.Fatal("hit after TTL")
	}

	c.Set(1, ProcessMeta{StartedAt: start, FetchedAt: now})
	c.Set(2, ProcessMeta{StartedAt: start, FetchedAt: now})
	c.Prune(func(pid int) bool { return pid == 2 })
	if _, ok := c.Get(1, start, now); ok {
		t.Fatal("pruned entry still present")
	}
	if _, ok := c.Get(2, start, now); !ok {
		t.Fatal("kept entry missing")
	}

	var nilCache *ProcessMetaCache
	if _, ok := nilCache.Get(1, start, now); ok {
		t.Fatal("nil cache hit")
	}
}
