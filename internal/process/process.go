package process

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"porter/internal/shared"

	ps "github.com/shirou/gopsutil/v4/process"
)

// Table is a point-in-time view of the process list. It is replaced
// wholesale by Refresh and never patched in place; callers serialize access.
type Table struct {
	pids    map[int32]struct{}
	meta    *shared.ProcessMetaCache
	handles map[int32]*handle
	now     func() time.Time
}

// handle keeps one gopsutil process per PID so CPU usage is measured
// between consecutive lookups rather than over the process lifetime.
type handle struct {
	proc      *ps.Process
	startedAt time.Time
}

func NewTable() *Table {
	return &Table{
		pids:    make(map[int32]struct{}),
		meta:    shared.NewProcessMetaCache(),
		handles: make(map[int32]*handle),
		now:     time.Now,
	}
}

func (t *Table) Refresh() error {
	pids, err := ps.Pids()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	next := make(map[int32]struct{}, len(pids))
	for _, pid := range pids {
		next[pid] = struct{}{}
	}
	t.pids = next
	t.meta.Prune(t.Exists)
	for pid := range t.handles {
		if _, ok := next[pid]; !ok {
			delete(t.handles, pid)
		}
	}
	return nil
}

func (t *Table) Exists(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}
	_, ok := t.pids[int32(pid)]
	return ok
}

// Lookup reads pid's details if it was present at the last Refresh.
// Fields the OS will not reveal are left empty rather than failing.
func (t *Table) Lookup(pid int) (*shared.Process, bool) {
	if !t.Exists(pid) {
		return nil, false
	}

	p, err := ps.NewProcess(int32(pid))
	if err != nil {
		return nil, false
	}

	info := &shared.Process{
		PID:       pid,
		StartedAt: t.now().UTC(),
	}
	if ms, err := p.CreateTime(); err == nil && ms > 0 {
		info.StartedAt = time.UnixMilli(ms).UTC()
	}

	now := t.now()
	meta, ok := t.meta.Get(pid, info.StartedAt, now)
	if !ok {
		meta = staticMeta(p, info.StartedAt, now)
		t.meta.Set(pid, meta)
	}
	info.Name = meta.Name
	info.Path = meta.Path
	info.Command = meta.Command
	info.WorkingDir = meta.WorkingDir
	info.User = meta.User

	info.CPUUsage = t.cpuUsage(int32(pid), p, info.StartedAt)
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		info.MemoryUsage = mem.RSS
	}

	return info, true
}

// cpuUsage reports usage since the previous lookup of the same process.
// The first sighting has no previous sample, so it falls back to the
// average since start and primes the handle for the next call.
func (t *Table) cpuUsage(pid int32, fresh *ps.Process, startedAt time.Time) float64 {
	if h, ok := t.handles[pid]; ok && h.startedAt.Equal(startedAt) {
		if cpu, err := h.proc.Percent(0); err == nil {
			return cpu
		}
		return 0
	}

	t.handles[pid] = &handle{proc: fresh, startedAt: startedAt}
	_, _ = fresh.Percent(0)
	if cpu, err := fresh.CPUPercent(); err == nil {
		return cpu
	}
	return 0
}

func staticMeta(p *ps.Process, startedAt, now time.Time) shared.ProcessMeta {
	meta := shared.ProcessMeta{StartedAt: startedAt, FetchedAt: now}

	if name, err := p.Name(); err == nil {
		meta.Name = name
	}
	if exe, err := p.Exe(); err == nil {
		meta.Path = exe
	}
	if cmd, err := p.CmdlineSlice(); err == nil {
		meta.Command = strings.Join(cmd, " ")
	}
	if cwd, err := p.Cwd(); err == nil {
		meta.WorkingDir = cwd
	}
	meta.User = owner(p)

	if meta.Name == "" && meta.Path != "" {
		meta.Name = baseName(meta.Path)
	}
	return meta
}

// owner prefers the numeric uid; Windows has none, so fall back to the account name.
func owner(p *ps.Process) string {
	if uids, err := p.Uids(); err == nil && len(uids) > 0 {
		return strconv.FormatUint(uint64(uids[0]), 10)
	}
	if name, err := p.Username(); err == nil {
		return name
	}
	return ""
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
