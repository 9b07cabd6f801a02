package process

import (
	"os"
	"testing"
	"time"
)

func TestTableLookupCurrentProcess(t *testing.T) {
	table := NewTable()
	if err := table.Refresh(); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	pid := os.Getpid()
	if !table.Exists(pid) {
		t.Fatalf("Exists(%d) = false for current process", pid)
	}

	info, ok := table.Lookup(pid)
	if !ok {
		t.Fatalf("Lookup(%d) found nothing", pid)
	}
	if info.PID != pid {
		t.Errorf("PID = %d, want %d", info.PID, pid)
	}
	if info.Name == "" {
		t.Error("Name should not be empty for current process")
	}
	if info.StartedAt.IsZero() || info.StartedAt.After(time.Now().Add(time.Minute)) {
		t.Errorf("StartedAt = %v, want a past timestamp", info.StartedAt)
	}

	again, ok := table.Lookup(pid)
	if !ok || again.Name != info.Name || again.Path != info.Path {
		t.Errorf("second Lookup = %+v, want cached name %q", again, info.Name)
	}
}

func TestTableMissingPID(t *testing.T) {
	table := NewTable()
	if err := table.Refresh(); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	for _, pid := range []int{0, -1, 99999999, 1 << 40} {
		if table.Exists(pid) {
			t.Errorf("Exists(%d) = true", pid)
		}
		if _, ok := table.Lookup(pid); ok {
			t.Errorf("Lookup(%d) found a process", pid)
		}
	}
}

func TestTableBeforeRefresh(t *testing.T) {
	table := NewTable()
	if table.Exists(os.Getpid()) {
		t.Error("an unrefreshed table should be empty")
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"/usr/bin/node":                    "node",
		`C:\Program Files\nodejs\node.exe`: "node.exe",
		"node":                             "node",
	}
	for in, want := range tests {
		if got := baseName(in); got != want {
			t.Errorf("baseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTableKeepsHandleForCPUSampling(t *testing.T) {
	table := NewTable()
	if err := table.Refresh(); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	pid := os.Getpid()
	if _, ok := table.Lookup(pid); !ok {
		t.Fatalf("Lookup(%d) found nothing", pid)
	}
	first, ok := table.handles[int32(pid)]
	if !ok {
		t.Fatal("no handle kept after first Lookup")
	}

	// burn a little CPU so the second sample has something to measure
	deadline := time.Now().Add(20 * time.Millisecond)
	for time.Now().Before(deadline) {
	}

	info, ok := table.Lookup(pid)
	if !ok {
		t.Fatalf("second Lookup(%d) found nothing", pid)
	}
	if table.handles[int32(pid)] != first {
		t.Error("second Lookup replaced the handle; CPU would be sampled from scratch")
	}
	if info.CPUUsage < 0 {
		t.Errorf("CPUUsage = %v, want >= 0", info.CPUUsage)
	}

	table.handles[99999999] = &handle{}
	if err := table.Refresh(); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if _, ok := table.handles[99999999]; ok {
		t.Error("Refresh kept a handle for a PID that no longer exists")
	}
	if _, ok := table.handles[int32(pid)]; !ok {
		t.Error("Refresh dropped the handle of a live process")
	}
}
