package telemetry

import (
	"errors"

	"porter/internal/shared"
)

type fakeEnum struct {
	conns []shared.NetworkConnection
	err   error
	calls int
}

func (f *fakeEnum) Connections() ([]shared.NetworkConnection, error) {
	f.calls++
	return f.conns, f.err
}

func (f *fakeEnum) IsSystemPID(pid int) bool { return pid < 1000 }

// fakeTable models the OS: live holds running PIDs, snapshot is what the
// last Refresh saw.
type fakeTable struct {
	live       map[int]string
	snapshot   map[int]string
	refreshes  int
	refreshErr error
}

func newFakeTable(procs map[int]string) *fakeTable {
	return &fakeTable{live: procs, snapshot: map[int]string{}}
}

func (f *fakeTable) Refresh() error {
	f.refreshes++
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.snapshot = make(map[int]string, len(f.live))
	for pid, name := range f.live {
		f.snapshot[pid] = name
	}
	return nil
}

func (f *fakeTable) Exists(pid int) bool {
	_, ok := f.snapshot[pid]
	return ok
}

func (f *fakeTable) Lookup(pid int) (*shared.Process, bool) {
	name, ok := f.snapshot[pid]
	if !ok {
		return nil, false
	}
	return &shared.Process{PID: pid, Name: name}, true
}

type fakeSignaler struct {
	table      *fakeTable
	exitOnTerm bool
	exitOnKill bool
	termErr    error
	killErr    error
	terminated []int
	killed     []int
}

func (f *fakeSignaler) Terminate(pid int) error {
	f.terminated = append(f.terminated, pid)
	if f.termErr != nil {
		return f.termErr
	}
	if f.exitOnTerm {
		delete(f.table.live, pid)
	}
	return nil
}

func (f *fakeSignaler) Kill(pid int) error {
	f.killed = append(f.killed, pid)
	if f.killErr != nil {
		return f.killErr
	}
	if f.exitOnKill {
		delete(f.table.live, pid)
	}
	return nil
}

var errEPERM = errors.New("operation not permitted")
