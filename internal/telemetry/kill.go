package telemetry

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"porter/internal/netstat"
	"porter/internal/process"
	"porter/internal/shared"
)

// Signaler delivers the graceful and forced termination requests.
type Signaler interface {
	Terminate(pid int) error
	Kill(pid int) error
}

type osSignaler struct{}

func (osSignaler) Terminate(pid int) error { return process.Terminate(pid) }
func (osSignaler) Kill(pid int) error      { return process.Kill(pid) }

// settleDelay is how long a forcibly killed process gets to disappear
// from the process table.
const settleDelay = 100 * time.Millisecond

// Manager terminates processes: graceful signal, grace period, re-check,
// then one forced kill. There is no retry beyond that.
type Manager struct {
	mu     sync.Mutex
	enum   netstat.Enumerator
	procs  ProcessTable
	signal Signaler
	grace  time.Duration
	settle time.Duration
	sleep  func(time.Duration)
	self   int
}

func NewManager(enum netstat.Enumerator, procs ProcessTable, grace time.Duration) *Manager {
	if grace <= 0 {
		grace = shared.DefaultGracePeriod()
	}
	return &Manager{
		enum:   enum,
		procs:  procs,
		signal: osSignaler{},
		grace:  grace,
		settle: settleDelay,
		sleep:  time.Sleep,
		self:   os.Getpid(),
	}
}

// KillProcess terminates pid. It blocks for the full grace period when the
// process ignores the graceful request.
func (m *Manager) KillProcess(pid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.killProcess(pid)
}

// KillProcessByPort re-reads the socket table and kills the first owner of port.
func (m *Manager) KillProcessByPort(port uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, err := m.enum.Connections()
	if err != nil {
		return fmt.Errorf("kill port %d: %w", port, err)
	}

	for _, c := range conns {
		if c.LocalPort == port && c.PID > 0 {
			return m.killProcess(c.PID)
		}
	}

	return fmt.Errorf("port %d: %w", port, shared.ErrPortNotInUse)
}

func (m *Manager) killProcess(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("pid %d: %w", pid, shared.ErrProcessNotFound)
	}
	if err := m.procs.Refresh(); err != nil {
		return fmt.Errorf("kill pid %d: %w", pid, err)
	}
	if !m.procs.Exists(pid) {
		return fmt.Errorf("pid %d: %w", pid, shared.ErrProcessNotFound)
	}
	if pid == m.self {
		return fmt.Errorf("pid %d is porter itself; refusing to terminate", pid)
	}

	err := m.signal.Terminate(pid)
	switch {
	case err == nil:
		m.sleep(m.grace)
		if !m.stillRunning(pid) {
			return nil
		}
	case errors.Is(err, shared.ErrProcessNotFound):
		return nil
	}

	if err := m.signal.Kill(pid); err != nil {
		if errors.Is(err, shared.ErrProcessNotFound) {
			return nil
		}
		return privilegeError(pid, err)
	}

	m.sleep(m.settle)
	if m.stillRunning(pid) {
		return privilegeError(pid, errors.New("process survived the forced kill"))
	}
	return nil
}

// stillRunning treats a failed refresh as "still running" so the
// forced phase is not skipped on a transient error.
func (m *Manager) stillRunning(pid int) bool {
	if err := m.procs.Refresh(); err != nil {
		return true
	}
	return m.procs.Exists(pid)
}

func privilegeError(pid int, cause error) error {
	return fmt.Errorf("%w: pid %d likely requires elevated privileges to terminate (%v)",
		shared.ErrPermissionDenied, pid, cause)
}
