package telemetry

import (
	"fmt"
	"sync"
	"time"

	"porter/internal/classifier"
	"porter/internal/netstat"
	"porter/internal/shared"
)

// ProcessTable is the refreshed-before-read process snapshot both the
// monitor and the manager depend on.
type ProcessTable interface {
	Refresh() error
	Exists(pid int) bool
	Lookup(pid int) (*shared.Process, bool)
}

// Monitor answers port queries. Each call is a fresh snapshot; the mutex
// makes refresh-then-read atomic per instance.
type Monitor struct {
	mu          sync.Mutex
	enum        netstat.Enumerator
	procs       ProcessTable
	commonPorts []uint16
	now         func() time.Time
}

func NewMonitor(enum netstat.Enumerator, procs ProcessTable, commonPorts []uint16) *Monitor {
	if len(commonPorts) == 0 {
		commonPorts = shared.DefaultCommonPorts
	}
	ports := make([]uint16, len(commonPorts))
	copy(ports, commonPorts)

	return &Monitor{
		enum:        enum,
		procs:       procs,
		commonPorts: ports,
		now:         time.Now,
	}
}

func (m *Monitor) CommonPorts() []uint16 {
	out := make([]uint16, len(m.commonPorts))
	copy(out, m.commonPorts)
	return out
}

// ActivePorts lists every distinct local port in the socket table.
// Order is first-seen and carries no meaning.
func (m *Monitor) ActivePorts() ([]shared.Port, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activePorts()
}

func (m *Monitor) activePorts() ([]shared.Port, error) {
	if err := m.procs.Refresh(); err != nil {
		return nil, fmt.Errorf("refresh processes: %w", err)
	}

	conns, err := m.enum.Connections()
	if err != nil {
		return nil, fmt.Errorf("enumerate connections: %w", err)
	}

	return classifier.Classify(conns, m.procs, m.enum.IsSystemPID, m.now().UTC()), nil
}

// PortDetails returns the active record for port, or nil if nothing holds it.
func (m *Monitor) PortDetails(port uint16) (*shared.Port, error) {
	ports, err := m.ActivePorts()
	if err != nil {
		return nil, err
	}
	p, ok := shared.FindPort(ports, port)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Monitor) ScanCommonPorts() ([]shared.Port, error) {
	return m.ScanPorts(nil)
}

// ScanPorts returns exactly one record per requested port, in request
// order. Ports nobody holds come back as free TCP on 127.0.0.1.
// An empty request scans the common ports.
func (m *Monitor) ScanPorts(ports []uint16) ([]shared.Port, error) {
	if len(ports) == 0 {
		ports = m.commonPorts
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	active, err := m.activePorts()
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	out := make([]shared.Port, 0, len(ports))
	for _, n := range ports {
		if p, ok := shared.FindPort(active, n); ok {
			out = append(out, p)
			continue
		}
		out = append(out, shared.FreePort(n, now))
	}
	return out, nil
}
