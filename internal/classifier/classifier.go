package classifier

import (
	"sort"
	"time"

	"porter/internal/shared"
)

// Resolver looks up a live process by PID.
type Resolver interface {
	Lookup(pid int) (*shared.Process, bool)
}

// Classify converts raw connections into one Port per local port number.
// The first connection seen for a port wins; later ones (e.g. the TCP6
// twin of a TCP listener) are dropped.
func Classify(
	conns []shared.NetworkConnection,
	procs Resolver,
	isSystemPID func(int) bool,
	now time.Time,
) []shared.Port {

	seen := make(map[uint16]struct{}, len(conns))
	resolved := make(map[int]*shared.Process)
	ports := make([]shared.Port, 0, len(conns))

	for _, c := range conns {
		if _, dup := seen[c.LocalPort]; dup {
			continue
		}
		seen[c.LocalPort] = struct{}{}

		var proc *shared.Process
		if c.PID > 0 && procs != nil {
			p, ok := resolved[c.PID]
			if !ok {
				p, _ = procs.Lookup(c.PID)
				resolved[c.PID] = p
			}
			if p != nil {
				cp := *p
				proc = &cp
			}
		}

		ports = append(ports, shared.Port{
			Port:      c.LocalPort,
			Status:    Status(c.PID, proc != nil, isSystemPID),
			Protocol:  c.Protocol,
			Process:   proc,
			IPAddress: c.LocalAddress,
			CreatedAt: now,
			Service:   shared.ServiceLabel(c.LocalPort),
		})
	}

	return ports
}

// Status classifies purely on PID magnitude; a port without a resolved
// owner is always free.
func Status(pid int, resolved bool, isSystemPID func(int) bool) shared.PortStatus {
	if !resolved {
		return shared.StatusFree
	}
	if isSystemPID != nil && isSystemPID(pid) {
		return shared.StatusSystem
	}
	return shared.StatusOccupied
}

// Sort orders ports by number, in place.
func Sort(ports []shared.Port) {
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Port < ports[j].Port
	})
}
