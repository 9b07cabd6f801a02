package classifier

import (
	"strconv"
	"strings"

	"porter/internal/shared"
)

// Filter narrows ports for display. An empty status matches every status;
// query matches a port-number prefix, process name, or service label.
type Filter struct {
	Status shared.PortStatus
	Query  string
}

func (f Filter) Match(p shared.Port) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.HasPrefix(strconv.Itoa(int(p.Port)), q) {
		return true
	}
	if p.Process != nil && strings.Contains(strings.ToLower(p.Process.Name), q) {
		return true
	}
	return p.Service != "" && strings.Contains(strings.ToLower(p.Service), q)
}

func (f Filter) Apply(ports []shared.Port) []shared.Port {
	out := make([]shared.Port, 0, len(ports))
	for _, p := range ports {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Counts tallies ports per status.
func Counts(ports []shared.Port) map[shared.PortStatus]int {
	counts := map[shared.PortStatus]int{
		shared.StatusFree:     0,
		shared.StatusOccupied: 0,
		shared.StatusSystem:   0,
	}
	for _, p := range ports {
		counts[p.Status]++
	}
	return counts
}
