package shared

import "time"

type PortStatus string

const (
	StatusFree     PortStatus = "free"
	StatusOccupied PortStatus = "occupied"
	StatusSystem   PortStatus = "system"
)

// Port is the user-facing record: one per distinct local port in a pass.
// Process is nil iff Status is StatusFree.
type Port struct {
	Port      uint16     `json:"port"`
	Status    PortStatus `json:"status"`
	Protocol  Protocol   `json:"protocol"`
	Process   *Process   `json:"process,omitempty"`
	IPAddress string     `json:"ip_address"`
	CreatedAt time.Time  `json:"created_at"`
	Service   string     `json:"service,omitempty"`
}

// FreePort synthesizes the record used for a requested port nobody holds.
func FreePort(port uint16, now time.Time) Port {
	return Port{
		Port:      port,
		Status:    StatusFree,
		Protocol:  ProtocolTCP,
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		Service:   ServiceLabel(port),
	}
}

func FindPort(ports []Port, port uint16) (Port, bool) {
	for _, p := range ports {
		if p.Port == port {
			return p, true
		}
	}
	return Port{}, false
}
