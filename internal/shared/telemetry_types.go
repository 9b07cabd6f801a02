package shared

import "time"

type Protocol string

const (
	ProtocolTCP Protocol = "TCP"
	ProtocolUDP Protocol = "UDP"
)

// NetworkConnection is one raw row of a platform socket table.
// RemoteAddress/RemotePort are not populated by any enumerator yet.
type NetworkConnection struct {
	LocalAddress  string
	LocalPort     uint16
	RemoteAddress string
	RemotePort    uint16
	Protocol      Protocol
	PID           int // 0 = unknown
	State         string
}

type Snapshot struct {
	CapturedAt time.Time `json:"captured_at"`
	Ports      []Port    `json:"ports"`
}

type SystemInfo struct {
	OS          string `json:"os"`
	OSVersion   string `json:"os_version"`
	Hostname    string `json:"hostname"`
	CPUCount    int    `json:"cpu_count"`
	TotalMemory uint64 `json:"total_memory"`
}
