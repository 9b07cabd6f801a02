package shared

import "time"

type Process struct {
	PID         int       `json:"pid"`
	Name        string    `json:"name"`
	Path        string    `json:"path"` // empty if the executable could not be resolved
	Command     string    `json:"command"`
	WorkingDir  string    `json:"working_dir,omitempty"`
	CPUUsage    float64   `json:"cpu_usage"`    // percent
	MemoryUsage uint64    `json:"memory_usage"` // bytes (RSS)
	StartedAt   time.Time `json:"started_at"`
	User        string    `json:"user,omitempty"`
}
