package telemetry

import (
	"os"
	"runtime"
	"strings"

	"porter/internal/shared"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

const unknown = "Unknown"

// HostInfo is a best-effort static summary; every field has a default.
func HostInfo() shared.SystemInfo {
	info := shared.SystemInfo{
		OS:        runtime.GOOS,
		OSVersion: unknown,
		Hostname:  unknown,
		CPUCount:  runtime.NumCPU(),
	}

	if h, err := host.Info(); err == nil {
		if v := strings.TrimSpace(h.Platform + " " + h.PlatformVersion); v != "" {
			info.OSVersion = v
		} else if h.KernelVersion != "" {
			info.OSVersion = h.KernelVersion
		}
		if h.Hostname != "" {
			info.Hostname = h.Hostname
		}
	}
	if info.Hostname == unknown {
		if name, err := os.Hostname(); err == nil && name != "" {
			info.Hostname = name
		}
	}

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.CPUCount = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}

	return info
}
