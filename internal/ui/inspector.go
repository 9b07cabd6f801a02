package ui

import (
	"fmt"
	"strings"
	"time"

	"porter/internal/shared"
)

func DrawInspector(app *AppState) {
	s := app.Screen
	s.Clear()

	w, h := s.Size()
	nowUTC := time.Now().UTC()

	PutString(s, 0, 0,
		TruncateToWidth(fmt.Sprintf("UTC: %s", nowUTC.Format("2006-01-02 15:04:05")), w),
	)

	p, ok := shared.FindPort(app.Ports, app.InspectPort)
	if !ok {
		PutString(s, 0, 2, fmt.Sprintf("Port %d is no longer listed. Press ESC.", app.InspectPort))
		return
	}

	y := 2
	title := fmt.Sprintf(" Port %d/%s ", p.Port, p.Protocol)
	sep := strings.Repeat("─", MinInt(len(title), w))

	PutString(s, 0, y, sep)
	y++
	PutString(s, 0, y, TruncateToWidth(title, w))
	y++
	PutString(s, 0, y, sep)
	y += 2

	PutStyled(s, 0, y, fmt.Sprintf("Status:  %s", p.Status), statusStyle(p.Status))
	y++
	PutString(s, 0, y, TruncateToWidth(fmt.Sprintf("Address: %s (%s)", orUnknown(p.IPAddress), shared.BindScope(p.IPAddress)), w))
	y++
	PutString(s, 0, y, fmt.Sprintf("Service: %s", orUnknown(p.Service)))
	y++
	PutString(s, 0, y, fmt.Sprintf("Seen:    %s", p.CreatedAt.UTC().Format("2006-01-02 15:04:05")))
	y += 2

	if p.Process == nil {
		PutString(s, 0, y, "No owning process.")
	} else {
		proc := p.Process
		PutString(s, 0, y, "Process:")
		y++

		lines := []string{
			fmt.Sprintf("PID: %d", proc.PID),
			fmt.Sprintf("Name: %s", orUnknown(proc.Name)),
			fmt.Sprintf("User: %s", orUnknown(proc.User)),
			fmt.Sprintf("Path: %s", orUnknown(proc.Path)),
			fmt.Sprintf("Command: %s", orUnknown(proc.Command)),
			fmt.Sprintf("Working dir: %s", orUnknown(proc.WorkingDir)),
			fmt.Sprintf("CPU: %.1f%%  Memory: %s", proc.CPUUsage, shared.FormatBytes(proc.MemoryUsage)),
			fmt.Sprintf("Started: %s", proc.StartedAt.Local().Format("2006-01-02 15:04:05")),
		}
		for _, l := range lines {
			if y >= h-2 {
				break
			}
			PutString(s, 2, y, TruncateToWidth(l, w-2))
			y++
		}
	}

	if app.LastError != "" && h >= 2 {
		PutString(s, 0, h-2, TruncateToWidth("Status: "+app.LastError, w))
	}

	PutString(s, 0, h-1, "ESC return | k kill | q quit")
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
