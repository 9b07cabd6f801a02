package main

import (
	"fmt"
	"io"
	"strings"

	"porter/internal/shared"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	freeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	occupiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	systemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// printer renders one-shot query results either as styled text or as a
// JSON array.
type printer struct {
	w      io.Writer
	asJSON bool
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{w: w, asJSON: asJSON}
}

func (p *printer) json(write func(l *shared.JSONLogger) error) error {
	l := shared.NewJSONWriter(p.w, true)
	if err := write(l); err != nil {
		return err
	}
	return l.Close()
}

func (p *printer) ports(ports []shared.Port) error {
	if p.asJSON {
		return p.json(func(l *shared.JSONLogger) error { return l.WriteSnapshot(ports) })
	}

	if len(ports) == 0 {
		_, err := fmt.Fprintln(p.w, mutedStyle.Render("no ports in use"))
		return err
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-5s %-9s %-7s %-20s %-16s %s",
		"PORT", "PROTO", "STATUS", "PID", "PROCESS", "ADDRESS", "SERVICE")))
	b.WriteByte('\n')

	for _, port := range ports {
		pid, name := "-", "-"
		if port.Process != nil {
			pid = fmt.Sprintf("%d", port.Process.PID)
			name = shared.TrimName(port.Process.Name, 20)
		}
		b.WriteString(fmt.Sprintf("%-6d %-5s %s %-7s %-20s %-16s %s\n",
			port.Port,
			port.Protocol,
			statusText(port.Status),
			pid,
			name,
			shared.TrimName(port.IPAddress, 16),
			port.Service,
		))
	}

	if len(ports) == 1 && ports[0].Process != nil {
		b.WriteByte('\n')
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", "Reachable")))
		b.WriteString(shared.BindScope(ports[0].IPAddress) + "\n")
		b.WriteString(processDetails(ports[0].Process))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// statusText pads before styling so ANSI codes do not break alignment.
func statusText(s shared.PortStatus) string {
	text := fmt.Sprintf("%-9s", s)
	switch s {
	case shared.StatusSystem:
		return systemStyle.Render(text)
	case shared.StatusOccupied:
		return occupiedStyle.Render(text)
	default:
		return freeStyle.Render(text)
	}
}

func processDetails(proc *shared.Process) string {
	rows := [][2]string{
		{"Path", proc.Path},
		{"Command", proc.Command},
		{"Working dir", proc.WorkingDir},
		{"User", proc.User},
		{"CPU", fmt.Sprintf("%.1f%%", proc.CPUUsage)},
		{"Memory", shared.FormatBytes(proc.MemoryUsage)},
		{"Started", proc.StartedAt.Local().Format("2006-01-02 15:04:05")},
	}

	var b strings.Builder
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", r[0])))
		b.WriteString(r[1])
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *printer) host(info shared.SystemInfo) error {
	if p.asJSON {
		return p.json(func(l *shared.JSONLogger) error { return l.WriteValue(info) })
	}

	rows := [][2]string{
		{"OS", info.OS},
		{"Version", info.OSVersion},
		{"Hostname", info.Hostname},
		{"CPUs", fmt.Sprintf("%d", info.CPUCount)},
		{"Memory", shared.FormatBytes(info.TotalMemory)},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", r[0])))
		b.WriteString(r[1])
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *printer) elevated(elevated bool, hint string) error {
	if p.asJSON {
		return p.json(func(l *shared.JSONLogger) error {
			return l.WriteValue(map[string]any{"elevated": elevated, "hint": hint})
		})
	}

	if elevated {
		_, err := fmt.Fprintln(p.w, freeStyle.Render("elevated"))
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s\n%s\n", occupiedStyle.Render("not elevated"), mutedStyle.Render(hint))
	return err
}

func (p *printer) message(msg string) error {
	if p.asJSON {
		return p.json(func(l *shared.JSONLogger) error {
			return l.WriteValue(map[string]any{"ok": true, "message": msg})
		})
	}
	_, err := fmt.Fprintln(p.w, freeStyle.Render(msg))
	return err
}
