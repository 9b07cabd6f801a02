package ui

import (
	"fmt"
	"strings"
	"time"

	"porter/internal/classifier"
	"porter/internal/shared"

	"github.com/gdamore/tcell/v2"
)

func DrawDashboard(app *AppState) {
	s := app.Screen
	s.Clear()

	w, h := s.Size()
	nowUTC := time.Now().UTC()

	PutString(s, 0, 0,
		TruncateToWidth(fmt.Sprintf("UTC: %s | %s", nowUTC.Format("2006-01-02 15:04:05"), hostLine(app.Host)), w),
	)

	if !app.Elevated {
		PutStyled(s, 0, 1,
			TruncateToWidth("Not elevated: "+app.Hint, w),
			tcell.StyleDefault.Foreground(tcell.ColorYellow),
		)
	}

	counts := classifier.Counts(app.Ports)
	filter := "any"
	if app.Filter.Status != "" {
		filter = string(app.Filter.Status)
	}
	summary := fmt.Sprintf("View: %s | Status: %s | occupied %d  system %d  free %d",
		app.View, filter,
		counts[shared.StatusOccupied], counts[shared.StatusSystem], counts[shared.StatusFree])
	if app.Filter.Query != "" || app.Mode == ModeSearch {
		summary += " | Search: " + app.Filter.Query
		if app.Mode == ModeSearch {
			summary += "_"
		}
	}
	PutString(s, 0, 2, TruncateToWidth(summary, w))

	if app.LastError != "" {
		PutString(s, 0, 3, TruncateToWidth("Status: "+app.LastError, w))
	}

	y := 5
	if len(app.Visible) == 0 {
		PutString(s, 0, y, "no ports matching filters")
		drawFooter(app, w, h)
		return
	}

	PutString(s, 0, y,
		fmt.Sprintf("%-1s %-6s %-5s %-9s %-7s %-20s %-16s %-12s",
			" ", "PORT", "PROTO", "STATUS", "PID", "PROCESS", "ADDRESS", "SERVICE"),
	)
	y++
	PutString(s, 0, y,
		fmt.Sprintf("%-1s %-6s %-5s %-9s %-7s %-20s %-16s %-12s",
			" ", "-----", "-----", "--------", "------", strings.Repeat("-", 20), strings.Repeat("-", 16), strings.Repeat("-", 12)),
	)
	y++

	// keep the selection in view on short terminals
	rows := h - y - 1
	start := 0
	if rows > 0 && app.SelectedIdx >= rows {
		start = app.SelectedIdx - rows + 1
	}

	for i := start; i < len(app.Visible) && y < h-1; i++ {
		p := app.Visible[i]
		arrow := " "
		if i == app.SelectedIdx {
			arrow = ">"
		}

		pid, name := "-", "-"
		if p.Process != nil {
			pid = fmt.Sprintf("%d", p.Process.PID)
			name = shared.TrimName(p.Process.Name, 20)
		}

		line := fmt.Sprintf("%-1s %-6d %-5s %-9s %-7s %-20s %-16s %-12s",
			arrow,
			p.Port,
			p.Protocol,
			p.Status,
			pid,
			name,
			shared.TrimName(p.IPAddress, 16),
			p.Service,
		)

		style := statusStyle(p.Status)
		if i == app.SelectedIdx {
			style = style.Reverse(true)
		}
		PutStyled(s, 0, y, TruncateToWidth(line, w), style)
		y++
	}

	drawFooter(app, w, h)
}

func drawFooter(app *AppState, w, h int) {
	help := "UP/DOWN move | ENTER inspect | k kill | c common/all | f status | / search | r refresh | e elevate | q quit"
	if app.Mode == ModeSearch {
		help = "type to search | BACKSPACE delete | ENTER keep | ESC clear"
	}
	PutString(app.Screen, 0, h-1, TruncateToWidth(help, w))
}

func hostLine(h shared.SystemInfo) string {
	if h.Hostname == "" {
		return "host unknown"
	}
	return fmt.Sprintf("%s (%s %s) | %d CPU | %s RAM",
		h.Hostname, h.OS, h.OSVersion, h.CPUCount, shared.FormatBytes(h.TotalMemory))
}
