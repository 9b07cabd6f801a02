package ui

import (
	"errors"
	"time"

	"porter/internal/classifier"
	"porter/internal/shared"

	"github.com/gdamore/tcell/v2"
)

// ErrElevate is returned by Run when the user asked to relaunch elevated.
// The caller must tear down the screen before relaunching.
var ErrElevate = errors.New("elevation requested")

type AppMode int

const (
	ModeDashboard AppMode = iota
	ModeInspect
	ModeSearch
)

type ViewMode int

const (
	ViewAll ViewMode = iota
	ViewCommon
)

func (v ViewMode) String() string {
	if v == ViewCommon {
		return "common ports"
	}
	return "all ports"
}

type AppState struct {
	Screen tcell.Screen

	Host       shared.SystemInfo
	Elevated   bool
	CanElevate bool
	Hint       string

	LastError  string
	LastUpdate time.Time
	RefreshInt time.Duration

	ConfirmKill         bool
	ConfirmKillTimeout  time.Duration
	ConfirmKillPort     uint16
	ConfirmKillDeadline time.Time

	Ports   []shared.Port // last refresh, unfiltered
	Visible []shared.Port
	View    ViewMode
	Filter  classifier.Filter

	Mode         AppMode
	SelectedPort uint16
	SelectedIdx  int
	InspectPort  uint16
}

type Scanner interface {
	Refresh(app *AppState)
}

// ScannerAdapter feeds the dashboard from the port monitor.
type ScannerAdapter struct {
	All    func() ([]shared.Port, error)
	Common func() ([]shared.Port, error)
	Logger *shared.JSONLogger
}

func (s *ScannerAdapter) Refresh(app *AppState) {
	collect := s.All
	if app.View == ViewCommon {
		collect = s.Common
	}
	if collect == nil {
		app.LastError = "scanner not configured"
		app.Ports = nil
		app.LastUpdate = time.Now().UTC()
		app.applyFilter()
		return
	}

	ports, err := collect()
	if err != nil {
		app.LastError = err.Error()
		app.Ports = nil
		app.LastUpdate = time.Now().UTC()
		app.applyFilter()
		return
	}

	if app.View == ViewAll {
		classifier.Sort(ports)
	}

	app.LastError = ""
	if s.Logger != nil {
		if err := s.Logger.WriteSnapshot(ports); err != nil {
			app.LastError = "log write failed: " + err.Error()
		}
	}

	app.Ports = ports
	app.LastUpdate = time.Now().UTC()
	app.applyFilter()
}

// applyFilter recomputes Visible and keeps the selection on the same port
// across refreshes when it is still shown.
func (app *AppState) applyFilter() {
	app.Visible = app.Filter.Apply(app.Ports)

	if len(app.Visible) == 0 {
		app.SelectedIdx = -1
		app.SelectedPort = 0
		return
	}

	if app.SelectedPort != 0 {
		if idx := app.FindIndexByPort(app.SelectedPort); idx >= 0 {
			app.SelectedIdx = idx
			return
		}
	}

	app.SelectedIdx = 0
	app.SelectedPort = app.Visible[0].Port
}

func (app *AppState) FindIndexByPort(port uint16) int {
	for i, p := range app.Visible {
		if p.Port == port {
			return i
		}
	}
	return -1
}

func (app *AppState) Selected() (shared.Port, bool) {
	if app.SelectedIdx < 0 || app.SelectedIdx >= len(app.Visible) {
		return shared.Port{}, false
	}
	return app.Visible[app.SelectedIdx], true
}

func (app *AppState) MoveSelection(delta int) {
	idx := app.SelectedIdx + delta
	if idx < 0 || idx >= len(app.Visible) {
		return
	}
	app.SelectedIdx = idx
	app.SelectedPort = app.Visible[idx].Port
}

var statusCycle = []shared.PortStatus{"", shared.StatusOccupied, shared.StatusSystem, shared.StatusFree}

func (app *AppState) CycleStatusFilter() {
	for i, s := range statusCycle {
		if s == app.Filter.Status {
			app.Filter.Status = statusCycle[(i+1)%len(statusCycle)]
			break
		}
	}
	app.applyFilter()
}

func (app *AppState) SetQuery(q string) {
	app.Filter.Query = q
	app.applyFilter()
}

// ArmKill records the first k press; ConfirmKillReady reports whether a
// second press for the same port arrived before the deadline.
func (app *AppState) ArmKill(port uint16, now time.Time) {
	app.ConfirmKill = true
	app.ConfirmKillPort = port
	app.ConfirmKillDeadline = now.Add(app.ConfirmKillTimeout)
}

func (app *AppState) ConfirmKillReady(port uint16, now time.Time) bool {
	return app.ConfirmKill &&
		app.ConfirmKillPort == port &&
		!now.After(app.ConfirmKillDeadline)
}

func (app *AppState) DisarmKill() {
	app.ConfirmKill = false
	app.ConfirmKillPort = 0
	app.ConfirmKillDeadline = time.Time{}
}

/* ---------- helpers ---------- */

func PutString(s tcell.Screen, x, y int, text string) {
	PutStyled(s, x, y, text, tcell.StyleDefault)
}

func PutStyled(s tcell.Screen, x, y int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func TruncateToWidth(s string, w int) string {
	if w <= 0 {
		return s
	}
	return shared.TrimName(s, w)
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func statusStyle(s shared.PortStatus) tcell.Style {
	switch s {
	case shared.StatusSystem:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case shared.StatusOccupied:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
}
