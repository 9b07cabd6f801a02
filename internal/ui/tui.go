package ui

import (
	"fmt"
	"strings"
	"time"

	"porter/internal/shared"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/time/rate"
)

// Actions are the side-effecting operations the dashboard can trigger.
type Actions struct {
	KillPort func(port uint16) error
}

func Run(app *AppState, scanner Scanner, actions Actions) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	app.Screen = s
	if app.RefreshInt <= 0 {
		app.RefreshInt = 2 * time.Second
	}
	if app.ConfirmKillTimeout <= 0 {
		app.ConfirmKillTimeout = 3 * time.Second
	}
	app.SelectedIdx = -1
	app.Mode = ModeDashboard

	scanner.Refresh(app)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(s, events, done)

	type refreshResult struct {
		snapshot AppState
		view     ViewMode
	}

	refreshCh := make(chan refreshResult, 1)
	refreshInFlight := false
	startRefresh := func() {
		if refreshInFlight {
			return
		}
		refreshInFlight = true
		tmp := *app
		tmp.Screen = nil
		go func() {
			scanner.Refresh(&tmp)
			refreshCh <- refreshResult{snapshot: tmp, view: tmp.View}
		}()
	}

	killCh := make(chan string, 1)
	killInFlight := false
	startKill := func(p uint16) {
		if killInFlight || actions.KillPort == nil {
			return
		}
		killInFlight = true
		app.LastError = fmt.Sprintf("Killing process on port %d...", p)
		go func() {
			if err := actions.KillPort(p); err != nil {
				killCh <- "Kill failed: " + err.Error()
				return
			}
			killCh <- fmt.Sprintf("Freed port %d", p)
		}()
	}

	// manual refreshes on top of the ticker
	manual := rate.NewLimiter(rate.Every(500*time.Millisecond), 1)

	tick := time.NewTicker(app.RefreshInt)
	defer tick.Stop()

	for {
		switch app.Mode {
		case ModeDashboard, ModeSearch:
			DrawDashboard(app)
		case ModeInspect:
			DrawInspector(app)
		}
		s.Show()

		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				s.Sync()

			case *tcell.EventKey:
				switch app.Mode {

				case ModeSearch:
					switch tev.Key() {
					case tcell.KeyEscape:
						app.SetQuery("")
						app.Mode = ModeDashboard
					case tcell.KeyEnter:
						app.Mode = ModeDashboard
					case tcell.KeyBackspace, tcell.KeyBackspace2:
						if q := app.Filter.Query; len(q) > 0 {
							app.SetQuery(q[:len(q)-1])
						}
					case tcell.KeyRune:
						app.SetQuery(app.Filter.Query + string(tev.Rune()))
					}

				case ModeDashboard:
					switch tev.Key() {
					case tcell.KeyUp:
						app.MoveSelection(-1)
					case tcell.KeyDown:
						app.MoveSelection(1)
					case tcell.KeyEnter:
						if p, ok := app.Selected(); ok {
							app.InspectPort = p.Port
							app.Mode = ModeInspect
						}
					}

					switch tev.Rune() {
					case 'q':
						return nil
					case '/':
						app.Mode = ModeSearch
					case 'f':
						app.CycleStatusFilter()
					case 'c':
						if app.View == ViewAll {
							app.View = ViewCommon
						} else {
							app.View = ViewAll
						}
						startRefresh()
					case 'r':
						if manual.Allow() {
							startRefresh()
						} else {
							app.LastError = "Refresh throttled"
						}
					case 'e':
						if app.Elevated {
							app.LastError = "Already running elevated"
						} else if app.CanElevate {
							return ErrElevate
						} else {
							app.LastError = app.Hint
						}
					case 'k':
						if p, ok := app.Selected(); ok {
							handleKillKey(app, p.Port, startKill)
						}
					}

				case ModeInspect:
					if tev.Key() == tcell.KeyEscape {
						app.DisarmKill()
						app.Mode = ModeDashboard
					}
					if tev.Rune() == 'q' {
						return nil
					}
					if tev.Rune() == 'k' || tev.Rune() == 'K' {
						handleKillKey(app, app.InspectPort, startKill)
					}
				}
			}

		case <-tick.C:
			startRefresh()

		case msg := <-killCh:
			killInFlight = false
			startRefresh()
			app.LastError = msg

		case res := <-refreshCh:
			refreshInFlight = false
			if res.view != app.View {
				// view toggled mid-flight; this result is stale
				startRefresh()
				break
			}
			status := app.LastError
			app.Ports = res.snapshot.Ports
			app.LastUpdate = res.snapshot.LastUpdate
			app.LastError = res.snapshot.LastError
			if app.LastError == "" && isSticky(status) {
				app.LastError = status
			}
			app.applyFilter()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized
// (PollEvent returns nil) or Run has returned.
func pollEvents(s tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func handleKillKey(app *AppState, port uint16, startKill func(uint16)) {
	now := time.Now()
	if app.ConfirmKillReady(port, now) {
		app.DisarmKill()
		startKill(port)
		return
	}

	p, ok := shared.FindPort(app.Ports, port)
	if !ok || p.Process == nil {
		app.LastError = fmt.Sprintf("Port %d has no owning process", port)
		return
	}
	app.ArmKill(port, now)
	app.LastError = fmt.Sprintf("Press k again within %s to kill %s (PID %d) on port %d",
		app.ConfirmKillTimeout, p.Process.Name, p.Process.PID, port)
}

// isSticky keeps kill outcomes on screen across the refresh they trigger.
func isSticky(msg string) bool {
	return strings.HasPrefix(msg, "Freed port") || strings.HasPrefix(msg, "Kill failed")
}
