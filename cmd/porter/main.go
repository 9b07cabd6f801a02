package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"porter/internal/elevation"
	"porter/internal/netstat"
	"porter/internal/process"
	"porter/internal/shared"
	"porter/internal/telemetry"
	"porter/internal/ui"
)

type options struct {
	once     bool
	interval time.Duration
	asJSON   bool
	scan     bool
	ports    string
	port     uint
	killPID  int
	killPort uint
	info     bool
	elevated bool
	elevate  bool
	config   string
	logPath  string
	verbose  bool
}

func parseFlags() options {
	var o options
	flag.BoolVar(&o.once, "once", false, "List active ports once and exit")
	flag.DurationVar(&o.interval, "interval", 0, "Dashboard refresh interval (e.g. 500ms, 2s)")
	flag.BoolVar(&o.asJSON, "json", false, "Print query results as JSON")
	flag.BoolVar(&o.scan, "scan", false, "Report the status of the common ports (or -ports) and exit")
	flag.StringVar(&o.ports, "ports", "", "Comma-separated ports for -scan, e.g. 3000,8080")
	flag.UintVar(&o.port, "port", 0, "Show details for one port and exit")
	flag.IntVar(&o.killPID, "kill-pid", 0, "Terminate a process by PID")
	flag.UintVar(&o.killPort, "kill-port", 0, "Terminate the process owning a port")
	flag.BoolVar(&o.info, "info", false, "Print a host summary and exit")
	flag.BoolVar(&o.elevated, "elevated", false, "Report whether porter runs elevated and exit")
	flag.BoolVar(&o.elevate, "elevate", false, "Relaunch porter with administrator privileges")
	flag.StringVar(&o.config, "config", "", "Path to a YAML config file")
	flag.StringVar(&o.logPath, "log", "", "Stream dashboard snapshots as JSON to this file")
	flag.BoolVar(&o.verbose, "v", false, "Log skipped socket sources to stderr")
	flag.Parse()
	return o
}

/* ---------------- main ---------------- */

func main() {
	log.SetFlags(0)
	log.SetPrefix("porter: ")

	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := shared.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.interval > 0 {
		cfg.RefreshInterval = opts.interval
	}

	if opts.elevate {
		if elevation.IsElevated() {
			fmt.Println("porter is already running elevated")
			return nil
		}
		return elevation.RequestElevation()
	}

	enum := netstat.Platform()
	if fs, ok := enum.(*netstat.ProcFS); ok && opts.verbose {
		fs.Logf = log.Printf
	}

	// the kill manager refreshes its own table so it never races the monitor
	monitor := telemetry.NewMonitor(enum, process.NewTable(), cfg.CommonPorts)
	killer := telemetry.NewManager(enum, process.NewTable(), cfg.GracePeriod)

	out := newPrinter(os.Stdout, opts.asJSON)

	switch {
	case opts.info:
		return out.host(telemetry.HostInfo())

	case opts.elevated:
		return out.elevated(elevation.IsElevated(), elevation.Hint())

	case opts.killPID != 0:
		if err := killer.KillProcess(opts.killPID); err != nil {
			return err
		}
		return out.message(fmt.Sprintf("terminated PID %d", opts.killPID))

	case opts.killPort != 0:
		port, err := portArg(opts.killPort)
		if err != nil {
			return err
		}
		if err := killer.KillProcessByPort(port); err != nil {
			return err
		}
		return out.message(fmt.Sprintf("freed port %d", port))

	case opts.port != 0:
		port, err := portArg(opts.port)
		if err != nil {
			return err
		}
		p, err := monitor.PortDetails(port)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("port %d: %w", port, shared.ErrPortNotInUse)
		}
		return out.ports([]shared.Port{*p})

	case opts.scan:
		requested, err := shared.ParsePortList(opts.ports)
		if err != nil {
			return err
		}
		ports, err := monitor.ScanPorts(requested)
		if err != nil {
			return err
		}
		return out.ports(ports)

	case opts.once:
		ports, err := monitor.ActivePorts()
		if err != nil {
			return err
		}
		return out.ports(ports)
	}

	return dashboard(cfg, opts.logPath, monitor, killer)
}

/* ---------------- interactive TUI ---------------- */

func dashboard(cfg shared.Config, logPath string, monitor *telemetry.Monitor, killer *telemetry.Manager) error {
	elevated := elevation.IsElevated()
	app := &ui.AppState{
		Host:               telemetry.HostInfo(),
		Elevated:           elevated,
		CanElevate:         !elevated && elevation.Supported,
		Hint:               elevation.Hint(),
		RefreshInt:         cfg.RefreshInterval,
		ConfirmKillTimeout: cfg.ConfirmKillTimeout,
	}

	if logPath == "-" {
		return errors.New("-log needs a file path while the dashboard owns stdout")
	}
	logger, err := shared.NewJSONLogger(logPath, false)
	if err != nil {
		return err
	}

	sc := &ui.ScannerAdapter{
		All:    monitor.ActivePorts,
		Common: monitor.ScanCommonPorts,
		Logger: logger,
	}

	err = ui.Run(app, sc, ui.Actions{KillPort: killer.KillProcessByPort})
	if cerr := logger.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if errors.Is(err, ui.ErrElevate) {
		return elevation.RequestElevation()
	}
	return err
}

func portArg(v uint) (uint16, error) {
	if v == 0 || v > 65535 {
		return 0, fmt.Errorf("invalid port %d", v)
	}
	return uint16(v), nil
}
