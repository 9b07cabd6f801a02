//go:build windows
// +build windows

package elevation

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// Supported reports whether RequestElevation can relaunch the process.
const Supported = true

const restartHint = "restart porter as Administrator to kill system processes"

// IsElevated queries the process token's elevation flag. Any failure reads as false.
func IsElevated() bool {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()

	return token.IsElevated()
}

// RequestElevation relaunches the current executable through a UAC prompt
// from a hidden PowerShell and exits this instance. It only returns on error.
func RequestElevation() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	cmd := exec.Command("powershell",
		"-NoProfile",
		"-WindowStyle", "Hidden",
		"-Command", relaunchCommand(exe, relaunchArgs(os.Args[1:])),
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("request elevation: %w", err)
	}

	os.Exit(0)
	return nil
}

func relaunchCommand(exe string, args []string) string {
	cmd := "Start-Process -FilePath " + psQuote(exe) + " -Verb RunAs"
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			quoted[i] = psQuote(a)
		}
		cmd += " -ArgumentList " + strings.Join(quoted, ",")
	}
	return cmd
}

// psQuote single-quotes s for PowerShell, doubling embedded quotes.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
