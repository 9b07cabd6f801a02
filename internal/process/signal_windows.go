//go:build windows
// +build windows

package process

import (
	"errors"
	"fmt"

	"porter/internal/shared"

	"golang.org/x/sys/windows"
)

// Terminate ends pid. Windows has no cooperative stop signal for
// arbitrary processes, so this is the same call as Kill.
func Terminate(pid int) error {
	return terminate(pid)
}

func Kill(pid int) error {
	return terminate(pid)
}

func terminate(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: invalid pid %d", shared.ErrProcessNotFound, pid)
	}

	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_ACCESS_DENIED):
			return fmt.Errorf("%w: open pid %d", shared.ErrPermissionDenied, pid)
		case errors.Is(err, windows.ERROR_INVALID_PARAMETER):
			return fmt.Errorf("%w: pid %d", shared.ErrProcessNotFound, pid)
		}
		return fmt.Errorf("open process: %w", err)
	}
	defer windows.CloseHandle(h)

	if err := windows.TerminateProcess(h, 1); err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return fmt.Errorf("%w: terminate pid %d", shared.ErrPermissionDenied, pid)
		}
		return fmt.Errorf("terminate process: %w", err)
	}

	return nil
}
