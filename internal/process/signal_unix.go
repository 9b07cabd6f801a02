//go:build unix

package process

import (
	"errors"
	"fmt"

	"porter/internal/shared"

	"golang.org/x/sys/unix"
)

// Terminate asks pid to exit (SIGTERM).
func Terminate(pid int) error {
	return signal(pid, unix.SIGTERM)
}

// Kill forces pid to exit (SIGKILL).
func Kill(pid int) error {
	return signal(pid, unix.SIGKILL)
}

func signal(pid int, sig unix.Signal) error {
	if pid <= 0 {
		return fmt.Errorf("%w: invalid pid %d", shared.ErrProcessNotFound, pid)
	}

	err := unix.Kill(pid, sig)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ESRCH):
		return fmt.Errorf("%w: pid %d", shared.ErrProcessNotFound, pid)
	case errors.Is(err, unix.EPERM):
		return fmt.Errorf("%w: %s to pid %d", shared.ErrPermissionDenied, unix.SignalName(sig), pid)
	default:
		return fmt.Errorf("%s to pid %d: %w", unix.SignalName(sig), pid, err)
	}
}
