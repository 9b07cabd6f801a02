//go:build unix

package elevation

import (
	"fmt"

	"porter/internal/shared"

	"golang.org/x/sys/unix"
)

// Supported reports whether RequestElevation can relaunch the process.
const Supported = false

const restartHint = "restart porter with sudo/root privileges to kill system processes"

// IsElevated reports whether the effective uid is root.
func IsElevated() bool {
	return unix.Geteuid() == 0
}

// RequestElevation cannot relaunch on Unix; the user must re-run under sudo.
func RequestElevation() error {
	return fmt.Errorf("%w: %s", shared.ErrUnsupported, restartHint)
}
