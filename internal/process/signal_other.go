//go:build !unix && !windows

package process

import (
	"fmt"

	"porter/internal/shared"
)

func Terminate(pid int) error {
	return fmt.Errorf("terminate pid %d: %w", pid, shared.ErrUnsupported)
}

func Kill(pid int) error {
	return fmt.Errorf("kill pid %d: %w", pid, shared.ErrUnsupported)
}
