//go:build !unix && !windows

package elevation

import (
	"fmt"

	"porter/internal/shared"
)

// Supported reports whether RequestElevation can relaunch the process.
const Supported = false

const restartHint = "this platform has no privilege elevation"

func IsElevated() bool {
	return false
}

func RequestElevation() error {
	return fmt.Errorf("%w: %s", shared.ErrUnsupported, restartHint)
}
