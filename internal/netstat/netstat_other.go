//go:build !linux && !darwin && !windows

package netstat

import "porter/internal/shared"

type unsupported struct{}

// Platform returns an enumerator that always reports an empty table.
func Platform() Enumerator {
	return unsupported{}
}

func (unsupported) Connections() ([]shared.NetworkConnection, error) {
	return nil, nil
}

func (unsupported) IsSystemPID(int) bool {
	return false
}
