// Package elevation reports and requests administrative privileges.
package elevation

// Hint returns guidance for gaining the privileges needed to kill
// protected processes, or "" when already elevated.
func Hint() string {
	if IsElevated() {
		return ""
	}
	return restartHint
}

// relaunchArgs drops the elevation request flag so the elevated
// instance does not prompt again.
func relaunchArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "-elevate" || a == "--elevate" {
			continue
		}
		out = append(out, a)
	}
	return out
}
