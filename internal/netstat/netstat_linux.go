//go:build linux

package netstat

func Platform() Enumerator {
	return &ProcFS{Root: "/proc"}
}
