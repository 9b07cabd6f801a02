//go:build darwin

package netstat

func Platform() Enumerator {
	return &Lsof{Path: "lsof"}
}
