package shared

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"unicode/utf8"
)

func IsLoopbackIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback()
}

func IsWildcardIP(ip string) bool {
	return ip == "0.0.0.0" || ip == "::" || ip == "*"
}

// BindScope describes who can reach a socket bound to ip.
func BindScope(ip string) string {
	switch {
	case ip == "":
		return "unknown"
	case IsWildcardIP(ip):
		return "all interfaces"
	case IsLoopbackIP(ip):
		return "loopback only"
	default:
		return "single interface"
	}
}

// TrimName shortens name to at most max runes, marking the cut with "...".
func TrimName(name string, max int) string {
	if max < 0 || utf8.RuneCountInString(name) <= max {
		return name
	}
	r := []rune(name)
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// ParsePortList parses "3000, 8080,9000" into port numbers.
func ParsePortList(s string) ([]uint16, error) {
	var out []uint16
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 16)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid port %q", part)
		}
		out = append(out, uint16(n))
	}
	return out, nil
}

func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
