package netstat

import (
	"encoding/hex"
	"net"
	"strconv"

	"porter/internal/shared"
)

// Enumerator reads the host's live socket table. Implementations are
// best-effort: unreadable sources are skipped and partial results returned.
type Enumerator interface {
	Connections() ([]shared.NetworkConnection, error)
	// IsSystemPID reports whether pid falls in the OS-critical range.
	IsSystemPID(pid int) bool
}

// ipv4FromDWORD renders a native-endian address, low byte first.
func ipv4FromDWORD(addr uint32) string {
	b := []byte{
		byte(addr),
		byte(addr >> 8),
		byte(addr >> 16),
		byte(addr >> 24),
	}
	return net.IP(b).String()
}

// DecodeHexIPv4 decodes the /proc/net form, e.g. "0100007F" -> "127.0.0.1".
func DecodeHexIPv4(s string) (string, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return "", false
	}
	return ipv4FromDWORD(uint32(v)), true
}

// DecodeHexIPv6 decodes /proc/net/tcp6 addresses: four native-endian 32-bit groups.
func DecodeHexIPv6(s string) (string, bool) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != net.IPv6len {
		return "", false
	}
	ip := make(net.IP, net.IPv6len)
	for i := 0; i < 4; i++ {
		ip[i*4+0] = b[i*4+3]
		ip[i*4+1] = b[i*4+2]
		ip[i*4+2] = b[i*4+1]
		ip[i*4+3] = b[i*4+0]
	}
	return ip.String(), true
}

// ntohs takes the port from the low 16 bits of a DWORD in network order.
func ntohs(p uint32) uint16 {
	v := uint16(p)
	return (v >> 8) | (v << 8)
}

var mibTCPStates = [...]string{
	1:  "CLOSED",
	2:  "LISTEN",
	3:  "SYN_SENT",
	4:  "SYN_RCVD",
	5:  "ESTABLISHED",
	6:  "FIN_WAIT1",
	7:  "FIN_WAIT2",
	8:  "CLOSE_WAIT",
	9:  "CLOSING",
	10: "LAST_ACK",
	11: "TIME_WAIT",
	12: "DELETE_TCB",
}

// tcpStateToString maps MIB_TCP_STATE codes.
func tcpStateToString(s uint32) string {
	if s == 0 || s >= uint32(len(mibTCPStates)) {
		return "UNKNOWN"
	}
	return mibTCPStates[s]
}

// include/net/tcp_states.h
var linuxTCPStates = map[string]string{
	"01": "ESTABLISHED",
	"02": "SYN_SENT",
	"03": "SYN_RECV",
	"04": "FIN_WAIT1",
	"05": "FIN_WAIT2",
	"06": "TIME_WAIT",
	"07": "CLOSE",
	"08": "CLOSE_WAIT",
	"09": "LAST_ACK",
	"0A": "LISTEN",
	"0B": "CLOSING",
	"0C": "NEW_SYN_RECV",
}

func linuxTCPState(code string) string {
	if s, ok := linuxTCPStates[code]; ok {
		return s
	}
	return "UNKNOWN"
}
