package netstat

import (
	"encoding/binary"
	"fmt"
	"net"

	"porter/internal/shared"
)

// Row sizes of the *_OWNER_PID structures returned by GetExtendedTcpTable
// and GetExtendedUdpTable. Every table is a DWORD count followed by rows.
const (
	tcpRowSize  = 24 // MIB_TCPROW_OWNER_PID
	tcp6RowSize = 56 // MIB_TCP6ROW_OWNER_PID
	udpRowSize  = 12 // MIB_UDPROW_OWNER_PID
	udp6RowSize = 28 // MIB_UDP6ROW_OWNER_PID
)

// walkTable calls fn for each row of a MIB table buffer. The entry count is
// checked against the buffer length before any row is touched.
func walkTable(buf []byte, rowSize int, fn func(row []byte)) error {
	if len(buf) < 4 {
		return fmt.Errorf("mib table: buffer too short (%d bytes)", len(buf))
	}
	n := binary.LittleEndian.Uint32(buf)
	need := 4 + uint64(n)*uint64(rowSize)
	if need > uint64(len(buf)) {
		return fmt.Errorf("mib table: %d rows need %d bytes, have %d", n, need, len(buf))
	}
	for i := 0; i < int(n); i++ {
		off := 4 + i*rowSize
		fn(buf[off : off+rowSize])
	}
	return nil
}

func le32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

func decodeTCP4Table(buf []byte) ([]shared.NetworkConnection, error) {
	var out []shared.NetworkConnection
	err := walkTable(buf, tcpRowSize, func(r []byte) {
		out = append(out, shared.NetworkConnection{
			State:        tcpStateToString(le32(r, 0)),
			LocalAddress: ipv4FromDWORD(le32(r, 4)),
			LocalPort:    ntohs(le32(r, 8)),
			PID:          int(le32(r, 20)),
			Protocol:     shared.ProtocolTCP,
		})
	})
	return out, err
}

// MIB_TCP6ROW_OWNER_PID: local addr[16], scope, port, remote addr[16],
// scope, port, state, pid.
func decodeTCP6Table(buf []byte) ([]shared.NetworkConnection, error) {
	var out []shared.NetworkConnection
	err := walkTable(buf, tcp6RowSize, func(r []byte) {
		out = append(out, shared.NetworkConnection{
			LocalAddress: net.IP(append([]byte(nil), r[0:16]...)).String(),
			LocalPort:    ntohs(le32(r, 20)),
			State:        tcpStateToString(le32(r, 48)),
			PID:          int(le32(r, 52)),
			Protocol:     shared.ProtocolTCP,
		})
	})
	return out, err
}

func decodeUDP4Table(buf []byte) ([]shared.NetworkConnection, error) {
	var out []shared.NetworkConnection
	err := walkTable(buf, udpRowSize, func(r []byte) {
		out = append(out, shared.NetworkConnection{
			LocalAddress: ipv4FromDWORD(le32(r, 0)),
			LocalPort:    ntohs(le32(r, 4)),
			PID:          int(le32(r, 8)),
			Protocol:     shared.ProtocolUDP,
		})
	})
	return out, err
}

func decodeUDP6Table(buf []byte) ([]shared.NetworkConnection, error) {
	var out []shared.NetworkConnection
	err := walkTable(buf, udp6RowSize, func(r []byte) {
		out = append(out, shared.NetworkConnection{
			LocalAddress: net.IP(append([]byte(nil), r[0:16]...)).String(),
			LocalPort:    ntohs(le32(r, 20)),
			PID:          int(le32(r, 24)),
			Protocol:     shared.ProtocolUDP,
		})
	})
	return out, err
}
