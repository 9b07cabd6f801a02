//go:build windows
// +build windows

package netstat

import (
	"fmt"
	"unsafe"

	"porter/internal/shared"

	"golang.org/x/sys/windows"
)

type IPHelper struct{}

func Platform() Enumerator {
	return IPHelper{}
}

func (IPHelper) IsSystemPID(pid int) bool {
	return pid < 1000
}

type mibTable struct {
	proc   *windows.LazyProc
	family uint32
	class  uint32
	decode func([]byte) ([]shared.NetworkConnection, error)
}

// IPv4 TCP first so it wins the per-port dedup.
var mibTables = []mibTable{
	{shared.ProcGetExtendedTcp, shared.AF_INET, shared.TCP_TABLE_OWNER_PID_ALL, decodeTCP4Table},
	{shared.ProcGetExtendedTcp, shared.AF_INET6, shared.TCP_TABLE_OWNER_PID_ALL, decodeTCP6Table},
	{shared.ProcGetExtendedUdp, shared.AF_INET, shared.UDP_TABLE_OWNER_PID, decodeUDP4Table},
	{shared.ProcGetExtendedUdp, shared.AF_INET6, shared.UDP_TABLE_OWNER_PID, decodeUDP6Table},
}

// Connections never fails: a table whose call fails contributes no rows.
func (IPHelper) Connections() ([]shared.NetworkConnection, error) {
	var out []shared.NetworkConnection
	for _, t := range mibTables {
		buf, err := extendedTable(t.proc, t.family, t.class)
		if err != nil {
			continue
		}
		rows, err := t.decode(buf)
		if err != nil {
			continue
		}
		out = append(out, rows...)
	}
	return out, nil
}

// extendedTable runs the size-probe then fill protocol and returns a buffer
// trimmed to the size the API reported. The table can grow between the two
// calls, so an insufficient-buffer fill is retried with the new size.
func extendedTable(proc *windows.LazyProc, family, class uint32) ([]byte, error) {
	var size uint32

	r0, _, _ := proc.Call(
		0,
		uintptr(unsafe.Pointer(&size)),
		1, // sorted
		uintptr(family),
		uintptr(class),
		0,
	)
	if r0 != uintptr(shared.ERROR_INSUFFICIENT_BUFFER) && r0 != 0 {
		return nil, fmt.Errorf("%s size query failed: %d", proc.Name, r0)
	}

	for attempt := 0; attempt < 3; attempt++ {
		if size == 0 {
			return nil, fmt.Errorf("%s returned size 0", proc.Name)
		}

		buf := make([]byte, size)
		r0, _, e1 := proc.Call(
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(unsafe.Pointer(&size)),
			1,
			uintptr(family),
			uintptr(class),
			0,
		)
		switch r0 {
		case 0:
			if int(size) > len(buf) {
				size = uint32(len(buf))
			}
			return buf[:size], nil
		case uintptr(shared.ERROR_INSUFFICIENT_BUFFER):
			continue
		default:
			return nil, fmt.Errorf("%s failed: %v (code=%d)", proc.Name, e1, r0)
		}
	}
	return nil, fmt.Errorf("%s: table kept growing", proc.Name)
}
