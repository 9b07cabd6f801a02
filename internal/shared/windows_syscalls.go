//go:build windows
// +build windows

package shared

import "golang.org/x/sys/windows"

var (
	IPHlpapi           = windows.NewLazySystemDLL("iphlpapi.dll")
	ProcGetExtendedTcp = IPHlpapi.NewProc("GetExtendedTcpTable")
	ProcGetExtendedUdp = IPHlpapi.NewProc("GetExtendedUdpTable")
)

const (
	AF_INET                 = 2
	AF_INET6                = 23
	TCP_TABLE_OWNER_PID_ALL = 5
	UDP_TABLE_OWNER_PID     = 1

	ERROR_INSUFFICIENT_BUFFER = 122
)
