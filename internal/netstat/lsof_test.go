package netstat

import (
	"strings"
	"testing"

	"porter/internal/shared"
)

const lsofSample = `COMMAND     PID   USER   FD   TYPE             DEVICE SIZE/OFF NODE NAME
rapportd    512   dev    4u  IPv4 0x1a2b3c4d5e6f7a8b      0t0  TCP *:49152 (LISTEN)
node       4242   dev   23u  IPv6 0x1a2b3c4d5e6f7a8c      0t0  TCP [::1]:3000 (LISTEN)
node       4242   dev   24u  IPv4 0x1a2b3c4d5e6f7a8d      0t0  TCP 127.0.0.1:3000->127.0.0.1:52114 (ESTABLISHED)
mDNSRespo   301   dev    7u  IPv4 0x1a2b3c4d5e6f7a8e      0t0  UDP *:5353
broken      xyz   dev    8u  IPv4 0x1a2b3c4d5e6f7a8f      0t0  TCP 127.0.0.1:8080 (LISTEN)
short line
weird       777   dev    9u  IPv4 0x1a2b3c4d5e6f7a90      0t0  TCP localhost:http (LISTEN)
`

func TestParseLsof(t *testing.T) {
	conns := parseLsof(strings.NewReader(lsofSample))

	want := []shared.NetworkConnection{
		{LocalAddress: "*", LocalPort: 49152, Protocol: shared.ProtocolTCP, PID: 512, State: "LISTEN"},
		{LocalAddress: "::1", LocalPort: 3000, Protocol: shared.ProtocolTCP, PID: 4242, State: "LISTEN"},
		{LocalAddress: "127.0.0.1", LocalPort: 3000, Protocol: shared.ProtocolTCP, PID: 4242, State: "ESTABLISHED"},
		{LocalAddress: "*", LocalPort: 5353, Protocol: shared.ProtocolUDP, PID: 301, State: ""},
		{LocalAddress: "127.0.0.1", LocalPort: 8080, Protocol: shared.ProtocolTCP, PID: 0, State: "LISTEN"},
	}

	if len(conns) != len(want) {
		t.Fatalf("parseLsof() returned %d rows, want %d: %+v", len(conns), len(want), conns)
	}
	for i := range want {
		if conns[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, conns[i], want[i])
		}
	}
}

func TestParseLsofHeaderOnly(t *testing.T) {
	conns := parseLsof(strings.NewReader("COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME\n"))
	if len(conns) != 0 {
		t.Errorf("expected no rows, got %d", len(conns))
	}
}

func TestLsofSystemThreshold(t *testing.T) {
	l := &Lsof{}
	if !l.IsSystemPID(1) || !l.IsSystemPID(499) {
		t.Error("PIDs below 500 should be system on macOS")
	}
	if l.IsSystemPID(500) || l.IsSystemPID(99999) {
		t.Error("PIDs from 500 up should not be system on macOS")
	}
}

func TestLsofMissingBinary(t *testing.T) {
	l := &Lsof{Path: "/nonexistent/lsof-binary"}
	if _, err := l.Connections(); err == nil {
		t.Error("expected error when lsof cannot be started")
	}
}
