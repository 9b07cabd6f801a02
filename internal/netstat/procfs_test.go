package netstat

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"porter/internal/shared"
)

const tcpFixture = `  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 0100007F:0BB8 00000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 5555 1 0000000000000000 100 0 0 10 0
   1: 00000000:1F90 00000000:0000 0A 00000000:00000000 00:00000000 00000000     0        0 6666 1 0000000000000000 100 0 0 10 0
   2: 0100007F:0BB8 0100007F:CF12 01 00000000:00000000 00:00000000 00000000  1000        0 0 1 0000000000000000 20 4 30 10 -1
   3: garbage
   4: ZZZZZZZZ:0050 00000000:0000 0A 00000000:00000000 00:00000000 00000000     0        0 7777 1
`

const tcp6Fixture = `  sl  local_address                         remote_address                        st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 00000000000000000000000001000000:1451 00000000000000000000000000000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 8888 1 0000000000000000 100 0 0 10 0
`

const udpFixture = `   sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode ref pointer drops
  100: 00000000:14E9 00000000:0000 07 00000000:00000000 00:00000000 00000000   101        0 9999 2 0000000000000000 0
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func linkSocket(t *testing.T, root, pid, fd, inode string) {
	t.Helper()
	dir := filepath.Join(root, pid, "fd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("socket:["+inode+"]", filepath.Join(dir, fd)); err != nil {
		t.Fatal(err)
	}
}

func fixtureRoot(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlink fixtures need a unix filesystem")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "net", "tcp"), tcpFixture)
	writeFile(t, filepath.Join(root, "net", "tcp6"), tcp6Fixture)
	writeFile(t, filepath.Join(root, "net", "udp"), udpFixture)
	// net/udp6 deliberately missing

	linkSocket(t, root, "4242", "3", "5555")
	linkSocket(t, root, "4242", "4", "8888")
	linkSocket(t, root, "1", "7", "6666")
	linkSocket(t, root, "900", "1", "6666") // shared socket, PID 1 sorts first
	if err := os.Symlink("/dev/null", filepath.Join(root, "4242", "fd", "0")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "self", "status"), "not a pid dir")

	return root
}

func TestProcFSConnections(t *testing.T) {
	root := fixtureRoot(t)

	p := &ProcFS{Root: root}
	conns, err := p.Connections()
	if err != nil {
		t.Fatalf("Connections() error: %v", err)
	}

	want := []shared.NetworkConnection{
		{LocalAddress: "127.0.0.1", LocalPort: 3000, Protocol: shared.ProtocolTCP, PID: 4242, State: "LISTEN"},
		{LocalAddress: "0.0.0.0", LocalPort: 8080, Protocol: shared.ProtocolTCP, PID: 1, State: "LISTEN"},
		{LocalAddress: "127.0.0.1", LocalPort: 3000, Protocol: shared.ProtocolTCP, PID: 0, State: "ESTABLISHED"},
		{LocalAddress: "::1", LocalPort: 5201, Protocol: shared.ProtocolTCP, PID: 4242, State: "LISTEN"},
		{LocalAddress: "0.0.0.0", LocalPort: 5353, Protocol: shared.ProtocolUDP, PID: 0, State: ""},
	}

	if len(conns) != len(want) {
		t.Fatalf("Connections() returned %d rows, want %d: %+v", len(conns), len(want), conns)
	}
	for i := range want {
		if conns[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, conns[i], want[i])
		}
	}
}

func TestProcFSNoTables(t *testing.T) {
	p := &ProcFS{Root: t.TempDir()}

	_, err := p.Connections()
	if !errors.Is(err, shared.ErrNoSources) {
		t.Errorf("Connections() error = %v, want ErrNoSources", err)
	}
}

func TestProcFSLogsSkippedTables(t *testing.T) {
	root := fixtureRoot(t)

	var logged []string
	p := &ProcFS{Root: root, Logf: func(format string, args ...any) {
		logged = append(logged, format)
	}}
	if _, err := p.Connections(); err != nil {
		t.Fatalf("Connections() error: %v", err)
	}
	if len(logged) != 1 {
		t.Errorf("expected one skipped table to be logged, got %d", len(logged))
	}
}

func TestSocketOwners(t *testing.T) {
	root := fixtureRoot(t)

	owners := SocketOwners(root)
	tests := map[string]int{
		"5555": 4242,
		"8888": 4242,
		"6666": 1,
	}
	for inode, pid := range tests {
		if owners[inode] != pid {
			t.Errorf("owners[%s] = %d, want %d", inode, owners[inode], pid)
		}
	}
	if _, ok := owners["9999"]; ok {
		t.Error("unowned inode should be absent")
	}
}

func TestSocketInode(t *testing.T) {
	tests := []struct {
		link string
		want string
		ok   bool
	}{
		{"socket:[12345]", "12345", true},
		{"pipe:[12345]", "", false},
		{"socket:[]", "", false},
		{"socket:[123", "", false},
		{"/dev/null", "", false},
	}
	for _, tt := range tests {
		got, ok := socketInode(tt.link)
		if got != tt.want || ok != tt.ok {
			t.Errorf("socketInode(%q) = %q, %v; want %q, %v", tt.link, got, ok, tt.want, tt.ok)
		}
	}
}

func TestProcFSSystemThreshold(t *testing.T) {
	p := &ProcFS{}
	if !p.IsSystemPID(1) || !p.IsSystemPID(999) {
		t.Error("PIDs below 1000 should be system on Linux")
	}
	if p.IsSystemPID(1000) || p.IsSystemPID(99999) {
		t.Error("PIDs from 1000 up should not be system on Linux")
	}
}
