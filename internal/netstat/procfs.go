package netstat

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"porter/internal/shared"

	"golang.org/x/sync/errgroup"
)

// ProcFS enumerates sockets from the /proc/net tables and recovers owners
// by matching socket inodes against /proc/<pid>/fd links.
type ProcFS struct {
	Root string
	Logf func(format string, args ...any)
}

func (p *ProcFS) IsSystemPID(pid int) bool {
	return pid < 1000
}

type procNetTable struct {
	name  string
	proto shared.Protocol
	ipv6  bool
}

// Read order matters: the first row per port wins downstream.
var procNetTables = []procNetTable{
	{"net/tcp", shared.ProtocolTCP, false},
	{"net/tcp6", shared.ProtocolTCP, true},
	{"net/udp", shared.ProtocolUDP, false},
	{"net/udp6", shared.ProtocolUDP, true},
}

type procNetRow struct {
	conn  shared.NetworkConnection
	inode string
}

func (p *ProcFS) root() string {
	if p.Root == "" {
		return "/proc"
	}
	return p.Root
}

func (p *ProcFS) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}

func (p *ProcFS) Connections() ([]shared.NetworkConnection, error) {
	var (
		g      errgroup.Group
		owners map[string]int
		tables = make([][]procNetRow, len(procNetTables))
		errs   = make([]error, len(procNetTables))
	)

	g.Go(func() error {
		owners = SocketOwners(p.root())
		return nil
	})
	for i, t := range procNetTables {
		i, t := i, t
		g.Go(func() error {
			tables[i], errs[i] = readProcNet(filepath.Join(p.root(), t.name), t.proto, t.ipv6)
			return nil
		})
	}
	_ = g.Wait()

	var (
		out    []shared.NetworkConnection
		failed int
	)
	for i, rows := range tables {
		if errs[i] != nil {
			p.logf("skipping %s: %v", procNetTables[i].name, errs[i])
			failed++
			continue
		}
		for _, r := range rows {
			r.conn.PID = owners[r.inode]
			out = append(out, r.conn)
		}
	}

	if failed == len(procNetTables) {
		return nil, fmt.Errorf("%w under %s", shared.ErrNoSources, p.root())
	}
	return out, nil
}

// readProcNet parses one /proc/net/{tcp,udp}[6] table. Malformed rows are skipped.
func readProcNet(path string, proto shared.Protocol, ipv6 bool) ([]procNetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []procNetRow
	scanner := bufio.NewScanner(f)
	scanner.Scan() // skip header

	for scanner.Scan() {
		row, ok := parseProcNetLine(scanner.Text(), proto, ipv6)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	return rows, scanner.Err()
}

func parseProcNetLine(line string, proto shared.Protocol, ipv6 bool) (procNetRow, bool) {
	fields := strings.Fields(line)
	if len(fields) < 10 {
		return procNetRow{}, false
	}

	addrHex, portHex, ok := strings.Cut(fields[1], ":")
	if !ok {
		return procNetRow{}, false
	}
	port, err := strconv.ParseUint(portHex, 16, 16)
	if err != nil {
		return procNetRow{}, false
	}

	var addr string
	if ipv6 {
		addr, ok = DecodeHexIPv6(addrHex)
	} else {
		addr, ok = DecodeHexIPv4(addrHex)
	}
	if !ok {
		return procNetRow{}, false
	}

	state := ""
	if proto == shared.ProtocolTCP {
		state = linuxTCPState(strings.ToUpper(fields[3]))
	}

	inode := fields[9]
	if inode == "0" {
		inode = ""
	}

	return procNetRow{
		conn: shared.NetworkConnection{
			LocalAddress: addr,
			LocalPort:    uint16(port),
			Protocol:     proto,
			State:        state,
		},
		inode: inode,
	}, true
}

// SocketOwners maps socket inode -> PID for every readable /proc/<pid>/fd.
// When several processes share a socket the lowest-sorted PID directory wins.
func SocketOwners(root string) map[string]int {
	owners := make(map[string]int)

	entries, err := os.ReadDir(root)
	if err != nil {
		return owners
	}

	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}

		fdDir := filepath.Join(root, entry.Name(), "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			continue // permission denied or exited
		}

		for _, fd := range fds {
			link, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}
			inode, ok := socketInode(link)
			if !ok {
				continue
			}
			if _, seen := owners[inode]; !seen {
				owners[inode] = pid
			}
		}
	}

	return owners
}

// socketInode extracts 12345 from "socket:[12345]".
func socketInode(link string) (string, bool) {
	rest, ok := strings.CutPrefix(link, "socket:[")
	if !ok {
		return "", false
	}
	inode, ok := strings.CutSuffix(rest, "]")
	if !ok || inode == "" {
		return "", false
	}
	return inode, true
}
