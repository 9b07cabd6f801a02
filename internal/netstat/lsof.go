package netstat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"porter/internal/shared"
)

// Lsof enumerates sockets by running `lsof -i -P -n` and parsing its table.
type Lsof struct {
	Path string
}

func (l *Lsof) IsSystemPID(pid int) bool {
	return pid < 500
}

func (l *Lsof) Connections() ([]shared.NetworkConnection, error) {
	path := l.Path
	if path == "" {
		path = "lsof"
	}

	out, err := exec.Command(path, "-i", "-P", "-n").Output()
	if err != nil {
		// lsof exits 1 when it matched nothing (or hit a permission
		// error on some files); whatever it printed is still usable.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: lsof: %v", shared.ErrNoSources, err)
		}
	}

	return parseLsof(strings.NewReader(string(out))), nil
}

// parseLsof reads lsof's default table:
//
//	COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME [(STATE)]
//
// NAME holds the local endpoint, optionally followed by "->remote".
func parseLsof(r io.Reader) []shared.NetworkConnection {
	var conns []shared.NetworkConnection

	scanner := bufio.NewScanner(r)
	scanner.Scan() // header

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 9 {
			continue
		}

		name := fields[8]
		if local, _, ok := strings.Cut(name, "->"); ok {
			name = local
		}

		idx := strings.LastIndex(name, ":")
		if idx == -1 {
			continue
		}
		port, err := strconv.ParseUint(name[idx+1:], 10, 16)
		if err != nil {
			continue
		}
		addr := strings.TrimSuffix(strings.TrimPrefix(name[:idx], "["), "]")

		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			pid = 0
		}

		proto := shared.ProtocolUDP
		if strings.Contains(fields[7], "TCP") {
			proto = shared.ProtocolTCP
		}

		state := ""
		if len(fields) > 9 {
			state = strings.Trim(fields[9], "()")
		}

		conns = append(conns, shared.NetworkConnection{
			LocalAddress: addr,
			LocalPort:    uint16(port),
			Protocol:     proto,
			PID:          pid,
			State:        state,
		})
	}

	return conns
}
