package shared

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// JSONLogger streams port snapshots as a JSON array.
type JSONLogger struct {
	mu      sync.Mutex
	w       io.Writer
	closeFn func() error
	pretty  bool
	started bool
	first   bool
}

func NewJSONLogger(path string, pretty bool) (*JSONLogger, error) {
	if path == "" {
		return nil, nil
	}
	if path == "-" {
		return NewJSONWriter(os.Stdout, pretty), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	l := NewJSONWriter(f, pretty)
	l.closeFn = f.Close
	return l, nil
}

func NewJSONWriter(w io.Writer, pretty bool) *JSONLogger {
	return &JSONLogger{
		w:      w,
		pretty: pretty,
		first:  true,
	}
}

func (l *JSONLogger) WriteSnapshot(ports []Port) error {
	if l == nil || l.w == nil {
		return nil
	}
	if ports == nil {
		ports = []Port{}
	}

	return l.writeEntry(Snapshot{
		CapturedAt: time.Now().UTC(),
		Ports:      ports,
	})
}

// WriteValue writes any single value (port detail, host info) as an array element.
func (l *JSONLogger) WriteValue(v any) error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.writeEntry(v)
}

func (l *JSONLogger) writeEntry(entry any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		if _, err := io.WriteString(l.w, "[\n"); err != nil {
			return err
		}
		l.started = true
	}

	if !l.first {
		if _, err := io.WriteString(l.w, ",\n"); err != nil {
			return err
		}
	}
	l.first = false

	var (
		out []byte
		err error
	)
	if l.pretty {
		out, err = json.MarshalIndent(entry, "  ", "  ")
	} else {
		out, err = json.Marshal(entry)
	}
	if err != nil {
		return err
	}

	if _, err := l.w.Write(out); err != nil {
		return err
	}
	if _, err := io.WriteString(l.w, "\n"); err != nil {
		return err
	}

	return nil
}

func (l *JSONLogger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		if _, err := io.WriteString(l.w, "]\n"); err != nil {
			return err
		}
		l.started = false
	}

	if l.closeFn != nil {
		return l.closeFn()
	}
	return nil
}
