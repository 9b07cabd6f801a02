package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"porter/internal/shared"
)

func TestPortArg(t *testing.T) {
	tests := []struct {
		in      uint
		want    uint16
		wantErr bool
	}{
		{3000, 3000, false},
		{65535, 65535, false},
		{0, 0, true},
		{65536, 0, true},
	}
	for _, tt := range tests {
		got, err := portArg(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("portArg(%d) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("portArg(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func samplePorts() []shared.Port {
	return []shared.Port{
		{
			Port:      3000,
			Status:    shared.StatusOccupied,
			Protocol:  shared.ProtocolTCP,
			IPAddress: "127.0.0.1",
			CreatedAt: time.Unix(1700000000, 0),
			Service:   "React/Node.js",
			Process:   &shared.Process{PID: 4242, Name: "node", Path: "/usr/bin/node"},
		},
		shared.FreePort(8080, time.Unix(1700000000, 0)),
	}
}

func TestPrinterPortsText(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinter(&buf, false).ports(samplePorts()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"PORT", "3000", "node", "4242", "8080", "free"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterSinglePortShowsProcess(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinter(&buf, false).ports(samplePorts()[:1]); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "/usr/bin/node") {
		t.Errorf("detail view missing path:\n%s", buf.String())
	}
}

func TestPrinterPortsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinter(&buf, true).ports(samplePorts()); err != nil {
		t.Fatal(err)
	}

	var snaps []shared.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snaps); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(snaps) != 1 || len(snaps[0].Ports) != 2 {
		t.Fatalf("got %+v", snaps)
	}
	if snaps[0].Ports[0].Process == nil || snaps[0].Ports[0].Process.PID != 4242 {
		t.Errorf("process lost in JSON: %+v", snaps[0].Ports[0])
	}
}

func TestPrinterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinter(&buf, false).ports(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no ports in use") {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrinterElevatedJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinter(&buf, true).elevated(false, "use sudo"); err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out[0]["elevated"] != false || out[0]["hint"] != "use sudo" {
		t.Errorf("got %v", out)
	}
}
