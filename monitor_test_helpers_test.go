package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intuitionamiga/six5go/mpu"
)

type monitorTestRig struct {
	mon *Monitor
	out *bytes.Buffer
}

func newMonitorTestRig(t *testing.T, cfg mpu.Config) *monitorTestRig {
	t.Helper()
	out := &bytes.Buffer{}
	mon := NewMonitor(cfg, out)
	t.Cleanup(mon.Close)
	return &monitorTestRig{mon: mon, out: out}
}

// exec runs each command and fails the test if one asks to quit.
func (r *monitorTestRig) exec(t *testing.T, cmds ...string) {
	t.Helper()
	for _, c := range cmds {
		if r.mon.ExecuteCommand(c) {
			t.Fatalf("%q requested quit", c)
		}
	}
}

// output returns everything printed so far and clears the buffer.
func (r *monitorTestRig) output() string {
	s := r.out.String()
	r.out.Reset()
	return s
}

func (r *monitorTestRig) requireOutput(t *testing.T, want ...string) {
	t.Helper()
	got := r.output()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Fatalf("output missing %q:\n%s", w, got)
		}
	}
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeHost records Start/Stop calls and can raise an interrupt on start.
type fakeHost struct {
	console   *Console
	interrupt bool
	starts    int
	stops     int
}

func (h *fakeHost) Start() error {
	h.starts++
	if h.interrupt {
		h.console.RouteHostKey(KEY_INTERRUPT)
	}
	return nil
}

func (h *fakeHost) Stop() error {
	h.stops++
	return nil
}
