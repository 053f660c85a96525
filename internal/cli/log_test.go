package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
)

// simulateLog runs simulate on the insert scenario and returns the log output.
func simulateLog(t *testing.T, verbose bool) string {
	t.Helper()
	path := writeScenario(t, "insert.yaml", insertScenario)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	if verbose {
		c.SetLogLevel(LogDebug)
	}
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"simulate", "--no-cache", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	return logs.String()
}

func TestSimulateLogsReplayTime(t *testing.T) {
	out := simulateLog(t, false)

	// e.g. "14:32:01.45 INFO Replayed 3 steps (1ms)"
	re := regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{2} INFO Replayed 3 steps \([^)]+\)`)
	if !re.MatchString(out) {
		t.Errorf("log = %q, want timestamped replay summary", out)
	}
}

func TestSimulateLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "info", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := simulateLog(t, tt.verbose)

			gotDebug := strings.Contains(out, "DEBU")
			if gotDebug != tt.wantDebug {
				t.Errorf("debug output = %v, want %v\n%s", gotDebug, tt.wantDebug, out)
			}
			if tt.wantDebug && !strings.Contains(out, "steps=3") {
				t.Errorf("log = %q, want scenario summary with steps=3", out)
			}
			if !strings.Contains(out, "Replayed 3 steps") {
				t.Errorf("log = %q, want replay summary at every level", out)
			}
		})
	}
}
