// Package cli implements the blocksnap command-line interface.
//
// The commands replay scenario files through the drag engine:
//   - simulate: run a scenario and check its expectations
//   - graph: export the workspace after some steps as DOT, SVG or PNG
//   - play: drive a drag interactively in the terminal
//   - serve: expose a scenario workspace over HTTP
//   - config: show or create the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes the drag engine's own debug output.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Replayed 4 steps (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
