// Package cli implements the hovercard command-line interface.
//
// Commands resolve links against the built-in provider registry, fetch and
// cache their previews, and render cards in the terminal. The CLI is built
// using cobra and logs with charmbracelet/log; --verbose switches to debug
// level.
//
// # Commands
//
//   - preview: Render the card for one URL
//   - browse: Hover links of an HTML document in an interactive terminal view
//   - serve: Expose the fetch actor over HTTP
//   - links: List the previewable links of an HTML document
//   - prefetch: Warm the cache for a list of URLs
//   - providers: List the provider registry
//   - cache: Inspect or clear the preview cache
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

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Prefetched 12 links (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
