// Package progress reports how far a long check has got.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Reporter receives progress for a run over a known number of hands.
// Update may be called from any goroutine, but never concurrently; Start
// comes first and Finish last.
type Reporter interface {
	Start(total int)
	Update(done int)
	Finish(done int, err error)
}

// Modes accepted by New.
const (
	ModeNone = "none"
	ModeLog  = "log"
	ModeBar  = "bar"
	ModeTUI  = "tui"
)

// Modes lists the reporter names New understands.
func Modes() []string {
	return []string{ModeNone, ModeLog, ModeBar, ModeTUI}
}

// New builds the reporter for mode, writing to w.
func New(mode string, w io.Writer, logger *log.Logger, clock quartz.Clock) (Reporter, error) {
	switch mode {
	case ModeNone, "":
		return Nop{}, nil
	case ModeLog:
		return NewLogReporter(logger, clock), nil
	case ModeBar:
		return NewBarReporter(w), nil
	case ModeTUI:
		return NewTUIReporter(w, clock), nil
	default:
		return nil, fmt.Errorf("unknown progress mode %q", mode)
	}
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int) {}

func (Nop) Update(int) {}

func (Nop) Finish(int, error) {}

// LogReporter writes one structured log line per update.
type LogReporter struct {
	logger *log.Logger
	clock  quartz.Clock
	total  int
	start  time.Time
}

// NewLogReporter creates a reporter that logs through logger
func NewLogReporter(logger *log.Logger, clock quartz.Clock) *LogReporter {
	return &LogReporter{logger: logger.WithPrefix("progress"), clock: clock}
}

func (r *LogReporter) Start(total int) {
	r.total = total
	r.start = r.clock.Now()
	r.logger.Info("Checking hands", "total", total)
}

func (r *LogReporter) Update(done int) {
	r.logger.Info("Progress",
		"checked", done,
		"total", r.total,
		"pct", fmt.Sprintf("%.1f%%", percent(done, r.total)),
		"rate", fmt.Sprintf("%.0f/s", rate(done, r.clock.Since(r.start))))
}

func (r *LogReporter) Finish(done int, err error) {
	elapsed := r.clock.Since(r.start)
	if err != nil {
		r.logger.Error("Check stopped", "checked", done, "elapsed", elapsed.Truncate(time.Millisecond), "error", err)
		return
	}
	r.logger.Info("Check complete", "checked", done, "elapsed", elapsed.Truncate(time.Millisecond),
		"rate", fmt.Sprintf("%.0f/s", rate(done, elapsed)))
}

func percent(done, total int) float64 {
	if total <= 0 {
		return 100
	}
	return float64(done) * 100 / float64(total)
}

func rate(done int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(done) / elapsed.Seconds()
}
