package progress

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// BarReporter draws a single-line terminal progress bar.
type BarReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewBarReporter creates a bar reporter writing to w
func NewBarReporter(w io.Writer) *BarReporter {
	return &BarReporter{w: w}
}

func (r *BarReporter) Start(total int) {
	r.bar = progressbar.NewOptions64(int64(total),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("checking hands"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("hands"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(r.w, "\n") }),
	)
}

func (r *BarReporter) Update(done int) {
	if r.bar == nil {
		return
	}
	_ = r.bar.Set64(int64(done)) // Drawing errors are not worth stopping a check for
}

func (r *BarReporter) Finish(done int, err error) {
	if r.bar == nil {
		return
	}
	_ = r.bar.Set64(int64(done))
	if err != nil {
		_ = r.bar.Exit()
		return
	}
	_ = r.bar.Finish()
}
