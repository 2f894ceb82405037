package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/cardtrick/internal/fileutil"
	"github.com/lox/cardtrick/internal/progress"
	"github.com/lox/cardtrick/internal/randutil"
	"github.com/lox/cardtrick/internal/verify"
	"github.com/lox/cardtrick/trick"
)

// VerifyCmd checks encode and decode against every hand.
type VerifyCmd struct {
	Strategy string        `short:"s" help:"Strategy to check (overrides config)"`
	All      bool          `help:"Check every strategy in turn"`
	Workers  int           `short:"w" help:"Worker goroutines, 0 for one per CPU (overrides config)"`
	Progress string        `short:"p" help:"Progress display: none, log, bar or tui (overrides config)"`
	Interval time.Duration `help:"Progress update period (overrides config)"`
	Sample   int           `short:"n" help:"Check this many random hands instead of all of them"`
	Seed     *int64        `help:"Seed for --sample (optional)"`
	Report   string        `short:"o" help:"Write a JSON report to this path"`
}

func (c *VerifyCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	settings := *cfg.Verify
	if c.Strategy != "" {
		settings.Strategy = c.Strategy
	}
	if c.Workers != 0 {
		settings.Workers = c.Workers
	}
	if c.Progress != "" {
		settings.Progress = c.Progress
	}
	interval, err := settings.IntervalDuration()
	if err != nil {
		return err
	}
	if c.Interval > 0 {
		interval = c.Interval
	}

	strategies := trick.Strategies()
	if !c.All {
		s, err := trick.Lookup(settings.Strategy)
		if err != nil {
			return err
		}
		strategies = []trick.Strategy{s}
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	clock := quartz.NewReal()
	var reports []*verify.Report
	for _, s := range strategies {
		reporter, err := progress.New(settings.Progress, os.Stderr, logger, clock)
		if err != nil {
			return err
		}
		vcfg := verify.Config{
			Strategy: s,
			Workers:  settings.Workers,
			Interval: interval,
			Reporter: reporter,
			Clock:    clock,
			Logger:   logger,
		}

		var report *verify.Report
		if c.Sample > 0 {
			seed, _ := randutil.FromFlag(c.Seed)
			report, err = verify.Sample(ctx, vcfg, c.Sample, seed)
		} else {
			report, err = verify.Run(ctx, vcfg)
		}
		if err != nil {
			var f *verify.Failure
			if errors.As(err, &f) {
				printFailure(s, f)
			}
			return err
		}
		printReport(report)
		reports = append(reports, report)
	}

	if c.Report != "" {
		var v any = reports
		if len(reports) == 1 {
			v = reports[0]
		}
		if err := fileutil.WriteJSONAtomic(c.Report, v); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}

func printReport(r *verify.Report) {
	out := os.Stdout
	header(out, fmt.Sprintf("Verify %s (%s)", r.Strategy, r.Mode))
	row(out, "result", okStyle.Render(fmt.Sprintf("✓ %d of %d hands round-trip", r.Checked, r.Total)))
	if r.Seed != nil {
		row(out, "seed", fmt.Sprint(*r.Seed))
	}
	row(out, "workers", fmt.Sprint(r.Workers))
	row(out, "duration", r.Duration.Truncate(time.Millisecond).String())
	caseRows(out, r.Cases, r.Checked)
}

func printFailure(s trick.Strategy, f *verify.Failure) {
	out := os.Stdout
	header(out, "Verify "+s.Name())
	row(out, "result", failStyle.Render("✗ "+f.Reason))
	row(out, "hand", renderCards(f.Hand)+" "+numbers(f.Hand))
	row(out, "index", fmt.Sprintf("%d of %d", f.Index, f.Total))
	if f.Selection != (trick.Selection{}) {
		row(out, "shown", renderCards(f.Selection[:]))
	}
	if f.Err != nil {
		row(out, "error", f.Err.Error())
	}
}

// PropertiesCmd walks every four- and five-card set.
type PropertiesCmd struct {
	Report string `short:"o" help:"Write a JSON report to this path"`
}

func (c *PropertiesCmd) Run(g *Globals) error {
	_, logger, err := g.setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Walking every four- and five-card set")
	p, err := verify.Properties(ctx)
	if err != nil {
		return err
	}

	out := os.Stdout
	header(out, "Gap strategy properties")
	row(out, "hands", fmt.Sprintf("%d, %d unclassified", p.Hands, p.Unclassified5))
	row(out, "selections", fmt.Sprintf("%d, %d with no candidates", p.Selections, p.Unclassified4))
	row(out, "candidates", fmt.Sprintf("at most %d, reached by %v", p.MaxCandidates, p.Longest))
	row(out, "gap sums", fmt.Sprintf("%d wrong", p.BadGapSums))
	caseRows(out, p.Cases, p.Hands)

	if c.Report != "" {
		if err := fileutil.WriteJSONAtomic(c.Report, p); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}

	if err := p.Check(); err != nil {
		row(out, "result", failStyle.Render("✗ "+err.Error()))
		return err
	}
	row(out, "result", okStyle.Render("✓ all properties hold"))
	return nil
}
