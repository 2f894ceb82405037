// Package verify checks a trick strategy against every five-card hand, or
// a random sample of them, and reports the first hand it gets wrong.
package verify

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cardtrick/internal/combin"
	"github.com/lox/cardtrick/internal/deck"
	"github.com/lox/cardtrick/internal/progress"
	"github.com/lox/cardtrick/internal/randutil"
	"github.com/lox/cardtrick/trick"
)

// TotalHands is the number of five-card hands in the deck.
var TotalHands = combin.Binomial(trick.NumCards, trick.HandSize)

// Mode names for Report.Mode.
const (
	ModeExhaustive = "exhaustive"
	ModeSample     = "sample"
)

// batchSize is how many hands a worker checks between progress updates and
// cancellation checks.
const batchSize = 4096

// Config controls a verification run.
type Config struct {
	Strategy trick.Strategy
	Workers  int           // 0 means one per CPU
	Interval time.Duration // progress update period
	Reporter progress.Reporter
	Clock    quartz.Clock
	Logger   *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Strategy == nil {
		c.Strategy = trick.Default
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	if c.Reporter == nil {
		c.Reporter = progress.Nop{}
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.Logger == nil {
		c.Logger = log.New(nopWriter{})
	}
	c.Logger = c.Logger.WithPrefix("verify")
	return c
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// Report summarises a successful run.
type Report struct {
	Strategy string         `json:"strategy"`
	Mode     string         `json:"mode"`
	Seed     *int64         `json:"seed,omitempty"`
	Checked  int            `json:"checked"`
	Total    int            `json:"total"`
	Workers  int            `json:"workers"`
	Cases    map[string]int `json:"cases"`
	Started  time.Time      `json:"started"`
	Duration time.Duration  `json:"duration_ns"`
}

// Failure is returned for the first hand a strategy gets wrong. Index is
// the hand's position in lexicographic order for exhaustive runs and the
// draw number for sampled runs.
type Failure struct {
	Index     int
	Total     int
	Hand      []trick.Card
	Selection trick.Selection
	Guess     trick.Card
	Reason    string
	Err       error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("hand %v (case %d of %d): %s", cardNumbers(f.Hand), f.Index, f.Total, f.Reason)
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func cardNumbers(cards []trick.Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = int(c)
	}
	return out
}

// CheckHand encodes and decodes one hand and reports what went wrong, if
// anything. A panic inside the strategy is caught and reported as a
// failure so the hand that triggered it is not lost.
func CheckHand(s trick.Strategy, hand []trick.Card) (f *Failure) {
	held := trick.NewCardSet(hand...)
	fail := func(reason string, err error) *Failure {
		return &Failure{Hand: append([]trick.Card(nil), hand...), Reason: reason, Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			f = fail("internal inconsistency", fmt.Errorf("%v", r))
		}
	}()

	sel, err := s.Encode(hand)
	if err != nil {
		return fail("encode failed", err)
	}
	shown := sel.Set()
	if shown.Count() != trick.SelectionSize {
		f = fail("selection repeats a card", nil)
		f.Selection = sel
		return f
	}
	if shown&held != shown {
		f = fail("selection holds a card not in the hand", nil)
		f.Selection = sel
		return f
	}

	guess, err := s.Decode(sel)
	if err != nil {
		f = fail("decode failed", err)
		f.Selection = sel
		return f
	}
	if shown.Has(guess) || shown|trick.NewCardSet(guess) != held {
		f = fail(fmt.Sprintf("%v decoded to %s", sel, guess), nil)
		f.Selection = sel
		f.Guess = guess
		return f
	}
	return nil
}

// tally is one worker's share of the result.
type tally struct {
	checked int
	cases   map[trick.Pattern]int
}

func newTally() tally {
	return tally{cases: make(map[trick.Pattern]int)}
}

func (t *tally) add(hand []trick.Card) {
	t.checked++
	if c, err := trick.Classify(hand); err == nil {
		t.cases[c.Pattern]++
	}
}

// Run checks every hand in the deck, split across cfg.Workers. It stops at
// the first failure and returns it as a *Failure.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	ranges := combin.Split(TotalHands, cfg.Workers)

	cfg.Logger.Info("Starting exhaustive check", "strategy", cfg.Strategy.Name(), "hands", TotalHands, "workers", len(ranges))

	return run(ctx, cfg, ModeExhaustive, TotalHands, len(ranges), func(ctx context.Context, w int, t *tally, done *atomic.Int64) error {
		return checkRange(ctx, cfg, ranges[w], t, done)
	})
}

// Sample checks n hands dealt at random from a deck seeded with seed.
func Sample(ctx context.Context, cfg Config, n int, seed int64) (*Report, error) {
	cfg = cfg.withDefaults()
	shares := combin.Split(n, cfg.Workers)

	cfg.Logger.Info("Starting sampled check", "strategy", cfg.Strategy.Name(), "hands", n, "seed", seed, "workers", len(shares))

	report, err := run(ctx, cfg, ModeSample, n, len(shares), func(ctx context.Context, w int, t *tally, done *atomic.Int64) error {
		return checkSample(ctx, cfg, shares[w], randutil.Split(seed, w), n, t, done)
	})
	if report != nil {
		report.Seed = &seed
	}
	return report, err
}

type workFunc func(ctx context.Context, worker int, t *tally, done *atomic.Int64) error

func run(ctx context.Context, cfg Config, mode string, total, workers int, work workFunc) (*Report, error) {
	started := cfg.Clock.Now()
	var done atomic.Int64

	cfg.Reporter.Start(total)
	tickCtx, stopTicks := context.WithCancel(ctx)
	ticks := cfg.Clock.TickerFunc(tickCtx, cfg.Interval, func() error {
		cfg.Reporter.Update(int(done.Load()))
		return nil
	}, "verify", "progress")

	tallies := make([]tally, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		tallies[w] = newTally()
		g.Go(func() error {
			return work(gctx, w, &tallies[w], &done)
		})
	}
	err := g.Wait()

	stopTicks()
	_ = ticks.Wait() // Reports context cancellation, which is how it was stopped
	cfg.Reporter.Finish(int(done.Load()), err)

	if err != nil {
		var f *Failure
		if errors.As(err, &f) {
			cfg.Logger.Error("Hand failed", "index", f.Index, "hand", trick.FormatCards(f.Hand), "reason", f.Reason)
		}
		return nil, err
	}

	report := &Report{
		Strategy: cfg.Strategy.Name(),
		Mode:     mode,
		Total:    total,
		Workers:  workers,
		Cases:    make(map[string]int),
		Started:  started,
		Duration: cfg.Clock.Since(started),
	}
	for _, t := range tallies {
		report.Checked += t.checked
		for p, n := range t.cases {
			report.Cases[p.String()] += n
		}
	}
	cfg.Logger.Info("Check passed", "hands", report.Checked, "duration", report.Duration.Truncate(time.Millisecond))
	return report, nil
}

func checkRange(ctx context.Context, cfg Config, r combin.Range, t *tally, done *atomic.Int64) error {
	cfg.Logger.Debug("Shard started", "start", r.Start, "end", r.End)

	c := combin.Unrank(trick.NumCards, trick.HandSize, r.Start)
	hand := make([]trick.Card, trick.HandSize)
	pending := 0
	for idx := r.Start; idx < r.End; idx++ {
		for i, v := range c {
			hand[i] = trick.Card(v)
		}
		if f := CheckHand(cfg.Strategy, hand); f != nil {
			f.Index, f.Total = idx, TotalHands
			return f
		}
		t.add(hand)

		if pending++; pending == batchSize {
			done.Add(int64(pending))
			pending = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		combin.Next(c, trick.NumCards)
	}
	done.Add(int64(pending))

	cfg.Logger.Debug("Shard finished", "start", r.Start, "end", r.End)
	return nil
}

func checkSample(ctx context.Context, cfg Config, r combin.Range, rng *rand.Rand, total int, t *tally, done *atomic.Int64) error {
	d := deck.New(rng)
	pending := 0
	for idx := r.Start; idx < r.End; idx++ {
		hand := d.DealHand()
		if f := CheckHand(cfg.Strategy, hand); f != nil {
			f.Index, f.Total = idx, total
			return f
		}
		t.add(hand)

		if pending++; pending == batchSize {
			done.Add(int64(pending))
			pending = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	done.Add(int64(pending))
	return nil
}
