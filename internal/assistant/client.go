// Package assistant plays the dealing half of the trick against a remote
// magician: it deals hands, shows four cards of each over a websocket and
// checks the card the magician names.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/cardtrick/internal/deck"
	"github.com/lox/cardtrick/internal/wire"
	"github.com/lox/cardtrick/trick"
)

// ErrTimeout is recorded for a hand whose reveal did not arrive in time.
var ErrTimeout = errors.New("assistant: timed out waiting for reveal")

// ErrDisconnected is returned once the magician has closed the connection.
var ErrDisconnected = errors.New("assistant: magician disconnected")

// Config controls a Client.
type Config struct {
	URL      string
	Strategy trick.Strategy
	Timeout  time.Duration
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Client is a connected assistant.
type Client struct {
	cfg     Config
	conn    *websocket.Conn
	logger  *log.Logger
	replies chan *wire.Message
	nextID  uint64

	mu        sync.Mutex
	readErr   error
	done      chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the magician at cfg.URL.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Strategy == nil {
		cfg.Strategy = trick.Default
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid magician URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	logger := cfg.Logger.WithPrefix("assistant")
	logger.Info("Connecting to magician", "url", u.String(), "strategy", cfg.Strategy.Name())

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	c := &Client{
		cfg:     cfg,
		conn:    conn,
		logger:  logger,
		replies: make(chan *wire.Message, 16),
		done:    make(chan struct{}),
		closed:  make(chan struct{}),
	}
	go c.readMessages()
	return c, nil
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}

func (c *Client) readMessages() {
	defer close(c.done)
	for {
		var msg wire.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			c.mu.Lock()
			c.readErr = err
			c.mu.Unlock()
			return
		}
		select {
		case c.replies <- &msg:
		case <-c.closed:
			return
		}
	}
}

func (c *Client) disconnected() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Errorf("%w: %v", ErrDisconnected, c.readErr)
}

// Result is the outcome of one hand.
type Result struct {
	ID        uint64
	Hand      []trick.Card
	Selection trick.Selection
	Hidden    trick.Card
	Reveal    trick.Card
	Err       error
}

// Correct reports whether the magician named the hidden card.
func (r Result) Correct() bool {
	return r.Err == nil && r.Reveal == r.Hidden
}

// Tally totals a performance.
type Tally struct {
	Hands     int
	Correct   int
	Incorrect int
	Failed    int
	Results   []Result
}

func (t *Tally) add(r Result) {
	t.Hands++
	switch {
	case r.Err != nil:
		t.Failed++
	case r.Correct():
		t.Correct++
	default:
		t.Incorrect++
	}
	t.Results = append(t.Results, r)
}

// Perform deals n hands from d and plays each against the magician. It
// stops early only if the connection is lost or ctx is cancelled; a wrong
// or failed reveal is recorded and the next hand is dealt.
func (c *Client) Perform(ctx context.Context, d *deck.Deck, n int) (*Tally, error) {
	tally := &Tally{}
	for range n {
		hand := d.DealHand()
		r, err := c.Play(ctx, hand)
		if err != nil {
			return tally, err
		}
		tally.add(r)
	}
	c.logger.Info("Performance finished", "hands", tally.Hands, "correct", tally.Correct,
		"incorrect", tally.Incorrect, "failed", tally.Failed)
	return tally, nil
}

// Play shows one hand to the magician and waits for the reveal. Timeouts
// and magician errors are reported in the Result; the returned error is
// reserved for cancellation and lost connections.
func (c *Client) Play(ctx context.Context, hand []trick.Card) (Result, error) {
	c.nextID++
	r := Result{ID: c.nextID, Hand: append([]trick.Card(nil), hand...)}

	sel, err := c.cfg.Strategy.Encode(hand)
	if err != nil {
		r.Err = err
		return r, nil
	}
	r.Selection = sel
	r.Hidden = hiddenCard(hand, sel)

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.Timeout))
	if err := c.conn.WriteJSON(wire.NewSelection(r.ID, sel)); err != nil {
		return r, fmt.Errorf("failed to send selection: %w", err)
	}

	timer := c.cfg.Clock.NewTimer(c.cfg.Timeout, "assistant", "reveal")
	defer timer.Stop()

	for {
		select {
		case msg := <-c.replies:
			if msg.ID != r.ID {
				c.logger.Debug("Dropping stale reply", "id", msg.ID, "want", r.ID)
				continue
			}
			r.Reveal, r.Err = msg.Reveal()
			c.logResult(r)
			return r, nil
		case <-timer.C:
			r.Err = ErrTimeout
			c.logResult(r)
			return r, nil
		case <-c.done:
			return r, c.disconnected()
		case <-ctx.Done():
			return r, ctx.Err()
		}
	}
}

func (c *Client) logResult(r Result) {
	switch {
	case r.Err != nil:
		c.logger.Warn("Hand failed", "id", r.ID, "hand", trick.FormatCards(r.Hand), "error", r.Err)
	case r.Correct():
		c.logger.Debug("Magician named the card", "id", r.ID, "selection", r.Selection.String(), "card", r.Reveal.String())
	default:
		c.logger.Warn("Magician named the wrong card", "id", r.ID, "selection", r.Selection.String(),
			"named", r.Reveal.String(), "hidden", r.Hidden.String())
	}
}

func hiddenCard(hand []trick.Card, sel trick.Selection) trick.Card {
	shown := sel.Set()
	for _, c := range hand {
		if !shown.Has(c) {
			return c
		}
	}
	return hand[0]
}
