package magician

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/cardtrick/internal/wire"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024
)

// Connection is one assistant's websocket.
type Connection struct {
	conn      *websocket.Conn
	server    *Server
	remote    string
	send      chan *wire.Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps an upgraded websocket.
func NewConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	remote := conn.RemoteAddr().String()
	return &Connection{
		conn:   conn,
		server: server,
		remote: remote,
		send:   make(chan *wire.Message, 64),
		logger: server.logger.With("remote", remote),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg wire.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		reply := c.handleMessage(&msg)
		select {
		case c.send <- reply:
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "magician stopping"))
			return
		}
	}
}

// handleMessage decodes one selection and builds the reply.
func (c *Connection) handleMessage(msg *wire.Message) *wire.Message {
	stats := &c.server.stats

	sel, err := msg.Selection()
	if err != nil {
		stats.Rejected.Add(1)
		c.logger.Warn("Bad selection", "id", msg.ID, "type", msg.Type, "error", err)
		return wire.NewError(msg.ID, err)
	}

	card, err := c.server.strategy.Decode(sel)
	if err != nil {
		stats.Rejected.Add(1)
		c.logger.Warn("Cannot decode selection", "id", msg.ID, "selection", sel.String(), "error", err)
		return wire.NewError(msg.ID, err)
	}

	stats.Reveals.Add(1)
	c.logger.Debug("Revealed card", "id", msg.ID, "selection", sel.String(), "card", card.String())
	return wire.NewReveal(msg.ID, card)
}
