package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/handodds/internal/deck"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

var ErrConnectionClosed = errors.New("connection closed")

// Connection represents a WebSocket connection to a client
type Connection struct {
	id        string
	conn      *websocket.Conn
	send      chan *Message
	server    *Server
	logger    *log.Logger
	idle      *quartz.Timer
	timeout   time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(server.ctx)
	id := server.ids.Next()

	c := &Connection{
		id:      id,
		conn:    conn,
		send:    make(chan *Message, 64),
		server:  server,
		logger:  server.logger.WithPrefix("conn").With("conn", id),
		timeout: server.getIdleTimeout(),
		ctx:     ctx,
		cancel:  cancel,
	}

	// Armed before the hub or Close can see the connection
	c.idle = server.clock.AfterFunc(c.timeout, func() {
		c.logger.Info("Closing idle connection", "timeout", c.timeout)
		_ = c.Close()
	}, "idle")
	return c
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// ID returns the connection's time-ordered identifier
func (c *Connection) ID() string {
	return c.id
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.idle.Stop()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.idle.Reset(c.timeout, "idle")
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypeCalculate:
		var data CalculateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrorCodeInvalidMessage, "Failed to parse calculate data")
			return
		}
		c.handleCalculate(msg.RequestID, data)

	case MessageTypeListDecks:
		c.reply(msg.RequestID, MessageTypeDeckList, DeckListData{Decks: c.server.deckNames()})

	default:
		c.sendError(msg.RequestID, ErrorCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleCalculate(requestID string, data CalculateData) {
	var d *deck.Deck
	switch {
	case data.Deck != nil:
		d = data.Deck.Deck()
	case data.DeckName != "":
		dc, ok := c.server.lookupDeck(data.DeckName)
		if !ok {
			c.sendError(requestID, ErrorCodeUnknownDeck, "Unknown deck: "+data.DeckName)
			return
		}
		d = dc.Deck()
	default:
		c.sendError(requestID, ErrorCodeInvalidMessage, "Calculate requires a deck or a deck name")
		return
	}

	probability, err := d.Probability()
	if err != nil {
		c.logger.Debug("Rejected deck", "deck", d.Name, "error", err)
		c.sendError(requestID, ErrorCodeInvalidDeck, err.Error())
		return
	}

	c.logger.Debug("Calculated probability", "deck", d.Name, "probability", probability)
	c.reply(requestID, MessageTypeResult, ResultData{
		Deck:          d.Name,
		Probability:   probability,
		Miscellaneous: categoryData(d.Miscellaneous()),
	})
}

func (c *Connection) reply(requestID string, messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped reply", "type", messageType, "error", err)
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	c.reply(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}
