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
	"github.com/lox/concentration/internal/game"
)

// Connection represents a WebSocket connection to a client. Each connection plays
// its own game.
type Connection struct {
	id         uint64
	conn       *websocket.Conn
	send       chan *Message
	engine     *game.GameEngine
	config     *ServerConfig
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	difficulty game.Difficulty
	closeOnce  sync.Once
}

// NewConnection creates a new connection wrapper with a fresh engine
func NewConnection(id uint64, conn *websocket.Conn, config *ServerConfig, logger *log.Logger, clock quartz.Clock, rng game.RandomSource) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan *Message, 256),
		config: config,
		logger: logger.WithPrefix("conn").With("conn", id),
		ctx:    ctx,
		cancel: cancel,
	}
	c.engine = game.NewGameEngine(
		game.WithClock(clock),
		game.WithRandom(rng),
		game.WithRenderer(connectionRenderer{conn: c}),
		game.WithLogger(c.logger),
	)
	return c
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
	c.sendWelcome()
}

// Close closes the connection and stops its game
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.engine.Close()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Done is closed once the connection is shutting down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	if c.ctx.Err() != nil {
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		// Engine callbacks may be on this stack, so only signal shutdown here and
		// let the pumps close the connection.
		c.logger.Warn("Connection send buffer full, closing connection")
		c.cancel()
		return ErrConnectionClosed
	}
}

// Difficulty returns the difficulty of the current game
func (c *Connection) Difficulty() game.Difficulty {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.difficulty
}

func (c *Connection) setDifficulty(d game.Difficulty) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.difficulty = d
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

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
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeStart:
		var data StartData
		if err := decodeData(msg, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start data")
			return
		}
		c.handleStart(data.Difficulty)

	case MessageTypeFlip:
		var data FlipData
		if err := decodeData(msg, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse flip data")
			return
		}
		c.handleFlip(data)

	case MessageTypeReset:
		c.handleReset()

	case MessageTypeDifficulty:
		var data DifficultyData
		if err := decodeData(msg, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse difficulty data")
			return
		}
		c.handleDifficulty(data)

	case MessageTypeGetState:
		c.handleGetState()

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

func decodeData(msg *Message, v interface{}) error {
	if len(msg.Data) == 0 {
		return nil
	}
	return json.Unmarshal(msg.Data, v)
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	c.reply(MessageTypeError, ErrorData{Code: code, Message: message})
}

func (c *Connection) reply(t MessageType, data interface{}) {
	msg, err := NewMessage(t, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	_ = c.SendMessage(msg) // Ignore send errors
}

func (c *Connection) sendWelcome() {
	list := c.config.DifficultyList()
	infos := make([]DifficultyInfo, len(list))
	for i, d := range list {
		infos[i] = DifficultyInfoFromGame(d)
	}
	c.reply(MessageTypeWelcome, WelcomeData{
		Difficulties: infos,
		Default:      c.config.Server.DefaultDifficulty,
	})
}

func (c *Connection) handleStart(name string) {
	if name == "" {
		name = c.config.Server.DefaultDifficulty
	}
	d, ok := c.config.LookupDifficulty(name)
	if !ok {
		c.sendError("unknown_difficulty", "Unknown difficulty: "+name)
		return
	}

	c.logger.Info("Starting game", "difficulty", d.Name, "pairs", d.Pairs)

	previous := c.Difficulty()
	c.setDifficulty(d)
	if err := c.engine.StartSession(c.config.GameConfig(d)); err != nil {
		c.setDifficulty(previous)
		var cfgErr *game.ConfigError
		if errors.As(err, &cfgErr) {
			c.sendError("invalid_config", cfgErr.Error())
			return
		}
		c.sendError("start_failed", err.Error())
	}
}

func (c *Connection) handleFlip(data FlipData) {
	status := c.engine.Flip(data.CardID)
	c.logger.Debug("Flip", "card", data.CardID, "status", status)
	c.reply(MessageTypeFlipResult, FlipResultData{CardID: data.CardID, Status: status})
}

func (c *Connection) handleReset() {
	if err := c.engine.Reset(); err != nil {
		if errors.Is(err, game.ErrNoSession) {
			c.sendError("no_session", "No game to reset")
			return
		}
		c.sendError("reset_failed", err.Error())
		return
	}
	c.logger.Info("Game reset", "difficulty", c.Difficulty().Name)
}

// handleDifficulty switches difficulty, asking the client to confirm when that
// would throw away a game in progress
func (c *Connection) handleDifficulty(data DifficultyData) {
	if _, ok := c.config.LookupDifficulty(data.Difficulty); !ok {
		c.sendError("unknown_difficulty", "Unknown difficulty: "+data.Difficulty)
		return
	}
	if c.engine.Started() && !data.Confirm {
		c.reply(MessageTypeConfirmRequired, ConfirmRequiredData{Difficulty: data.Difficulty})
		return
	}
	c.handleStart(data.Difficulty)
}

func (c *Connection) handleGetState() {
	snap, ok := c.engine.Snapshot()
	if !ok {
		c.sendError("no_session", "No game in progress")
		return
	}
	d := c.Difficulty()
	c.reply(MessageTypeState, StateData{Difficulty: d.Name, Columns: d.Columns, Snapshot: snap})
}
