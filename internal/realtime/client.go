package realtime

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// Conn is the part of *websocket.Conn a client needs.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one realtime connection. It owns a writer goroutine fed through
// a single-slot buffer: a pending board_changed already tells the peer to
// refetch, so further signals while one is queued are dropped.
type Client struct {
	ID    string
	hub   *Hub
	conn  Conn
	state atomic.Int32
	send  chan []byte
	done  chan struct{}
	once  sync.Once
}

func NewClient(hub *Hub, conn Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 1),
		done: make(chan struct{}),
	}
}

func (c *Client) State() State {
	return State(c.state.Load())
}

// Run marks the client open, registers it and blocks until the connection
// ends. The client is removed from the hub on return.
func (c *Client) Run() {
	if !c.state.CompareAndSwap(int32(StateConnecting), int32(StateOpen)) {
		return
	}
	c.hub.Add(c)

	go c.writePump()
	c.readPump()
}

func (c *Client) enqueue(msg []byte) bool {
	if c.State() != StateOpen {
		return false
	}
	select {
	case c.send <- msg:
	default:
	}
	return true
}

// readPump discards inbound frames; the protocol has no client messages.
// Any read error, including a normal close frame, ends the connection.
func (c *Client) readPump() {
	defer c.close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.logger.Debugw("Write to client failed", "client_id", c.ID, "error", err)
				c.close()
				return
			}
		}
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		c.state.Store(int32(StateClosed))
		close(c.done)
		c.hub.Remove(c)
		_ = c.conn.Close()
	})
}
