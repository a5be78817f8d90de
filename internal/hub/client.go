package hub

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// sendBuffer is the per-client outbound queue. A client that lets this
	// many events pile up is treated as dead.
	sendBuffer = 64

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// InboundHandler receives one decoded socket message from a client. It runs
// on the client's read goroutine; long work should be spawned off it.
type InboundHandler func(c *Client, msgType string, payload json.RawMessage)

// Client is one websocket connection registered with the hub.
type Client struct {
	ID  string
	hub *Hub

	conn *websocket.Conn
	send chan Event

	closeOnce sync.Once
}

// inboundEnvelope mirrors Event but defers payload decoding to the handler.
type inboundEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServeWS upgrades the request, registers the client, and runs its pumps.
// onConnect is invoked with the registered client before any reads, so the
// caller can unicast its initial state snapshot. Blocks until the client
// disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, onConnect func(*Client), onMessage InboundHandler) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("HUB: upgrade failed: %v", err)
		return
	}

	c := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan Event, sendBuffer),
	}
	h.add(c)

	go c.writePump()

	if onConnect != nil {
		onConnect(c)
	}
	c.readPump(onMessage)
}

// Send unicasts one event to this client only. Delivery is best-effort: a
// detached client or a full buffer drops the event.
func (c *Client) Send(ev Event) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- ev:
	default:
	}
}

// Close detaches the client from the hub; the write pump notices the closed
// send channel and tears the connection down.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.remove(c)
	})
}

func (c *Client) readPump(onMessage InboundHandler) {
	defer func() {
		c.Close()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("HUB: client %s read error: %v", c.ID, err)
			}
			return
		}
		var env inboundEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("HUB: client %s sent malformed message: %v", c.ID, err)
			continue
		}
		if onMessage != nil {
			onMessage(c, env.Type, env.Payload)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}
