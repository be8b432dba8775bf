package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Maximum frame size accepted from a client; every inbound kind fits with
// plenty of room.
const maxMessageSize = 4096

// Client is one live connection. It belongs to at most one room at a time,
// tracked here so disconnects resolve their room in O(1).
type Client struct {
	conn *websocket.Conn
	send chan any

	mu         sync.Mutex
	room       *Room
	playerID   string
	sendClosed bool
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan any, 16),
	}
}

func (c *Client) attach(room *Room, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.room = room
	c.playerID = playerID
}

func (c *Client) detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.room = nil
	c.playerID = ""
}

func (c *Client) currentRoom() *Room {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.room
}

// trySend queues a message without ever blocking the caller. A closed or
// backed-up client is a logged skip, never a stall for the rest of the room.
func (c *Client) trySend(cfg *Config, msg any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sendClosed {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		logf(cfg, "SEND: Dropped message to slow client")
		return false
	}
}

// shutdown closes the send channel exactly once. The write pump drains any
// queued messages (a pending "kicked", for instance) before closing the
// underlying connection.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.send)
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *Client) readPump(cfg *Config, reg *Registry) {
	defer func() {
		if room := c.currentRoom(); room != nil {
			room.disconnect(c)
		}
		c.shutdown()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		cmd, err := decodeClientMessage(data)
		if err != nil {
			c.trySend(cfg, newError(err.Error()))
			continue
		}

		c.dispatch(cfg, reg, cmd)
	}
}

// dispatch routes one decoded command to the room that owns it. Commands for
// rooms that no longer exist are dropped, matching the silent handling of
// other stale-UI cases.
func (c *Client) dispatch(cfg *Config, reg *Registry, cmd clientCommand) {
	switch cmd := cmd.(type) {
	case *joinCommand:
		if c.currentRoom() != nil {
			// Already joined; one room per connection.
			return
		}
		for {
			room := reg.getOrCreate(cmd.RoomID)
			if room.join(c, *cmd) {
				return
			}
			// Lost a race with the room emptying out; resolve a fresh one.
		}
	case *startCommand:
		if room := reg.lookup(cmd.RoomID); room != nil {
			room.start(c, *cmd)
		}
	case *kickCommand:
		if room := reg.lookup(cmd.RoomID); room != nil {
			room.kick(c, *cmd)
		}
	case *updateCountCommand:
		if room := reg.lookup(cmd.RoomID); room != nil {
			room.updateImposterCount(c, *cmd)
		}
	case *adminClaimCommand:
		if room := reg.lookup(cmd.RoomID); room != nil {
			room.adminClaim(c, *cmd)
		}
	case *emoteCommand:
		if room := reg.lookup(cmd.RoomID); room != nil {
			room.emote(c, *cmd)
		}
	}
}

func serveWS(cfg *Config, reg *Registry) httprouter.Handle {
	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: cfg.handshakeTimeout,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: Websocket upgrade from %s: %v", realIP(r), err)
			return
		}

		client := newClient(conn)

		go client.writePump()
		client.readPump(cfg, reg)
	}
}

// serveNewRoomID hands out an unused room code for clients that want the
// server to pick one.
func serveNewRoomID(cfg *Config, reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var roomID string
		for {
			roomID = randomID(reg.rng, 8)
			if reg.lookup(roomID) == nil {
				break
			}
		}

		logf(cfg, "ROOMS: Suggested room code %q to %s", roomID, realIP(r))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		securityHeaders(cfg, w)
		_ = json.NewEncoder(w).Encode(map[string]string{"roomId": roomID})
	}
}

// qrHandler generates a PNG QR code for sharing a room link.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("roomid")
	if roomID == "" {
		http.Error(w, "missing room id", http.StatusBadRequest)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:roomid/qr; the room link is everything before "/qr".
	url := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")

	const qrSize = 320
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// registerImposterGame wires the game's routes:
//   - /ws               → the duplex game connection (room ID travels in each message)
//   - /newroom          → fresh unused room code
//   - /rooms/:roomid/qr → PNG QR code linking to that room
func registerImposterGame(cfg *Config, mux *httprouter.Router) *Registry {
	reg := newRegistry(cfg, cryptoRNG{}, defaultWordBank())

	mux.GET(cfg.prefix+"/ws", serveWS(cfg, reg))

	mux.GET(cfg.prefix+"/newroom", serveNewRoomID(cfg, reg))

	mux.GET(cfg.prefix+"/rooms/:roomid/qr", qrHandler)

	return reg
}
