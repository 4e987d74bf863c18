// internal/httpserver/ws.go
//
// Live key stream for one session over a websocket.
//
// Inbound frames:  {"type":"key","key":"a"} | {"type":"sync"}
// Outbound frames: {"type":"state"|"ended","session":{...}}
//                  {"type":"refused","reason":"guess_full","session":{...}}
//                  {"type":"error","error":"..."}
//
// A session accepts one socket at a time; a second attach is refused with 409.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Julianoze/letreco/internal/input"
	"github.com/Julianoze/letreco/internal/store"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

const (
	msgKey     = "key"
	msgSync    = "sync"
	msgState   = "state"
	msgEnded   = "ended"
	msgRefused = "refused"
	msgError   = "error"
)

type wsInbound struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

type wsMessage struct {
	Type    string       `json:"type"`
	Reason  string       `json:"reason,omitempty"`
	Error   string       `json:"error,omitempty"`
	Session *sessionView `json:"session,omitempty"`
}

// wsClient is a middleman between the websocket connection and the server.
type wsClient struct {
	conn  *websocket.Conn
	send  chan []byte
	entry *store.Entry
	id    string
}

// hub routes state updates to the socket attached to each session.
type hub struct {
	mu      sync.Mutex
	clients map[string]*wsClient
}

func newHub() *hub {
	return &hub{clients: make(map[string]*wsClient)}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// remove drops c and closes its send channel, once.
func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// publish queues msg for the socket attached to session id, if any.
func (h *hub) publish(id string, msg wsMessage) {
	if msg.Type == msgState && msg.Session != nil && msg.Session.Win.Ended {
		msg.Type = msgEnded
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Warn().Err(err).Msg("ws encode")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("session", id).Msg("ws send buffer full, dropping update")
		}
	}
}

func (h *hub) close(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == s.opts.ClientOrigin {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// handleWS upgrades the request and pumps keys into the session.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	detach, err := s.listener.Attach(id)
	if err != nil {
		httpError(w, http.StatusConflict, "already_attached")
		return
	}

	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		detach()
		log.Warn().Err(err).Str("session", id).Msg("ws upgrade")
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, 32), entry: e, id: id}
	s.hub.add(c)
	log.Debug().Str("session", id).Str("player", claimsFrom(r).PlayerID).Msg("ws attached")

	s.hub.publish(id, wsMessage{Type: msgState, Session: ptr(viewOf(e, e.Snapshot()))})

	go c.writePump()
	go func() {
		defer detach()
		s.readPump(c)
	}()
}

// readPump pumps frames from the websocket into the session.
func (s *Server) readPump(c *wsClient) {
	defer func() {
		s.hub.remove(c)
		c.conn.Close()
		log.Debug().Str("session", c.id).Msg("ws detached")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", c.id).Msg("ws read")
			}
			return
		}
		s.handleFrame(c, data)
	}
}

func (s *Server) handleFrame(c *wsClient, data []byte) {
	var in wsInbound
	if err := json.Unmarshal(data, &in); err != nil {
		s.hub.publish(c.id, wsMessage{Type: msgError, Error: "bad_json"})
		return
	}
	switch in.Type {
	case msgSync:
		s.hub.publish(c.id, wsMessage{Type: msgState, Session: ptr(viewOf(c.entry, c.entry.Snapshot()))})
	case msgKey:
		ev, ok := input.ParseKey(in.Key)
		if !ok {
			s.hub.publish(c.id, wsMessage{Type: msgError, Error: "unknown_key"})
			return
		}
		res, snap := s.applyKey(c.entry, ev)
		if !res.Applied {
			s.hub.publish(c.id, wsMessage{Type: msgRefused, Reason: reasonOf(res.Err), Session: ptr(viewOf(c.entry, snap))})
		}
	default:
		s.hub.publish(c.id, wsMessage{Type: msgError, Error: "unknown_type"})
	}
}

// writePump pumps messages from the send channel to the websocket connection.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
