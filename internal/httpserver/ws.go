package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames
	maxMessageSize = 512

	sendBufferSize = 16
)

// favoritesMsg is the only message type on /favorites/ws.
type favoritesMsg struct {
	Type string   `json:"type"` // "favorites"
	IDs  []string `json:"ids"`
}

// checkOrigin accepts same-origin tools (no Origin header) and the configured client.
func (s *Server) checkOrigin(r *http.Request) bool {
	o := r.Header.Get("Origin")
	return o == "" || o == s.opts.ClientOrigin
}

// handleFavoritesWS streams the device's favorite ids: once on connect, then after every change.
func (s *Server) handleFavoritesWS(w http.ResponseWriter, r *http.Request) {
	device := deviceFrom(r.Context())
	favs, err := s.favs.For(r.Context(), device)
	if err != nil {
		log.Error().Err(err).Msg("load favorites")
		http.Error(w, `{"error":"favorites_unavailable"}`, http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &wsClient{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	unsubscribe := favs.Subscribe(c.push)
	c.push(favs.IDs())
	log.Debug().Str("device", device).Int("subscribers", favs.Subscribers()).Msg("favorites stream opened")

	go c.writePump()
	c.readPump()

	unsubscribe()
	c.close()
	log.Debug().Str("device", device).Msg("favorites stream closed")
}

// wsClient is one websocket connection with a buffered outbox.
type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// push queues ids for delivery. A full outbox drops the message; the next one
// carries the complete list anyway.
func (c *wsClient) push(ids []string) {
	data, err := json.Marshal(favoritesMsg{Type: "favorites", IDs: ids})
	if err != nil {
		log.Warn().Err(err).Msg("encode favorites message")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Msg("send buffer full, message dropped")
	}
}

func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	_ = c.conn.Close()
}

// readPump drains the connection until the peer goes away.
func (c *wsClient) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
	}
}

// writePump pumps queued messages and keep-alive pings to the connection.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
