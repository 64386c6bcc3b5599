package telemetry

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/townview/internal/logger"
)

const (
	// sendBuffer is how many samples may queue per client before it is
	// considered too slow and dropped.
	sendBuffer   = 16
	writeTimeout = 2 * time.Second
)

// ErrHubClosed is returned when serving after Close.
var ErrHubClosed = errors.New("telemetry hub closed")

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) stop() {
	c.once.Do(func() { close(c.done) })
}

// Hub fans samples out to every connected websocket client. It implements
// http.Handler; mount it on any path.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	dropped int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     logger.Named("telemetry"),
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and streams samples until the client goes
// away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	if !h.add(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ErrHubClosed.Error()),
			time.Now().Add(writeTimeout))
		conn.Close()
		return
	}
	h.log.Info("client connected", zap.String("remote", r.RemoteAddr))

	go h.writePump(c)

	// Clients only listen. Reading detects disconnects and handles control frames.
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
	h.remove(c)
	h.log.Info("client disconnected", zap.String("remote", r.RemoteAddr))
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(c)
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return
		}
	}
}

// Publish sends s to every client without blocking. Clients whose queue is
// full are disconnected.
func (h *Hub) Publish(s Sample) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			c.stop()
			h.dropped++
			h.log.Warn("dropping slow client", zap.Int("queued", len(c.send)))
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many clients were disconnected for being too slow.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.stop()
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.stop()
}

// Server serves a hub over HTTP at /telemetry.
type Server struct {
	Hub  *Hub
	http *http.Server
	ln   net.Listener
}

// Listen binds addr and starts serving in the background. Bind errors are
// returned immediately.
func Listen(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	hub := NewHub()
	mux := http.NewServeMux()
	mux.Handle("/telemetry", hub)

	s := &Server{
		Hub:  hub,
		http: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:   ln,
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hub.log.Error("telemetry server stopped", zap.Error(err))
		}
	}()
	hub.log.Info("telemetry listening", zap.String("addr", ln.Addr().String()))
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Close disconnects clients and stops the server.
func (s *Server) Close() error {
	s.Hub.Close()
	return s.http.Close()
}
