// Package stream pushes world snapshots to WebSocket clients.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sphere-ca/internal/core"
	"sphere-ca/internal/world"
)

// ErrQueueFull is returned by Publish when the broadcast queue stays full.
var ErrQueueFull = errors.New("stream: broadcast queue full")

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("stream: hub closed")

const writeWait = 10 * time.Second

// Hub fans snapshots out to every connected client.
type Hub struct {
	log        core.Logger
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewHub starts the broadcaster goroutine. Close stops it.
func NewHub(log core.Logger) *Hub {
	if log == nil {
		log = core.NoOpLogger{}
	}
	h := &Hub{
		log:        log,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Incoming messages are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("stream: upgrade failed: %v", err)
		return
	}
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}
	h.log.Debugf("stream: client %s connected", conn.RemoteAddr())
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Publish queues snap for delivery to all clients.
func (h *Hub) Publish(ctx context.Context, snap world.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrClosed
	default:
	}
	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
		return ErrQueueFull
	}
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
		case conn := <-h.unregister:
			h.drop(conn)
		case data := <-h.broadcast:
			h.send(data)
		}
	}
}

func (h *Hub) send(data []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debugf("stream: dropping client %s: %v", conn.RemoteAddr(), err)
			h.drop(conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Close disconnects every client and stops the broadcaster.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	})
	return nil
}
