package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// liveWriteTimeout bounds a write to one websocket client.
const liveWriteTimeout = 2 * time.Second

// liveMessage is pushed to /live clients after every change.
type liveMessage struct {
	Type string `json:"type"`
	stateResponse
}

// hub fans state updates out to websocket clients.
type hub struct {
	logger *log.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub(logger *log.Logger) *hub {
	return &hub{logger: logger, clients: make(map[*websocket.Conn]bool)}
}

// add registers conn and sends it msg as its first message.
func (h *hub) add(conn *websocket.Conn, msg liveMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	h.send(conn, msg)
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

func (h *hub) broadcast(msg liveMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		h.send(conn, msg)
	}
}

// send writes msg to conn. Clients that cannot keep up are dropped. h.mu
// must be held.
func (h *hub) send(conn *websocket.Conn, msg liveMessage) {
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("live client dropped", "remote", conn.RemoteAddr(), "err", err)
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleLive streams the state to a websocket client: once on connect and
// again after every drag step or reset. Messages from the client are
// ignored.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.live.add(conn, liveMessage{Type: "state", stateResponse: s.snapshotLocked(s.world.State())})
	s.mu.Unlock()
	defer s.live.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("live client", "err", err)
			}
			return
		}
	}
}

// publishLocked pushes resp to the live clients. s.mu must be held.
func (s *Server) publishLocked(resp stateResponse) {
	s.live.broadcast(liveMessage{Type: "state", stateResponse: resp})
}
