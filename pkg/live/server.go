package live

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

// PathPrefix is where HandleWebSocket expects to be mounted
const PathPrefix = "/live/"

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	readWait   = 5 * time.Minute
)

// Server handles WebSocket connections for live surfaces
type Server struct {
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	cfg      surface.Config
	sessions map[string]*Session
}

// Session is one connected surface
type Session struct {
	ID   string
	conn *websocket.Conn

	// mu serializes controller access between the reader and Reconfigure
	mu     sync.Mutex
	ctrl   *surface.Controller
	bus    *surface.Bus
	cancel func()

	pendingMu sync.Mutex
	pending   []byte
	wake      chan struct{}
	closeChan chan struct{}
}

// NewServer creates a live server whose sessions start from cfg
func NewServer(cfg surface.Config) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Config returns the configuration new sessions start from
func (s *Server) Config() surface.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// HandleWebSocket upgrades /live/{session} and runs the session until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, PathPrefix)
	if sessionID == "" || sessionID == r.URL.Path || strings.Contains(sessionID, "/") {
		http.Error(w, "Session ID required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, exists := s.sessions[sessionID]; exists {
		s.mu.Unlock()
		http.Error(w, "Session already connected", http.StatusConflict)
		return
	}
	// Reserve the id before upgrading
	s.sessions[sessionID] = nil
	cfg := s.cfg
	s.mu.Unlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] Failed to upgrade connection: %v", err)
		s.RemoveSession(sessionID)
		return
	}

	session := newSession(sessionID, conn, cfg)
	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	go func() {
		session.run()
		s.RemoveSession(sessionID)
	}()
}

// GetSession retrieves a connected session by ID
func (s *Server) GetSession(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists && session != nil
}

// RemoveSession forgets a session
func (s *Server) RemoveSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of connected sessions
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if sess != nil {
			n++
		}
	}
	return n
}

// Reconfigure applies cfg to every connected session and to future ones
func (s *Server) Reconfigure(cfg surface.Config) {
	s.mu.Lock()
	s.cfg = cfg
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess != nil {
			sessions = append(sessions, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Do(func(c *surface.Controller) { c.Reconfigure(cfg) })
	}
	log.Printf("[live] Reconfigured %d session(s)", len(sessions))
}

func newSession(id string, conn *websocket.Conn, cfg surface.Config) *Session {
	sess := &Session{
		ID:        id,
		conn:      conn,
		ctrl:      surface.New(cfg),
		bus:       surface.NewBus(),
		wake:      make(chan struct{}, 1),
		closeChan: make(chan struct{}),
	}
	sess.ctrl.Mount(sess.bus)
	sess.cancel = sess.ctrl.Watch(sess.queueState)
	return sess
}

// Do runs fn with exclusive access to the session's controller
func (sess *Session) Do(fn func(c *surface.Controller)) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.ctrl)
}

// State returns the session's current surface state
func (sess *Session) State() surface.State {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.ctrl.State()
}

// run owns the connection until it closes
func (sess *Session) run() {
	sess.sendHello()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		sess.writer()
	}()

	sess.queueState(sess.State())
	log.Printf("[live %s] Connected", sess.ID)

	sess.conn.SetReadDeadline(time.Now().Add(readWait))
	sess.conn.SetPongHandler(func(string) error {
		sess.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		messageType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[live %s] Unexpected close: %v", sess.ID, err)
			}
			break
		}

		var evt *Event
		switch messageType {
		case websocket.BinaryMessage:
			evt, err = DecodeEvent(data)
		case websocket.TextMessage:
			evt, err = DecodeTextEvent(data)
		default:
			continue
		}
		if err != nil {
			log.Printf("[live %s] Dropping message: %v", sess.ID, err)
			continue
		}
		sess.handleEvent(evt)
	}

	// Detach from the pointer bus before the connection goes away
	sess.mu.Lock()
	sess.cancel()
	sess.ctrl.Unmount()
	sess.mu.Unlock()

	close(sess.closeChan)
	<-writerDone
	sess.conn.Close()
	log.Printf("[live %s] Disconnected", sess.ID)
}

// handleEvent routes input: handle presses and wheel go to the controller,
// move and up go through the session's global pointer bus.
func (sess *Session) handleEvent(evt *Event) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch evt.Type {
	case EventPointerDown:
		sess.ctrl.BeginResize(evt.Handle, surface.Coordinate{X: evt.X, Y: evt.Y})
	case EventPointerMove:
		sess.bus.Move(evt.X, evt.Y)
	case EventPointerUp:
		sess.bus.Up(evt.X, evt.Y)
	case EventWheel:
		sess.ctrl.Wheel(evt.Y)
	case EventResetZoom:
		sess.ctrl.ResetZoom()
	}
}

// queueState replaces any unsent state with st. Only the latest state matters,
// so a slow client never backs up the reader.
func (sess *Session) queueState(st surface.State) {
	data, err := json.Marshal(NewStateMessage(sess.ID, st))
	if err != nil {
		log.Printf("[live %s] Failed to encode state: %v", sess.ID, err)
		return
	}
	sess.pendingMu.Lock()
	sess.pending = data
	sess.pendingMu.Unlock()

	select {
	case sess.wake <- struct{}{}:
	default:
	}
}

func (sess *Session) sendHello() {
	var buf bytes.Buffer
	if err := EncodeControl(&buf, "HELLO", sess.ID); err != nil {
		return
	}
	sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := sess.conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
		log.Printf("[live %s] Failed to send HELLO: %v", sess.ID, err)
	}
}

// writer handles writing messages to the WebSocket
func (sess *Session) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-sess.closeChan:
			sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			sess.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-sess.wake:
			sess.pendingMu.Lock()
			data := sess.pending
			sess.pending = nil
			sess.pendingMu.Unlock()
			if data == nil {
				continue
			}
			sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[live %s] Write error: %v", sess.ID, err)
				// Unblock the reader
				sess.conn.Close()
				return
			}

		case <-ticker.C:
			sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sess.conn.Close()
				return
			}
		}
	}
}
