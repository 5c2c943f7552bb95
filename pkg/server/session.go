package server

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/regform/pkg/protocol"
	"github.com/vango-dev/regform/pkg/regform"
)

// Session is one page view connected over WebSocket. It owns a private
// form tree and controller; frames are processed one at a time.
type Session struct {
	ID string

	server     *Server
	conn       *websocket.Conn
	controller *regform.Controller
	config     *SessionConfig
	logger     *slog.Logger

	// toasts emitted while handling the current event.
	toasts []protocol.ToastFrame

	// lastHTML is the form HTML the client currently shows.
	lastHTML string

	writeMu sync.Mutex
	closed  atomic.Bool
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	id := newSessionID()
	return &Session{
		ID:     id,
		server: s,
		conn:   conn,
		config: s.config.SessionConfig,
		logger: s.logger.With("session_id", id),
	}
}

func newSessionID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b[:])
}

// Controller returns the session's form controller.
func (s *Session) Controller() *regform.Controller { return s.controller }

// Emit implements toast.Emitter. Toasts are queued and sent after the
// form patch of the event being handled.
func (s *Session) Emit(event string, detail map[string]any) {
	frame, ok := protocol.NewToast(detail)
	if !ok {
		s.logger.Warn("dropping non-toast event", "event", event)
		return
	}
	s.toasts = append(s.toasts, frame)
}

// Close closes the connection. It is safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.writeMu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
		time.Now().Add(time.Second))
	s.writeMu.Unlock()
	s.conn.Close()
}

// IsClosed reports whether Close was called.
func (s *Session) IsClosed() bool { return s.closed.Load() }

// send writes one JSON frame.
func (s *Session) send(frame any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return websocket.ErrCloseSent
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteJSON(frame)
}

func (s *Session) sendError(err error) {
	if werr := s.send(protocol.NewErrorFrame(err)); werr != nil {
		s.logger.Error("error frame write failed", "error", werr)
	}
}

// flush sends the form patch, if the form changed, followed by any queued
// toasts.
func (s *Session) flush() error {
	if form := s.controller.Form(); form != nil {
		html, err := s.server.renderer.RenderToString(form)
		if err != nil {
			return err
		}
		if html != s.lastHTML {
			if err := s.send(protocol.NewPatch(html)); err != nil {
				return err
			}
			s.lastHTML = html
			if m := s.server.config.Metrics; m != nil {
				m.PatchSent()
			}
		}
	}

	toasts := s.toasts
	s.toasts = nil
	for _, t := range toasts {
		if err := s.send(t); err != nil {
			return err
		}
	}
	return nil
}
