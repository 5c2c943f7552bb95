package server

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/regform/pkg/middleware"
	"github.com/vango-dev/regform/pkg/protocol"
	"github.com/vango-dev/regform/pkg/toast"
)

// SubmitFailedMessage is shown when the submitter returns an error.
const SubmitFailedMessage = "Не удалось отправить форму"

// ReadLoop continuously reads frames from the WebSocket connection and
// applies them to the session's form. It blocks until the connection is
// closed, an I/O error occurs, or ctx is cancelled.
func (s *Session) ReadLoop(ctx context.Context) {
	defer s.Close()

	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	// The client starts from the server-rendered page.
	if form := s.controller.Form(); form != nil {
		s.lastHTML, _ = s.server.renderer.RenderToString(form)
	}

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) && !s.IsClosed() {
				s.logger.Error("read error", "error", err)
				s.recordError("read")
			}
			return
		}

		frame, err := protocol.Decode(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.recordFrame("invalid")
			s.sendError(err)
			continue
		}

		switch f := frame.(type) {
		case *protocol.PingFrame:
			s.recordFrame(string(protocol.FramePing))
			if err := s.send(protocol.NewPong(f)); err != nil {
				s.logger.Error("pong error", "error", err)
				return
			}

		case *protocol.EventFrame:
			s.recordFrame(string(protocol.FrameEvent))
			if err := s.handleEvent(ctx, f); err != nil {
				s.logger.Error("write error", "error", err)
				s.recordError("write")
				return
			}
		}
	}
}

// handleEvent runs one browser event through the controller and sends the
// resulting patch and toasts. Only write failures are returned; rejected
// events are reported to the client with an error frame.
func (s *Session) handleEvent(ctx context.Context, f *protocol.EventFrame) error {
	ev := f.ToEvent()

	var span trace.Span
	if t := s.server.config.Tracer; t != nil {
		ctx, span = t.Start(ctx, s.ID, ev)
	}

	out, err := s.controller.HandleEvent(ctx, ev)
	if span != nil {
		middleware.End(span, out, err)
	}
	if err != nil {
		s.logger.Warn("event rejected", "error", err, "event", ev.Type, "role", string(ev.Role))
		s.sendError(err)
		return nil
	}
	if out != nil && out.Err != nil && !errors.Is(out.Err, context.Canceled) {
		toast.Error(s, SubmitFailedMessage)
	}

	return s.flush()
}

func (s *Session) recordFrame(frameType string) {
	if m := s.server.config.Metrics; m != nil {
		m.FrameReceived(frameType)
	}
}

func (s *Session) recordError(errorType string) {
	if m := s.server.config.Metrics; m != nil {
		m.WebSocketError(errorType)
	}
}
