package server

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/flashbar-dev/flashbar/pkg/middleware"
	"github.com/flashbar-dev/flashbar/pkg/protocol"
)

// ReadLoop continuously reads frames from the WebSocket connection,
// queueing events and answering control frames. It blocks until the
// connection closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		conn := s.connection()
		if conn == nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				middleware.RecordWebSocketError("read")
			}
			return
		}
		s.touch()

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			middleware.RecordWebSocketError("decode")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		case protocol.FramePing:
			s.writeFrame(protocol.NewFrame(protocol.FramePong, frame.Payload))
		case protocol.FramePong:
			// Heartbeat reply, activity already recorded.
		case protocol.FrameClose:
			s.logger.Info("client closing")
			return
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type.String())
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Error("event decode error", "error", err)
		middleware.RecordWebSocketError("decode")
		return
	}
	if err := s.QueueEvent(ev); err != nil {
		s.logger.Warn("event dropped", "error", err)
		middleware.RecordWebSocketError("queue_full")
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.writeFrame(protocol.NewFrame(protocol.FramePing, nil)); err != nil {
				s.logger.Error("ping failed", "error", err)
				middleware.RecordWebSocketError("write")
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// handshake performs the hello exchange on a fresh connection: the client
// sends its hello, the server replies with the session id.
func (s *Session) handshake(conn *websocket.Conn) error {
	conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return err
	}
	if frame.Type != protocol.FrameHello {
		return protocol.ErrInvalidFrameType
	}
	if _, err := protocol.DecodeHello(frame.Payload); err != nil {
		return err
	}

	reply := &protocol.Hello{Version: protocol.Version, SessionID: s.ID}
	data, err := protocol.NewFrame(protocol.FrameHello, reply.EncodeBytes()).Encode()
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *Session) connection() *websocket.Conn {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn
}
