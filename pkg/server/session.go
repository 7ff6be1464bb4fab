package server

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flashbar-dev/flashbar/internal/errors"
	"github.com/flashbar-dev/flashbar/pkg/dom"
	"github.com/flashbar-dev/flashbar/pkg/middleware"
	"github.com/flashbar-dev/flashbar/pkg/protocol"
	"github.com/flashbar-dev/flashbar/pkg/render"
)

// Session owns one client's document. All document mutation happens on
// the session's event loop; mutations are mirrored to the client as patch
// batches over the WebSocket connection.
//
// A session is created at page render time, before the WebSocket
// attaches. Patches produced in that window are buffered and flushed once
// the connection arrives.
type Session struct {
	ID string

	config   *SessionConfig
	logger   *slog.Logger
	doc      *dom.Document
	renderer *render.Renderer
	handler  middleware.Handler

	conn       *websocket.Conn
	attached   atomic.Bool
	events     chan *protocol.Event
	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool
	started    atomic.Bool

	writeMu sync.Mutex
	sendSeq atomic.Uint32
	pending []protocol.Patch

	activeMu   sync.Mutex
	lastActive time.Time
}

// NewSession creates a session over its own document. Middlewares wrap
// the event dispatcher, outermost first.
func NewSession(id string, config *SessionConfig, logger *slog.Logger, mws ...middleware.Middleware) *Session {
	if config == nil {
		config = DefaultSessionConfig()
	}
	s := &Session{
		ID:         id,
		config:     config,
		logger:     logger.With(slog.String("session", id)),
		doc:        dom.NewDocument(),
		renderer:   render.NewRenderer(),
		events:     make(chan *protocol.Event, config.MaxEventQueue),
		dispatchCh: make(chan func(), config.MaxEventQueue),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}
	s.handler = middleware.Chain(s.dispatchEvent, mws...)
	s.doc.SetSink(s)
	return s
}

// Document returns the session's document.
func (s *Session) Document() *dom.Document { return s.doc }

// Logger returns the session's logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Apply implements dom.PatchSink: every document mutation lands here and
// is translated to its wire form for the next flush.
func (s *Session) Apply(p dom.Patch) {
	wp := protocol.Patch{Target: p.NID}
	switch p.Op {
	case dom.PatchSetText:
		wp.Op = protocol.OpSetText
		wp.Value = p.Value
	case dom.PatchSetAttr:
		wp.Op = protocol.OpSetAttr
		wp.Key = p.Key
		wp.Value = p.Value
	case dom.PatchRemoveAttr:
		wp.Op = protocol.OpRemoveAttr
		wp.Key = p.Key
	case dom.PatchAddClass:
		// The document records the class name in Value; the wire form
		// carries it in Key.
		wp.Op = protocol.OpAddClass
		wp.Key = p.Value
	case dom.PatchRemoveClass:
		wp.Op = protocol.OpRemoveClass
		wp.Key = p.Value
	case dom.PatchInsertNode:
		wp.Op = protocol.OpInsertNode
		wp.Parent = p.ParentNID
		wp.Index = uint32(p.Index)
		html, err := s.renderer.RenderToString(p.Node)
		if err != nil {
			s.logger.Error("render inserted node", "error", err)
			return
		}
		wp.HTML = html
	case dom.PatchRemoveNode:
		wp.Op = protocol.OpRemoveNode
	default:
		s.logger.Warn("unknown document patch op", "op", p.Op.String())
		return
	}
	s.pending = append(s.pending, wp)
}

// DiscardPending drops patches buffered so far. The page handler calls
// it after server-side rendering, which already reflects the document
// state the setup produced.
func (s *Session) DiscardPending() { s.pending = nil }

// Attach hands the upgraded connection to the session and starts its
// loops. Patches buffered before attach are flushed immediately.
func (s *Session) Attach(conn *websocket.Conn) {
	s.writeMu.Lock()
	s.conn = conn
	s.writeMu.Unlock()

	conn.SetReadLimit(s.config.MaxMessageSize)
	s.attached.Store(true)
	s.touch()

	if s.started.CompareAndSwap(false, true) {
		middleware.RecordSessionOpen()
		go s.ReadLoop()
		go s.WriteLoop()
		go s.EventLoop()
	}
	s.Dispatch(func() {}) // triggers a flush of buffered patches
}

// Dispatch schedules fn on the event loop. Host code mutates the
// document only through Dispatch, never from other goroutines. The
// resulting patches are flushed when fn returns.
func (s *Session) Dispatch(fn func()) {
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	}
}

// QueueEvent queues a decoded client event for the event loop.
func (s *Session) QueueEvent(ev *protocol.Event) error {
	select {
	case s.events <- ev:
		return nil
	default:
		return errors.New("F063").WithSubject(s.ID)
	}
}

// EventLoop processes queued events and dispatched functions. It is the
// only goroutine that touches the document.
func (s *Session) EventLoop() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		case fn := <-s.dispatchCh:
			s.execute(fn)
		case <-s.done:
			return
		}
	}
}

func (s *Session) handleEvent(ev *protocol.Event) {
	defer s.recoverPanic("event")

	ctx := &middleware.EventContext{
		Context:   context.Background(),
		SessionID: s.ID,
		Event:     ev,
	}
	if err := s.handler(ctx); err != nil {
		s.logger.Error("event dispatch failed",
			"kind", ev.Kind.String(),
			"target", ev.Target,
			"error", err)
	}
	s.flushPatches()
}

func (s *Session) execute(fn func()) {
	defer s.recoverPanic("dispatch")
	fn()
	s.flushPatches()
}

func (s *Session) recoverPanic(where string) {
	if r := recover(); r != nil {
		s.logger.Error("panic on event loop",
			"where", where,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

// dispatchEvent is the innermost handler of the middleware chain: it maps
// the wire event onto the document and dispatches it.
func (s *Session) dispatchEvent(ctx *middleware.EventContext) error {
	ev := ctx.Event
	target := s.doc.ElementByNodeID(ev.Target)
	if target == nil {
		return errors.New("F062").WithSubject(ev.Target)
	}

	var et dom.EventType
	switch ev.Kind {
	case protocol.EventClick:
		et = dom.EventClick
	case protocol.EventTransitionEnd:
		et = dom.EventTransitionEnd
	case protocol.EventCustom:
		et = dom.EventCustom
	default:
		return errors.New("F061").WithSubject(ev.Kind.String())
	}

	e := target.NewEvent(et)
	e.Detail = ev.Detail
	target.Dispatch(e)

	ctx.PatchCount = len(s.pending)
	return nil
}

// flushPatches sends everything mutated since the last flush as
// sequenced patch batches.
func (s *Session) flushPatches() {
	if len(s.pending) == 0 {
		return
	}
	if !s.attached.Load() {
		// Keep buffering until the connection attaches.
		return
	}
	patches := s.pending
	s.pending = nil
	s.sendPatches(patches)
}

// sendPatches sends the patches as one batch, splitting in half when the
// encoded batch does not fit a single frame. A lone patch that still does
// not fit (a huge inserted subtree) cannot be split and is dropped with a
// log line.
func (s *Session) sendPatches(patches []protocol.Patch) {
	if len(patches) == 0 {
		return
	}
	payload := (&protocol.PatchBatch{Patches: patches}).EncodeBytes()
	if len(payload) > protocol.MaxPayloadSize && len(patches) > 1 {
		mid := len(patches) / 2
		s.sendPatches(patches[:mid])
		s.sendPatches(patches[mid:])
		return
	}

	batch := &protocol.PatchBatch{
		Seq:     s.sendSeq.Add(1),
		Patches: patches,
	}
	frame := protocol.NewFrame(protocol.FramePatches, batch.EncodeBytes())
	frame.Flags = protocol.FlagSequenced
	if err := s.writeFrame(frame); err != nil {
		s.logger.Error("patch flush failed", "seq", batch.Seq, "error", err)
		middleware.RecordWebSocketError("write")
		return
	}
	middleware.RecordPatches(len(batch.Patches))
}

func (s *Session) writeFrame(f *protocol.Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == nil || s.closed.Load() {
		// No connection yet; the patches stay pending until attach.
		return nil
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *Session) touch() {
	s.activeMu.Lock()
	s.lastActive = time.Now()
	s.activeMu.Unlock()
}

// LastActive returns the time of the last client activity.
func (s *Session) LastActive() time.Time {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	return s.lastActive
}

// Done is closed when the session shuts down.
func (s *Session) Done() <-chan struct{} { return s.done }

// IsClosed reports whether the session has shut down.
func (s *Session) IsClosed() bool { return s.closed.Load() }

// Close shuts the session down. Safe to call multiple times.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)

	s.writeMu.Lock()
	if s.conn != nil {
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.conn.Close()
		s.conn = nil
	}
	s.writeMu.Unlock()

	if s.started.Load() {
		middleware.RecordSessionClose()
	}
	s.logger.Info("session closed")
}
