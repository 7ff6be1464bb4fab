// Package server hosts message documents over HTTP and WebSocket.
//
// Each page load gets a session with its own document; a setup callback
// populates the document and wires the message layer. The rendered page
// carries the session id, and the client's WebSocket connection attaches
// to the session to stream patches down and events up.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flashbar-dev/flashbar/pkg/assets"
	"github.com/flashbar-dev/flashbar/pkg/middleware"
	"github.com/flashbar-dev/flashbar/pkg/render"
)

// SetupFunc populates a fresh session's document and wires the message
// layer. It runs once per session, before the page is rendered.
type SetupFunc func(s *Session) error

// Server serves pages and their WebSocket sessions.
type Server struct {
	config      *Config
	logger      *slog.Logger
	setup       SetupFunc
	title       string
	middlewares []middleware.Middleware
	upgrader    websocket.Upgrader
	renderer    *render.Renderer

	mu       sync.Mutex
	sessions map[string]*Session

	httpSrv *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithPageTitle sets the rendered page title.
func WithPageTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// WithMiddleware appends event middlewares, outermost first.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(s *Server) { s.middlewares = append(s.middlewares, mws...) }
}

// New creates a server. setup runs for every new session.
func New(config *Config, setup SetupFunc, opts ...Option) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Server{
		config:   config,
		logger:   slog.Default(),
		setup:    setup,
		title:    "Messages",
		renderer: render.NewRenderer(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:    config.ReadBufferSize,
		WriteBufferSize:   config.WriteBufferSize,
		EnableCompression: config.Session.EnableCompression,
	}
	if config.CheckOrigin != nil {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			return config.CheckOrigin(r.Header.Get("Origin"))
		}
	}
	return s
}

// Router returns the HTTP routes: the page at /, the WebSocket endpoint
// at /ws, the client bundle under /assets and Prometheus metrics at
// /metrics.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/assets/*", http.StripPrefix("/assets/", assets.Handler()))
	return r
}

// Session returns the session by id, or nil.
func (s *Server) Session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := NewSession(newSessionID(), s.config.Session, s.logger, s.middlewares...)
	if s.setup != nil {
		if err := s.setup(sess); err != nil {
			s.logger.Error("session setup failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.renderer.RenderPage(w, render.PageData{
		Title:       s.title,
		Body:        sess.Document().Root(),
		StyleSheets: []string{"/assets/" + assets.StyleName},
		Scripts:     []string{"/assets/" + assets.ScriptName},
		WSPath:      "/ws",
		SessionID:   sess.ID,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
	sess.DiscardPending()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	sess := s.Session(id)
	if sess == nil || sess.IsClosed() {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		middleware.RecordWebSocketError("upgrade")
		return
	}

	if err := sess.handshake(conn); err != nil {
		s.logger.Error("handshake failed", "session", id, "error", err)
		middleware.RecordWebSocketError("handshake")
		conn.Close()
		return
	}

	sess.Attach(conn)
	s.logger.Info("session attached", "session", id)
}

// ListenAndServe serves until ctx is canceled, then shuts down
// gracefully and closes all sessions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    s.config.Address,
		Handler: s.Router(),
	}

	go s.reapIdleSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := s.httpSrv.Shutdown(shutdownCtx)

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()
	return err
}

// reapIdleSessions drops sessions whose client went away.
func (s *Server) reapIdleSessions(ctx context.Context) {
	interval := s.config.Session.IdleTimeout / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-s.config.Session.IdleTimeout)
			s.mu.Lock()
			for id, sess := range s.sessions {
				if sess.IsClosed() || sess.LastActive().Before(cutoff) {
					sess.Close()
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func newSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
