package server

import "time"

// SessionConfig holds per-session limits and timeouts.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message from the
	// client. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// IdleTimeout is the time after which a session that never attached
	// a connection, or lost it, is discarded. Default: 5 minutes.
	IdleTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket
	// message. Default: 64KB.
	MaxMessageSize int64

	// MaxEventQueue is the size of the event channel buffer.
	// Default: 256.
	MaxEventQueue int

	// EnableCompression enables WebSocket compression. Default: true.
	EnableCompression bool
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		IdleTimeout:       5 * time.Minute,
		MaxMessageSize:    64 * 1024,
		MaxEventQueue:     256,
		EnableCompression: true,
	}
}

// Clone returns a copy of the SessionConfig.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Config holds configuration for the HTTP/WebSocket server.
type Config struct {
	// Address is the address to listen on. Default: ":8080".
	Address string

	// ReadBufferSize is the WebSocket read buffer size. Default: 4KB.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size. Default: 4KB.
	WriteBufferSize int

	// CheckOrigin validates the Origin header during the WebSocket
	// upgrade. Nil accepts same-origin requests only.
	CheckOrigin func(origin string) bool

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Session is the per-session configuration.
	Session *SessionConfig
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		ShutdownTimeout: 10 * time.Second,
		Session:         DefaultSessionConfig(),
	}
}
