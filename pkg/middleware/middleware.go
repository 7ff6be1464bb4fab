// Package middleware provides the event middleware chain and the stock
// Prometheus and OpenTelemetry middlewares.
//
// Every browser event a session processes flows through the configured
// chain before reaching the dispatcher, so cross-cutting concerns such as
// metrics and tracing wrap event handling the same way HTTP middleware
// wraps requests.
package middleware

import (
	"context"

	"github.com/flashbar-dev/flashbar/pkg/protocol"
)

// EventContext carries one browser event through the middleware chain.
type EventContext struct {
	// Context is the request-scoped context. Middlewares may replace it
	// to propagate values downstream.
	Context context.Context

	// SessionID identifies the originating session.
	SessionID string

	// Event is the decoded wire event.
	Event *protocol.Event

	// PatchCount is the number of patches the event produced. The
	// dispatcher fills it in before the chain unwinds.
	PatchCount int
}

// Handler processes one event.
type Handler func(*EventContext) error

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// Chain applies middlewares to h. The first middleware is outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
