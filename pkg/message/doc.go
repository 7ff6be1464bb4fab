// Package message implements the message registry: the binding between
// message channels (five built-in levels plus custom channels keyed by
// element id) and the document elements that present them.
//
// The registry owns show and hide semantics, text resolution through a
// Localizer, the action button, lifecycle hooks with a global bundle
// that runs before per-channel hooks, and the two-phase dismissal driven
// by click and transitionend events.
//
// Structural problems detected at registration time are returned as
// errors; problems detected inside delegated event handlers are logged,
// since a broken message box must never take down the event loop.
package message
