package message

import (
	"github.com/flashbar-dev/flashbar/internal/errors"
	"github.com/flashbar-dev/flashbar/pkg/dom"
)

// HookKind names a lifecycle trigger a hook can observe.
type HookKind uint8

const (
	// HookShow fires after a message becomes visible with its final text.
	HookShow HookKind = iota
	// HookHide fires after a message is hidden, whether programmatically
	// or at the end of a dismissal.
	HookHide
	// HookDismissStart fires when the dismiss icon is clicked, before the
	// fade transition runs.
	HookDismissStart
	// HookDismissEnd fires once the fade transition completes and the
	// message is hidden.
	HookDismissEnd
	// HookAction fires when the message's action button is activated and
	// a callback (rather than a link target) is configured.
	HookAction

	hookKindCount
)

// String returns the string representation of the HookKind.
func (k HookKind) String() string {
	switch k {
	case HookShow:
		return "show"
	case HookHide:
		return "hide"
	case HookDismissStart:
		return "dismiss_start"
	case HookDismissEnd:
		return "dismiss_end"
	case HookAction:
		return "action"
	default:
		return "unknown"
	}
}

// Valid reports whether the kind is a known trigger.
func (k HookKind) Valid() bool { return k < hookKindCount }

// HookEvent carries the context a hook is invoked with.
type HookEvent struct {
	// Type is the message channel the trigger fired on.
	Type Type
	// Kind is the trigger.
	Kind HookKind
	// Element is the message box element.
	Element *dom.Element
	// Event is the originating browser event, nil for programmatic
	// triggers such as Show and Hide.
	Event *dom.Event
}

// HookFunc observes a message lifecycle trigger.
type HookFunc func(HookEvent)

// hookBundle holds one optional hook per trigger.
type hookBundle [hookKindCount]HookFunc

func (b *hookBundle) set(kind HookKind, fn HookFunc) error {
	if !kind.Valid() {
		return errors.New("F022").WithSubject(kind.String())
	}
	b[kind] = fn
	return nil
}

func (b *hookBundle) get(kind HookKind) HookFunc {
	if !kind.Valid() {
		return nil
	}
	return b[kind]
}
