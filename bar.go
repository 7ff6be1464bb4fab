package flashbar

import (
	"github.com/flashbar-dev/flashbar/pkg/dom"
	"github.com/flashbar-dev/flashbar/pkg/message"
)

// BarID is the id of the container element Bar builds.
const BarID = "flash-bar"

// BoxID returns the well-known element id for a built-in level.
func BoxID(l message.Level) string { return "msg-" + l.String() }

// StyleClass returns the per-level style class. Register ensures it on
// the element, and the client stylesheet colors by it.
func StyleClass(l message.Level) string { return "flash-" + l.String() }

// Bar builds the canonical message bar: one hidden message box per
// built-in level, each with a text slot, an action link and a dismiss
// icon. Hosts append it to their document before calling New; tests use
// the same structure.
func Bar() *dom.Element {
	levels := message.Levels()
	boxes := make([]*dom.Element, 0, len(levels))
	for _, l := range levels {
		boxes = append(boxes, Box(l))
	}
	return dom.Div(dom.ID(BarID), dom.Class("flash-bar"), dom.AriaLive("polite"), boxes)
}

// Box builds a single message box for a built-in level.
func Box(l message.Level) *dom.Element {
	return dom.Div(
		dom.ID(BoxID(l)),
		dom.Class(message.BoxClass, message.InvisibleClass),
		dom.Role("status"),
		dom.Span(dom.Class(message.TextClass)),
		dom.A(dom.Class(message.ActionClass, message.InvisibleClass)),
		dom.Span(
			dom.Class(message.DismissClass, message.InvisibleClass),
			dom.Role("button"),
			dom.AriaLabel("Dismiss"),
			"×",
		),
	)
}
