package message

import (
	"log/slog"

	"github.com/flashbar-dev/flashbar/pkg/dom"
)

// Dismissal is a two-phase state machine driven by browser events. A
// click on the dismiss icon starts the fade by adding the dismissing
// class and arming a one-shot transitionend listener; the transitionend
// completes it by hiding the message. Transition events arriving after
// completion find no listener and are no-ops.

// dismissClicked is the delegated click handler for dismiss icons. It is
// wired at registration time; there is no caller to return errors to, so
// structural mismatches are logged.
func (r *Registry) dismissClicked(ev *dom.Event) {
	box := ev.Target.Closest(BoxClass)
	if box == nil {
		r.logger.Error("dismiss click outside a message box",
			slog.String("node", ev.Target.NodeID()))
		return
	}
	t, ok := r.byElement[box]
	if !ok {
		r.logger.Error("dismiss click on an unregistered message box",
			slog.String("id", box.ID()))
		return
	}
	if box.HasClass(DismissingClass) {
		// Already fading; a second click must not arm another listener.
		return
	}

	box.AddClass(DismissingClass)
	box.AddEventListenerOnce(dom.EventTransitionEnd, func(end *dom.Event) {
		r.dismissEnded(box, t, end)
	})
	r.runHook(t, HookDismissStart, HookEvent{Type: t, Kind: HookDismissStart, Element: box, Event: ev})
}

func (r *Registry) dismissEnded(box *dom.Element, t Type, ev *dom.Event) {
	e, ok := r.entries[t]
	if !ok {
		return
	}
	r.hide(e, t, ev)
	box.RemoveClass(DismissingClass)
	if r.observer != nil {
		r.observer.MessageDismissed(t)
	}
	r.runHook(t, HookDismissEnd, HookEvent{Type: t, Kind: HookDismissEnd, Element: box, Event: ev})
}

// actionClicked is the delegated click handler for action buttons. It
// fires the channel's action hook when a callback action is configured;
// URL actions are handled by the browser following the link target.
func (r *Registry) actionClicked(ev *dom.Event) {
	box := ev.Target.Closest(BoxClass)
	if box == nil {
		r.logger.Error("action click outside a message box",
			slog.String("node", ev.Target.NodeID()))
		return
	}
	t, ok := r.byElement[box]
	if !ok {
		r.logger.Error("action click on an unregistered message box",
			slog.String("id", box.ID()))
		return
	}
	r.runHook(t, HookAction, HookEvent{Type: t, Kind: HookAction, Element: box, Event: ev})
}
