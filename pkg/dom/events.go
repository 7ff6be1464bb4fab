package dom

// EventType identifies a DOM event by its browser name.
type EventType string

const (
	EventClick         EventType = "click"
	EventTransitionEnd EventType = "transitionend"
	EventCustom        EventType = "custom"
)

// Event is a dispatched DOM event. Events bubble from the target to the
// document root unless a listener stops propagation.
type Event struct {
	Type   EventType
	Target *Element

	// Detail carries event-specific string fields (e.g. the transition
	// property name, or a custom event payload).
	Detail map[string]string

	stopped bool
}

// StopPropagation prevents the event from bubbling further.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener is an event callback.
type Listener func(*Event)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

var listenerSeq ListenerID

type listener struct {
	id   ListenerID
	fn   Listener
	once bool
}

// AddEventListener registers a listener for the event type and returns an
// id for later removal.
func (el *Element) AddEventListener(t EventType, fn Listener) ListenerID {
	return el.addListener(t, fn, false)
}

// AddEventListenerOnce registers a listener that is removed after its first
// invocation.
func (el *Element) AddEventListenerOnce(t EventType, fn Listener) ListenerID {
	return el.addListener(t, fn, true)
}

func (el *Element) addListener(t EventType, fn Listener, once bool) ListenerID {
	if el.listeners == nil {
		el.listeners = make(map[EventType][]*listener)
	}
	listenerSeq++
	el.listeners[t] = append(el.listeners[t], &listener{id: listenerSeq, fn: fn, once: once})
	return listenerSeq
}

// RemoveEventListener removes a listener by id. Removing an unknown id is a
// no-op.
func (el *Element) RemoveEventListener(t EventType, id ListenerID) {
	ls := el.listeners[t]
	for i, l := range ls {
		if l.id == id {
			el.listeners[t] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Dispatch delivers the event to el and bubbles it through el's ancestors.
// One-shot listeners are removed before their callback runs, so a listener
// that re-dispatches the same event cannot fire itself again.
func (el *Element) Dispatch(ev *Event) {
	if ev.Target == nil {
		ev.Target = el
	}
	for n := el; n != nil; n = n.parent {
		n.invoke(ev)
		if ev.stopped {
			return
		}
	}
}

// invoke runs the element's own listeners for the event type.
func (el *Element) invoke(ev *Event) {
	ls := el.listeners[ev.Type]
	if len(ls) == 0 {
		return
	}
	// Snapshot: callbacks may add or remove listeners.
	snapshot := make([]*listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if l.once {
			el.RemoveEventListener(ev.Type, l.id)
		}
		l.fn(ev)
		if ev.stopped {
			return
		}
	}
}

// NewEvent creates an event of the given type targeting el.
func (el *Element) NewEvent(t EventType) *Event {
	return &Event{Type: t, Target: el}
}
