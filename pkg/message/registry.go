package message

import (
	"fmt"
	"log/slog"

	"github.com/flashbar-dev/flashbar/internal/errors"
	"github.com/flashbar-dev/flashbar/pkg/dom"
	"github.com/flashbar-dev/flashbar/pkg/i18n"
)

// Class names the registry recognizes on message markup.
const (
	// BoxClass marks an element as a message box. Every registered
	// element must carry it; event delegation walks up to it.
	BoxClass = "flash-message"
	// TextClass marks the text slot inside a message box.
	TextClass = "flash-text"
	// DismissClass marks the dismiss icon.
	DismissClass = "flash-dismiss"
	// ActionClass marks the action button.
	ActionClass = "flash-action"
	// InvisibleClass is the hidden presentation state.
	InvisibleClass = "invisible"
	// DismissingClass is present while the fade-out transition runs.
	DismissingClass = "dismissing"
)

// FailureText is displayed when a show call cannot produce any text at
// all, which only happens when the localizer resolves a key to an empty
// string.
const FailureText = "Could not display message"

// failureKey is looked up first so hosts can localize FailureText itself.
const failureKey = "message_show_failed"

// Observer receives message lifecycle notifications, typically for
// metrics. All methods must be cheap and must not call back into the
// registry.
type Observer interface {
	MessageShown(t Type)
	MessageHidden(t Type)
	MessageDismissed(t Type)
}

// entry is the per-channel registration state.
type entry struct {
	element    *dom.Element
	styleClass string
	hooks      hookBundle
}

// Registry binds message channels to their presentation elements and
// drives show, hide and dismissal against the document.
//
// A Registry is not safe for concurrent use. Hosts serialize access the
// same way they serialize document mutation, usually on a session's
// event loop.
type Registry struct {
	doc       *dom.Document
	loc       i18n.Localizer
	logger    *slog.Logger
	observer  Observer
	entries   map[Type]*entry
	byElement map[*dom.Element]Type
	global    hookBundle
}

// Option configures a Registry.
type Option func(*Registry)

// WithLocalizer sets the Localizer used to resolve message text keys.
func WithLocalizer(loc i18n.Localizer) Option {
	return func(r *Registry) { r.loc = loc }
}

// WithLogger sets the logger for structural errors surfaced from event
// delegation, where there is no caller to return them to.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithObserver sets the lifecycle observer.
func WithObserver(obs Observer) Option {
	return func(r *Registry) { r.observer = obs }
}

// NewRegistry creates a registry over the given document.
func NewRegistry(doc *dom.Document, opts ...Option) *Registry {
	r := &Registry{
		doc:       doc,
		loc:       i18n.None,
		logger:    slog.Default(),
		entries:   make(map[Type]*entry),
		byElement: make(map[*dom.Element]Type),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a message channel to its presentation element. The
// element must be attached to the registry's document, carry the message
// box marker class and contain a text slot. The style class is ensured on
// the element's class list.
//
// Registering a channel twice is an error; the binding is for the life of
// the registry.
func (r *Registry) Register(t Type, el *dom.Element, styleClass string) error {
	if t.IsZero() || t.IsGlobal() {
		return errors.New("F020").WithDetail("a concrete message type is required")
	}
	if el == nil {
		return errors.New("F020").WithDetail("a message element is required")
	}
	if _, ok := r.entries[t]; ok {
		return errors.New("F021").WithSubject(t.String())
	}
	if !el.Attached() || el.Document() != r.doc {
		return errors.New("F005").WithSubject(t.String())
	}
	if !el.HasClass(BoxClass) {
		return errors.New("F002").WithSubject(t.String())
	}
	if el.ByClass(TextClass) == nil {
		return errors.New("F003").WithSubject(t.String())
	}
	if styleClass != "" {
		el.AddClass(styleClass)
	}

	for _, icon := range el.AllByClass(DismissClass) {
		icon.AddEventListener(dom.EventClick, r.dismissClicked)
	}
	for _, btn := range el.AllByClass(ActionClass) {
		btn.AddEventListener(dom.EventClick, r.actionClicked)
	}

	r.entries[t] = &entry{element: el, styleClass: styleClass}
	r.byElement[el] = t
	return nil
}

// Registered reports whether the channel has a bound element.
func (r *Registry) Registered(t Type) bool {
	_, ok := r.entries[t]
	return ok
}

// Element returns the element bound to the channel, or nil.
func (r *Registry) Element(t Type) *dom.Element {
	if e, ok := r.entries[t]; ok {
		return e.element
	}
	return nil
}

// TypeOf returns the channel an element is bound to.
func (r *Registry) TypeOf(el *dom.Element) (Type, bool) {
	t, ok := r.byElement[el]
	return t, ok
}

func (r *Registry) resolve(t Type) (*entry, error) {
	e, ok := r.entries[t]
	if !ok {
		return nil, errors.New("F001").WithSubject(t.String())
	}
	return e, nil
}

// Show makes the channel's message visible, configured by opts.
func (r *Registry) Show(t Type, opts ShowOptions) error {
	e, err := r.resolve(t)
	if err != nil {
		return err
	}
	r.show(e, t, opts)
	return nil
}

// ShowElement shows a message addressed by its element rather than its
// channel. Elements not yet bound are registered lazily as a custom
// channel keyed by the element's id, so ad-hoc message boxes in the
// document work without an explicit Register call.
func (r *Registry) ShowElement(el *dom.Element, opts ShowOptions) error {
	if el == nil {
		return errors.New("F020").WithDetail("a message element is required")
	}
	t, ok := r.byElement[el]
	if !ok {
		id := el.ID()
		if id == "" {
			return errors.New("F004")
		}
		t = Custom(id)
		if err := r.Register(t, el, ""); err != nil {
			return err
		}
	}
	r.show(r.entries[t], t, opts)
	return nil
}

// show applies the options to an already-resolved entry. It never fails;
// structural checks happened at registration.
func (r *Registry) show(e *entry, t Type, opts ShowOptions) {
	if opts.Text != "" {
		if slot := e.element.ByClass(TextClass); slot != nil {
			slot.SetText(r.resolveText(opts.Text, opts.Args))
		}
	}

	if icon := e.element.ByClass(DismissClass); icon != nil {
		if opts.Dismissable {
			icon.RemoveClass(InvisibleClass)
		} else {
			icon.AddClass(InvisibleClass)
		}
	}

	r.configureAction(e, opts.Action)

	e.element.RemoveClass(DismissingClass)
	e.element.RemoveClass(InvisibleClass)

	if r.observer != nil {
		r.observer.MessageShown(t)
	}
	r.runHook(t, HookShow, HookEvent{Type: t, Kind: HookShow, Element: e.element})
}

// resolveText turns the show text into display text. The chain is
// localization key, then the raw string itself, then FailureText. A miss
// is never an error; a broken catalog must not block the message.
func (r *Registry) resolveText(text string, args []any) string {
	if localized, ok := r.loc.Localize(text, args...); ok {
		if localized != "" {
			return localized
		}
		if fallback, ok := r.loc.Localize(failureKey); ok && fallback != "" {
			return fallback
		}
		return FailureText
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// configureAction sets up the action button for this show. A callback
// action is stored as the channel's action hook and the link target is
// cleared; a URL action sets the link target and clears any stored
// callback. A nil action hides the button.
func (r *Registry) configureAction(e *entry, action *ActionButton) {
	btn := e.element.ByClass(ActionClass)
	if btn == nil {
		return
	}
	if action == nil {
		btn.AddClass(InvisibleClass)
		return
	}
	if action.Text != "" {
		btn.SetText(action.Text)
	}
	if action.Func != nil {
		e.hooks[HookAction] = action.Func
		btn.RemoveAttr("href")
	} else {
		e.hooks[HookAction] = nil
		btn.SetAttr("href", action.URL)
	}
	btn.RemoveClass(InvisibleClass)
}

// Hide hides the channel's message.
func (r *Registry) Hide(t Type) error {
	e, err := r.resolve(t)
	if err != nil {
		return err
	}
	r.hide(e, t, nil)
	return nil
}

// HideAll hides every registered built-in channel. Custom channels are
// host-owned and stay untouched.
func (r *Registry) HideAll() {
	for _, l := range Levels() {
		t := Builtin(l)
		if e, ok := r.entries[t]; ok {
			r.hide(e, t, nil)
		}
	}
}

func (r *Registry) hide(e *entry, t Type, ev *dom.Event) {
	e.element.AddClass(InvisibleClass)
	if icon := e.element.ByClass(DismissClass); icon != nil {
		icon.AddClass(InvisibleClass)
	}
	if r.observer != nil {
		r.observer.MessageHidden(t)
	}
	r.runHook(t, HookHide, HookEvent{Type: t, Kind: HookHide, Element: e.element, Event: ev})
}

// SetHook installs or clears (fn == nil) the hook for a trigger. Hooks
// set on GlobalType observe every channel and run before the channel's
// own hook.
func (r *Registry) SetHook(t Type, kind HookKind, fn HookFunc) error {
	if !kind.Valid() {
		return errors.New("F022").WithSubject(kind.String())
	}
	if t.IsGlobal() {
		return r.global.set(kind, fn)
	}
	e, err := r.resolve(t)
	if err != nil {
		return err
	}
	return e.hooks.set(kind, fn)
}

// runHook fires the global hook, then the channel's own hook. A hook
// addressed at GlobalType itself fires the global bundle exactly once.
func (r *Registry) runHook(t Type, kind HookKind, ev HookEvent) {
	if fn := r.global.get(kind); fn != nil {
		fn(ev)
	}
	if t.IsGlobal() {
		return
	}
	if e, ok := r.entries[t]; ok {
		if fn := e.hooks.get(kind); fn != nil {
			fn(ev)
		}
	}
}

// Clone deep-copies the channel's element, gives the copy the new id,
// forces it hidden and inserts it immediately after the source element.
// The copy carries no listeners and no registration; callers register it
// (or show it by element) to activate it.
func (r *Registry) Clone(t Type, newID string) (*dom.Element, error) {
	e, err := r.resolve(t)
	if err != nil {
		return nil, err
	}
	if newID == "" {
		return nil, errors.New("F004")
	}
	if r.doc.HasID(newID) {
		return nil, errors.New("F023").WithSubject(newID)
	}
	cp := e.element.Clone()
	cp.SetAttr("id", newID)
	cp.AddClass(InvisibleClass)
	cp.RemoveClass(DismissingClass)
	e.element.InsertAfter(cp)
	return cp, nil
}
