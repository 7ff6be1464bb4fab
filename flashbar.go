// Package flashbar is the facade over the message registry: named show
// and hide operations for the five built-in status levels, hook sugar,
// and the canonical message bar markup.
//
// A Messenger is constructed once per document, after the bar markup is
// in place:
//
//	doc := dom.NewDocument()
//	doc.Root().AppendChild(flashbar.Bar())
//	bar, err := flashbar.New(doc)
//	...
//	bar.ShowInfo(message.ShowOptions{Text: "saved", Dismissable: true})
//
// Like the registry it wraps, a Messenger is not safe for concurrent
// use; hosts drive it from the goroutine that owns the document.
package flashbar

import (
	"github.com/flashbar-dev/flashbar/internal/errors"
	"github.com/flashbar-dev/flashbar/pkg/dom"
	"github.com/flashbar-dev/flashbar/pkg/message"
)

// Messenger forwards named operations to an owned message registry.
type Messenger struct {
	reg *message.Registry
}

// New builds a Messenger over the document, binding the five built-in
// levels to their well-known elements. The bar markup (see Bar) must
// already be attached; a missing built-in element is a construction
// error.
func New(doc *dom.Document, opts ...message.Option) (*Messenger, error) {
	reg := message.NewRegistry(doc, opts...)
	for _, l := range message.Levels() {
		el := doc.ElementByID(BoxID(l))
		if el == nil {
			return nil, errors.New("F001").
				WithSubject(l.String()).
				WithDetail("no element with id " + BoxID(l) + " in the document; attach Bar() before calling New")
		}
		if err := reg.Register(message.Builtin(l), el, StyleClass(l)); err != nil {
			return nil, err
		}
	}
	return &Messenger{reg: reg}, nil
}

// Registry exposes the underlying registry for custom message elements,
// cloning and other low-level operations.
func (m *Messenger) Registry() *message.Registry { return m.reg }

func (m *Messenger) show(l message.Level, opts message.ShowOptions) error {
	return m.reg.Show(message.Builtin(l), opts)
}

// ShowError shows the error message.
func (m *Messenger) ShowError(opts message.ShowOptions) error {
	return m.show(message.LevelError, opts)
}

// ShowWarning shows the warning message.
func (m *Messenger) ShowWarning(opts message.ShowOptions) error {
	return m.show(message.LevelWarn, opts)
}

// ShowInfo shows the info message.
func (m *Messenger) ShowInfo(opts message.ShowOptions) error {
	return m.show(message.LevelInfo, opts)
}

// ShowLoading shows the loading message.
func (m *Messenger) ShowLoading(opts message.ShowOptions) error {
	return m.show(message.LevelLoading, opts)
}

// ShowSuccess shows the success message.
func (m *Messenger) ShowSuccess(opts message.ShowOptions) error {
	return m.show(message.LevelSuccess, opts)
}

// The *Args forms take the positional argument list older call sites
// pass: optional text, optional dismissable flag, optional ActionButton,
// then interpolation arguments. See message.ParseArgs.

// ShowErrorArgs is the positional form of ShowError.
func (m *Messenger) ShowErrorArgs(args ...any) error {
	return m.show(message.LevelError, message.ParseArgs(args))
}

// ShowWarningArgs is the positional form of ShowWarning.
func (m *Messenger) ShowWarningArgs(args ...any) error {
	return m.show(message.LevelWarn, message.ParseArgs(args))
}

// ShowInfoArgs is the positional form of ShowInfo.
func (m *Messenger) ShowInfoArgs(args ...any) error {
	return m.show(message.LevelInfo, message.ParseArgs(args))
}

// ShowLoadingArgs is the positional form of ShowLoading.
func (m *Messenger) ShowLoadingArgs(args ...any) error {
	return m.show(message.LevelLoading, message.ParseArgs(args))
}

// ShowSuccessArgs is the positional form of ShowSuccess.
func (m *Messenger) ShowSuccessArgs(args ...any) error {
	return m.show(message.LevelSuccess, message.ParseArgs(args))
}

// HideWarning hides the warning message.
func (m *Messenger) HideWarning() error {
	return m.reg.Hide(message.Builtin(message.LevelWarn))
}

// HideInfo hides the info message.
func (m *Messenger) HideInfo() error {
	return m.reg.Hide(message.Builtin(message.LevelInfo))
}

// HideLoading hides the loading message.
func (m *Messenger) HideLoading() error {
	return m.reg.Hide(message.Builtin(message.LevelLoading))
}

// HideSuccess hides the success message.
func (m *Messenger) HideSuccess() error {
	return m.reg.Hide(message.Builtin(message.LevelSuccess))
}

// HideAll hides every built-in message.
func (m *Messenger) HideAll() { m.reg.HideAll() }

// SetHooks installs the show and hide hooks for a channel in one call.
// Either hook may be nil to leave that slot cleared.
func (m *Messenger) SetHooks(t message.Type, onShow, onHide message.HookFunc) error {
	if err := m.reg.SetHook(t, message.HookShow, onShow); err != nil {
		return err
	}
	return m.reg.SetHook(t, message.HookHide, onHide)
}

// SetDismissHooks installs global dismiss-phase hooks, observing the
// start and end of every message's dismiss transition.
func (m *Messenger) SetDismissHooks(onStart, onEnd message.HookFunc) error {
	if err := m.reg.SetHook(message.GlobalType, message.HookDismissStart, onStart); err != nil {
		return err
	}
	return m.reg.SetHook(message.GlobalType, message.HookDismissEnd, onEnd)
}
