package flashbar

import (
	"errors"
	"testing"

	interrors "github.com/flashbar-dev/flashbar/internal/errors"
	"github.com/flashbar-dev/flashbar/pkg/dom"
	"github.com/flashbar-dev/flashbar/pkg/i18n"
	"github.com/flashbar-dev/flashbar/pkg/message"
)

func newBar(t *testing.T, opts ...message.Option) (*dom.Document, *Messenger) {
	t.Helper()
	doc := dom.NewDocument()
	doc.Root().AppendChild(Bar())
	m, err := New(doc, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return doc, m
}

func box(t *testing.T, doc *dom.Document, l message.Level) *dom.Element {
	t.Helper()
	el := doc.ElementByID(BoxID(l))
	if el == nil {
		t.Fatalf("no box for level %s", l)
	}
	return el
}

func TestBarStructure(t *testing.T) {
	bar := Bar()
	if bar.ID() != BarID {
		t.Errorf("bar id = %q", bar.ID())
	}

	levels := message.Levels()
	if len(bar.Children()) != len(levels) {
		t.Fatalf("bar has %d children, want %d", len(bar.Children()), len(levels))
	}
	for i, l := range levels {
		b := bar.Children()[i]
		if b.ID() != BoxID(l) {
			t.Errorf("box %d id = %q, want %q", i, b.ID(), BoxID(l))
		}
		if !b.HasClass(message.BoxClass) || !b.HasClass(message.InvisibleClass) {
			t.Errorf("box %s classes = %v", l, b.Classes())
		}
		for _, class := range []string{message.TextClass, message.DismissClass, message.ActionClass} {
			if b.ByClass(class) == nil {
				t.Errorf("box %s has no %s child", l, class)
			}
		}
	}
}

func TestNewRegistersAllLevels(t *testing.T) {
	doc, m := newBar(t)
	for _, l := range message.Levels() {
		if !m.Registry().Registered(message.Builtin(l)) {
			t.Errorf("level %s not registered", l)
		}
		if !box(t, doc, l).HasClass(StyleClass(l)) {
			t.Errorf("level %s missing style class %s", l, StyleClass(l))
		}
	}
}

func TestNewMissingBoxFails(t *testing.T) {
	doc := dom.NewDocument()
	bar := Bar()
	doc.Root().AppendChild(bar)
	doc.ElementByID(BoxID(message.LevelLoading)).Remove()

	_, err := New(doc)
	if !errors.Is(err, interrors.New("F001")) {
		t.Errorf("err = %v, want F001", err)
	}
}

func TestShowThenHidePerLevel(t *testing.T) {
	doc, m := newBar(t)

	shows := map[message.Level]func(message.ShowOptions) error{
		message.LevelError:   m.ShowError,
		message.LevelWarn:    m.ShowWarning,
		message.LevelInfo:    m.ShowInfo,
		message.LevelLoading: m.ShowLoading,
		message.LevelSuccess: m.ShowSuccess,
	}
	hides := map[message.Level]func() error{
		message.LevelWarn:    m.HideWarning,
		message.LevelInfo:    m.HideInfo,
		message.LevelLoading: m.HideLoading,
		message.LevelSuccess: m.HideSuccess,
	}

	for l, show := range shows {
		b := box(t, doc, l)
		if err := show(message.ShowOptions{Text: "msg " + l.String()}); err != nil {
			t.Fatalf("show %s: %v", l, err)
		}
		if b.HasClass(message.InvisibleClass) {
			t.Errorf("%s still hidden after show", l)
		}
		if got := b.ByClass(message.TextClass).TextContent(); got != "msg "+l.String() {
			t.Errorf("%s text = %q", l, got)
		}

		hide, ok := hides[l]
		if !ok {
			continue
		}
		if err := hide(); err != nil {
			t.Fatalf("hide %s: %v", l, err)
		}
		if !b.HasClass(message.InvisibleClass) {
			t.Errorf("%s visible after hide", l)
		}
	}
}

func TestHideAll(t *testing.T) {
	doc, m := newBar(t)
	if err := m.ShowError(message.ShowOptions{Text: "boom"}); err != nil {
		t.Fatal(err)
	}
	if err := m.ShowInfo(message.ShowOptions{Text: "fyi"}); err != nil {
		t.Fatal(err)
	}

	m.HideAll()
	for _, l := range message.Levels() {
		if !box(t, doc, l).HasClass(message.InvisibleClass) {
			t.Errorf("%s visible after HideAll", l)
		}
	}
}

func TestSetHooksGlobalThenSpecific(t *testing.T) {
	_, m := newBar(t)

	var calls []string
	err := m.SetHooks(message.GlobalType,
		func(message.HookEvent) { calls = append(calls, "global-show") },
		func(message.HookEvent) { calls = append(calls, "global-hide") })
	if err != nil {
		t.Fatal(err)
	}
	err = m.SetHooks(message.Builtin(message.LevelError),
		func(message.HookEvent) { calls = append(calls, "error-show") },
		func(message.HookEvent) { calls = append(calls, "error-hide") })
	if err != nil {
		t.Fatal(err)
	}

	if err := m.ShowErrorArgs("x"); err != nil {
		t.Fatal(err)
	}
	want := []string{"global-show", "error-show"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}

	// A different level only fires the global hook.
	calls = nil
	if err := m.ShowInfoArgs("y"); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0] != "global-show" {
		t.Errorf("calls = %v", calls)
	}
}

func TestSetDismissHooks(t *testing.T) {
	doc, m := newBar(t)

	var phases []string
	err := m.SetDismissHooks(
		func(message.HookEvent) { phases = append(phases, "start") },
		func(message.HookEvent) { phases = append(phases, "end") })
	if err != nil {
		t.Fatal(err)
	}

	if err := m.ShowWarningArgs("careful", true); err != nil {
		t.Fatal(err)
	}
	b := box(t, doc, message.LevelWarn)
	icon := b.ByClass(message.DismissClass)
	if icon.HasClass(message.InvisibleClass) {
		t.Fatal("dismiss icon should be visible")
	}

	icon.Dispatch(icon.NewEvent(dom.EventClick))
	if !b.HasClass(message.DismissingClass) {
		t.Error("box should be fading after dismiss click")
	}
	b.Dispatch(b.NewEvent(dom.EventTransitionEnd))

	if !b.HasClass(message.InvisibleClass) || b.HasClass(message.DismissingClass) {
		t.Errorf("box classes after dismiss = %v", b.Classes())
	}
	if len(phases) != 2 || phases[0] != "start" || phases[1] != "end" {
		t.Errorf("phases = %v", phases)
	}

	// A stray transitionend after completion changes nothing.
	b.Dispatch(b.NewEvent(dom.EventTransitionEnd))
	if len(phases) != 2 {
		t.Errorf("stray transitionend fired hooks: %v", phases)
	}
}

func TestPositionalForms(t *testing.T) {
	doc, m := newBar(t)

	if err := m.ShowSuccessArgs("saved %d items", 3); err != nil {
		t.Fatal(err)
	}
	b := box(t, doc, message.LevelSuccess)
	if got := b.ByClass(message.TextClass).TextContent(); got != "saved 3 items" {
		t.Errorf("text = %q", got)
	}

	// Leading bool toggles the icon without touching the text.
	if err := m.ShowSuccessArgs(true); err != nil {
		t.Fatal(err)
	}
	if got := b.ByClass(message.TextClass).TextContent(); got != "saved 3 items" {
		t.Errorf("text after bool-only show = %q", got)
	}
	if b.ByClass(message.DismissClass).HasClass(message.InvisibleClass) {
		t.Error("dismiss icon should be visible")
	}

	var clicked bool
	action := &message.ActionButton{Text: "Undo", Func: func(message.HookEvent) { clicked = true }}
	if err := m.ShowErrorArgs("failed", true, action); err != nil {
		t.Fatal(err)
	}
	btn := box(t, doc, message.LevelError).ByClass(message.ActionClass)
	if got := btn.TextContent(); got != "Undo" {
		t.Errorf("action label = %q", got)
	}
	btn.Dispatch(btn.NewEvent(dom.EventClick))
	if !clicked {
		t.Error("action callback not invoked")
	}
}

func TestLocalizedShow(t *testing.T) {
	catalog := i18n.NewCatalog(map[string]string{"greeting": "Hallo %s"})

	doc := dom.NewDocument()
	doc.Root().AppendChild(Bar())
	m, err := New(doc, message.WithLocalizer(catalog))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.ShowInfoArgs("greeting", "Welt"); err != nil {
		t.Fatal(err)
	}
	got := box(t, doc, message.LevelInfo).ByClass(message.TextClass).TextContent()
	if got != "Hallo Welt" {
		t.Errorf("text = %q", got)
	}
}
