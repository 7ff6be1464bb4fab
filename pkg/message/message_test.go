package message

import (
	"errors"
	"testing"

	interrors "github.com/flashbar-dev/flashbar/internal/errors"
	"github.com/flashbar-dev/flashbar/pkg/dom"
	"github.com/flashbar-dev/flashbar/pkg/i18n"
)

func newBox(id string) *dom.Element {
	return dom.Div(
		dom.ID(id),
		dom.Class(BoxClass, InvisibleClass),
		dom.Span(dom.Class(TextClass)),
		dom.Span(dom.Class(DismissClass, InvisibleClass)),
		dom.A(dom.Class(ActionClass, InvisibleClass)),
	)
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *dom.Element) {
	t.Helper()
	doc := dom.NewDocument()
	box := newBox("msg-error")
	doc.Root().AppendChild(box)
	r := NewRegistry(doc, opts...)
	if err := r.Register(Builtin(LevelError), box, "flash-error"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return r, box
}

func TestRegisterValidation(t *testing.T) {
	doc := dom.NewDocument()
	r := NewRegistry(doc)

	attached := func(el *dom.Element) *dom.Element {
		doc.Root().AppendChild(el)
		return el
	}

	tests := []struct {
		name     string
		typ      Type
		el       *dom.Element
		wantCode string
	}{
		{
			name:     "zero type",
			el:       attached(newBox("a")),
			wantCode: "F020",
		},
		{
			name:     "global type",
			typ:      GlobalType,
			el:       attached(newBox("b")),
			wantCode: "F020",
		},
		{
			name:     "nil element",
			typ:      Builtin(LevelInfo),
			wantCode: "F020",
		},
		{
			name:     "detached element",
			typ:      Builtin(LevelInfo),
			el:       newBox("c"),
			wantCode: "F005",
		},
		{
			name:     "missing marker class",
			typ:      Builtin(LevelInfo),
			el:       attached(dom.Div(dom.ID("d"), dom.Span(dom.Class(TextClass)))),
			wantCode: "F002",
		},
		{
			name:     "missing text slot",
			typ:      Builtin(LevelInfo),
			el:       attached(dom.Div(dom.ID("e"), dom.Class(BoxClass))),
			wantCode: "F003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.typ, tt.el, "")
			if !errors.Is(err, interrors.New(tt.wantCode)) {
				t.Errorf("Register = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	r, _ := newTestRegistry(t)

	box2 := newBox("msg-error-2")
	r.doc.Root().AppendChild(box2)
	err := r.Register(Builtin(LevelError), box2, "")
	if !errors.Is(err, interrors.New("F021")) {
		t.Errorf("second Register = %v, want F021", err)
	}
}

func TestRegisterEnsuresStyleClass(t *testing.T) {
	_, box := newTestRegistry(t)
	if !box.HasClass("flash-error") {
		t.Error("style class should be added at registration")
	}
}

func TestShowUnhidesAndSetsText(t *testing.T) {
	r, box := newTestRegistry(t)

	if err := r.Show(Builtin(LevelError), ShowOptions{Text: "it broke"}); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if box.HasClass(InvisibleClass) {
		t.Error("shown message should not be invisible")
	}
	if got := box.ByClass(TextClass).TextContent(); got != "it broke" {
		t.Errorf("text = %q", got)
	}
}

func TestShowEmptyTextLeavesExisting(t *testing.T) {
	r, box := newTestRegistry(t)

	r.Show(Builtin(LevelError), ShowOptions{Text: "first"})
	r.Show(Builtin(LevelError), ShowOptions{})
	if got := box.ByClass(TextClass).TextContent(); got != "first" {
		t.Errorf("text = %q, want untouched %q", got, "first")
	}
}

func TestShowUnknownType(t *testing.T) {
	r, _ := newTestRegistry(t)
	err := r.Show(Builtin(LevelSuccess), ShowOptions{Text: "x"})
	if !errors.Is(err, interrors.New("F001")) {
		t.Errorf("Show unknown = %v, want F001", err)
	}
}

func TestShowDismissableTogglesIcon(t *testing.T) {
	r, box := newTestRegistry(t)
	icon := box.ByClass(DismissClass)

	r.Show(Builtin(LevelError), ShowOptions{Text: "x", Dismissable: true})
	if icon.HasClass(InvisibleClass) {
		t.Error("dismiss icon should be visible")
	}

	r.Show(Builtin(LevelError), ShowOptions{Text: "x"})
	if !icon.HasClass(InvisibleClass) {
		t.Error("dismiss icon should be hidden again")
	}
}

func TestTextResolution(t *testing.T) {
	catalog := i18n.NewCatalog(map[string]string{
		"upload_failed": "Upload of %s failed",
		"empty_key":     "",
	})

	tests := []struct {
		name string
		text string
		args []any
		want string
	}{
		{
			name: "localized key",
			text: "upload_failed",
			args: []any{"report.pdf"},
			want: "Upload of report.pdf failed",
		},
		{
			name: "raw string fallback",
			text: "not a key",
			want: "not a key",
		},
		{
			name: "raw string with args interpolates",
			text: "%d rows",
			args: []any{7},
			want: "7 rows",
		},
		{
			name: "empty localization falls back to failure text",
			text: "empty_key",
			want: FailureText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, box := newTestRegistry(t, WithLocalizer(catalog))
			r.Show(Builtin(LevelError), ShowOptions{Text: tt.text, Args: tt.args})
			if got := box.ByClass(TextClass).TextContent(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHide(t *testing.T) {
	r, box := newTestRegistry(t)

	r.Show(Builtin(LevelError), ShowOptions{Text: "x", Dismissable: true})
	if err := r.Hide(Builtin(LevelError)); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if !box.HasClass(InvisibleClass) {
		t.Error("hidden message should be invisible")
	}
	if !box.ByClass(DismissClass).HasClass(InvisibleClass) {
		t.Error("dismiss icon should be hidden with the message")
	}
}

func TestHideAllOnlyBuiltins(t *testing.T) {
	r, box := newTestRegistry(t)

	custom := newBox("custom-note")
	r.doc.Root().AppendChild(custom)
	if err := r.Register(Custom("custom-note"), custom, ""); err != nil {
		t.Fatal(err)
	}

	r.Show(Builtin(LevelError), ShowOptions{Text: "a"})
	r.ShowElement(custom, ShowOptions{Text: "b"})

	r.HideAll()
	if !box.HasClass(InvisibleClass) {
		t.Error("built-in message should be hidden")
	}
	if custom.HasClass(InvisibleClass) {
		t.Error("custom message should stay visible")
	}
}

func TestShowElementLazyRegistration(t *testing.T) {
	r, _ := newTestRegistry(t)

	ad := newBox("ad-hoc")
	r.doc.Root().AppendChild(ad)

	if err := r.ShowElement(ad, ShowOptions{Text: "hi"}); err != nil {
		t.Fatalf("ShowElement: %v", err)
	}
	if !r.Registered(Custom("ad-hoc")) {
		t.Error("element should be registered under its id")
	}
	if ad.HasClass(InvisibleClass) {
		t.Error("element should be shown")
	}

	// Second show reuses the registration.
	if err := r.ShowElement(ad, ShowOptions{Text: "again"}); err != nil {
		t.Fatalf("second ShowElement: %v", err)
	}
}

func TestShowElementWithoutID(t *testing.T) {
	r, _ := newTestRegistry(t)

	anon := dom.Div(dom.Class(BoxClass), dom.Span(dom.Class(TextClass)))
	r.doc.Root().AppendChild(anon)

	err := r.ShowElement(anon, ShowOptions{Text: "x"})
	if !errors.Is(err, interrors.New("F004")) {
		t.Errorf("ShowElement = %v, want F004", err)
	}
}

func TestHooksGlobalThenSpecific(t *testing.T) {
	r, _ := newTestRegistry(t)

	var order []string
	r.SetHook(GlobalType, HookShow, func(HookEvent) { order = append(order, "global") })
	r.SetHook(Builtin(LevelError), HookShow, func(ev HookEvent) {
		order = append(order, "specific:"+ev.Type.String())
	})

	r.Show(Builtin(LevelError), ShowOptions{Text: "x"})

	if len(order) != 2 || order[0] != "global" || order[1] != "specific:error" {
		t.Errorf("hook order = %v", order)
	}
}

func TestHideHookFires(t *testing.T) {
	r, _ := newTestRegistry(t)

	var hidden int
	r.SetHook(Builtin(LevelError), HookHide, func(HookEvent) { hidden++ })
	r.Show(Builtin(LevelError), ShowOptions{Text: "x"})
	r.Hide(Builtin(LevelError))

	if hidden != 1 {
		t.Errorf("hide hook fired %d times, want 1", hidden)
	}
}

func TestSetHookValidation(t *testing.T) {
	r, _ := newTestRegistry(t)

	if err := r.SetHook(Builtin(LevelError), HookKind(99), func(HookEvent) {}); !errors.Is(err, interrors.New("F022")) {
		t.Errorf("invalid kind = %v, want F022", err)
	}
	if err := r.SetHook(Builtin(LevelSuccess), HookShow, func(HookEvent) {}); !errors.Is(err, interrors.New("F001")) {
		t.Errorf("unknown type = %v, want F001", err)
	}
	// nil clears.
	r.SetHook(Builtin(LevelError), HookShow, func(HookEvent) { t.Error("cleared hook fired") })
	if err := r.SetHook(Builtin(LevelError), HookShow, nil); err != nil {
		t.Fatal(err)
	}
	r.Show(Builtin(LevelError), ShowOptions{Text: "x"})
}

func TestDismissLifecycle(t *testing.T) {
	r, box := newTestRegistry(t)
	icon := box.ByClass(DismissClass)

	var order []string
	r.SetHook(GlobalType, HookDismissStart, func(HookEvent) { order = append(order, "start") })
	r.SetHook(GlobalType, HookHide, func(HookEvent) { order = append(order, "hide") })
	r.SetHook(GlobalType, HookDismissEnd, func(HookEvent) { order = append(order, "end") })

	r.Show(Builtin(LevelError), ShowOptions{Text: "x", Dismissable: true})

	icon.Dispatch(icon.NewEvent(dom.EventClick))
	if !box.HasClass(DismissingClass) {
		t.Fatal("click should start the fade")
	}
	if box.HasClass(InvisibleClass) {
		t.Error("message stays visible until the transition ends")
	}

	box.Dispatch(box.NewEvent(dom.EventTransitionEnd))
	if !box.HasClass(InvisibleClass) {
		t.Error("message should be hidden after the transition")
	}
	if box.HasClass(DismissingClass) {
		t.Error("dismissing class should be cleared")
	}

	want := []string{"start", "hide", "end"}
	if len(order) != len(want) {
		t.Fatalf("hook order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("hook[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestDismissSecondTransitionEndIsNoop(t *testing.T) {
	r, box := newTestRegistry(t)
	icon := box.ByClass(DismissClass)

	var ends int
	r.SetHook(Builtin(LevelError), HookDismissEnd, func(HookEvent) { ends++ })

	r.Show(Builtin(LevelError), ShowOptions{Text: "x", Dismissable: true})
	icon.Dispatch(icon.NewEvent(dom.EventClick))
	box.Dispatch(box.NewEvent(dom.EventTransitionEnd))
	box.Dispatch(box.NewEvent(dom.EventTransitionEnd))

	if ends != 1 {
		t.Errorf("dismiss end fired %d times, want 1", ends)
	}
}

func TestDismissSecondClickWhileFading(t *testing.T) {
	r, box := newTestRegistry(t)
	icon := box.ByClass(DismissClass)

	var ends int
	r.SetHook(Builtin(LevelError), HookDismissEnd, func(HookEvent) { ends++ })

	r.Show(Builtin(LevelError), ShowOptions{Text: "x", Dismissable: true})
	icon.Dispatch(icon.NewEvent(dom.EventClick))
	icon.Dispatch(icon.NewEvent(dom.EventClick))
	box.Dispatch(box.NewEvent(dom.EventTransitionEnd))
	box.Dispatch(box.NewEvent(dom.EventTransitionEnd))

	if ends != 1 {
		t.Errorf("dismiss end fired %d times, want 1", ends)
	}
}

func TestReshowClearsDismissing(t *testing.T) {
	r, box := newTestRegistry(t)
	icon := box.ByClass(DismissClass)

	r.Show(Builtin(LevelError), ShowOptions{Text: "x", Dismissable: true})
	icon.Dispatch(icon.NewEvent(dom.EventClick))

	// Re-show mid-fade keeps the message up.
	r.Show(Builtin(LevelError), ShowOptions{Text: "y", Dismissable: true})
	if box.HasClass(DismissingClass) || box.HasClass(InvisibleClass) {
		t.Error("re-shown message should be fully visible")
	}
}

func TestActionButtonCallback(t *testing.T) {
	r, box := newTestRegistry(t)
	btn := box.ByClass(ActionClass)

	var clicks int
	r.Show(Builtin(LevelError), ShowOptions{
		Text: "x",
		Action: &ActionButton{
			Text: "Retry",
			Func: func(HookEvent) { clicks++ },
		},
	})

	if btn.HasClass(InvisibleClass) {
		t.Error("action button should be visible")
	}
	if got := btn.TextContent(); got != "Retry" {
		t.Errorf("button text = %q", got)
	}
	if _, ok := btn.Attr("href"); ok {
		t.Error("callback action should clear the link target")
	}

	btn.Dispatch(btn.NewEvent(dom.EventClick))
	if clicks != 1 {
		t.Errorf("callback fired %d times, want 1", clicks)
	}
}

func TestActionButtonURL(t *testing.T) {
	r, box := newTestRegistry(t)
	btn := box.ByClass(ActionClass)

	// Callback show first, then a URL show must clear the stored callback.
	var clicks int
	r.Show(Builtin(LevelError), ShowOptions{
		Text:   "x",
		Action: &ActionButton{Text: "Retry", Func: func(HookEvent) { clicks++ }},
	})
	r.Show(Builtin(LevelError), ShowOptions{
		Text:   "x",
		Action: &ActionButton{Text: "Details", URL: "/details"},
	})

	if href, ok := btn.Attr("href"); !ok || href != "/details" {
		t.Errorf("href = %q, %v", href, ok)
	}
	btn.Dispatch(btn.NewEvent(dom.EventClick))
	if clicks != 0 {
		t.Error("stored callback should be cleared by a URL action")
	}
}

func TestActionButtonHiddenWithoutAction(t *testing.T) {
	r, box := newTestRegistry(t)
	btn := box.ByClass(ActionClass)

	r.Show(Builtin(LevelError), ShowOptions{
		Text:   "x",
		Action: &ActionButton{Text: "Go", URL: "/x"},
	})
	r.Show(Builtin(LevelError), ShowOptions{Text: "y"})

	if !btn.HasClass(InvisibleClass) {
		t.Error("action button should be hidden when no action is given")
	}
}

func TestClone(t *testing.T) {
	r, box := newTestRegistry(t)

	r.Show(Builtin(LevelError), ShowOptions{Text: "visible"})

	cp, err := r.Clone(Builtin(LevelError), "msg-copy")
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if !cp.HasClass(InvisibleClass) {
		t.Error("clone should start hidden regardless of the source state")
	}
	if cp.ID() != "msg-copy" {
		t.Errorf("clone id = %q", cp.ID())
	}

	// Positioned immediately after the source.
	children := r.doc.Root().Children()
	var srcIdx, cpIdx int = -1, -1
	for i, c := range children {
		switch c {
		case box:
			srcIdx = i
		case cp:
			cpIdx = i
		}
	}
	if cpIdx != srcIdx+1 {
		t.Errorf("clone at index %d, source at %d", cpIdx, srcIdx)
	}

	// The clone is inert until shown by element.
	if r.Registered(Custom("msg-copy")) {
		t.Error("clone should not be registered yet")
	}
	if err := r.ShowElement(cp, ShowOptions{Text: "now live"}); err != nil {
		t.Fatalf("ShowElement(clone): %v", err)
	}
	if box.ByClass(TextClass).TextContent() != "visible" {
		t.Error("showing the clone must not touch the source")
	}
}

func TestCloneIDCollision(t *testing.T) {
	r, _ := newTestRegistry(t)

	if _, err := r.Clone(Builtin(LevelError), "msg-error"); !errors.Is(err, interrors.New("F023")) {
		t.Errorf("Clone with taken id = %v, want F023", err)
	}
	if _, err := r.Clone(Builtin(LevelError), ""); !errors.Is(err, interrors.New("F004")) {
		t.Errorf("Clone with empty id = %v, want F004", err)
	}
}

func TestObserver(t *testing.T) {
	obs := &countingObserver{}
	r, box := newTestRegistry(t, WithObserver(obs))
	icon := box.ByClass(DismissClass)

	r.Show(Builtin(LevelError), ShowOptions{Text: "x", Dismissable: true})
	icon.Dispatch(icon.NewEvent(dom.EventClick))
	box.Dispatch(box.NewEvent(dom.EventTransitionEnd))

	if obs.shown != 1 || obs.hidden != 1 || obs.dismissed != 1 {
		t.Errorf("observer counts = %d/%d/%d", obs.shown, obs.hidden, obs.dismissed)
	}
}

type countingObserver struct {
	shown, hidden, dismissed int
}

func (o *countingObserver) MessageShown(Type)     { o.shown++ }
func (o *countingObserver) MessageHidden(Type)    { o.hidden++ }
func (o *countingObserver) MessageDismissed(Type) { o.dismissed++ }

func TestParseArgs(t *testing.T) {
	action := &ActionButton{Text: "Go", URL: "/x"}

	tests := []struct {
		name string
		args []any
		want ShowOptions
	}{
		{
			name: "empty",
			args: nil,
			want: ShowOptions{Args: []any{}},
		},
		{
			name: "text only",
			args: []any{"hello"},
			want: ShowOptions{Text: "hello", Args: []any{}},
		},
		{
			name: "text and dismissable",
			args: []any{"hello", true},
			want: ShowOptions{Text: "hello", Dismissable: true, Args: []any{}},
		},
		{
			name: "leading bool is dismissable, not text",
			args: []any{true},
			want: ShowOptions{Dismissable: true, Args: []any{}},
		},
		{
			name: "full prefix with format args",
			args: []any{"%d of %d", false, action, 3, 10},
			want: ShowOptions{Text: "%d of %d", Action: action, Args: []any{3, 10}},
		},
		{
			name: "format args without flags",
			args: []any{"saved %s", "report.pdf"},
			want: ShowOptions{Text: "saved %s", Args: []any{"report.pdf"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseArgs(tt.args)
			if got.Text != tt.want.Text {
				t.Errorf("Text = %q, want %q", got.Text, tt.want.Text)
			}
			if got.Dismissable != tt.want.Dismissable {
				t.Errorf("Dismissable = %v, want %v", got.Dismissable, tt.want.Dismissable)
			}
			if got.Action != tt.want.Action {
				t.Errorf("Action = %v, want %v", got.Action, tt.want.Action)
			}
			if len(got.Args) != len(tt.want.Args) {
				t.Errorf("Args = %v, want %v", got.Args, tt.want.Args)
			}
		})
	}
}

func TestTypeStrings(t *testing.T) {
	if got := Builtin(LevelWarn).String(); got != "warn" {
		t.Errorf("builtin String = %q", got)
	}
	if got := Custom("banner").String(); got != "banner" {
		t.Errorf("custom String = %q", got)
	}
	if got := GlobalType.String(); got != "global" {
		t.Errorf("global String = %q", got)
	}
	if !GlobalType.IsGlobal() || GlobalType.IsBuiltin() {
		t.Error("GlobalType classification")
	}
	if (Type{}).String() != "unset" || !(Type{}).IsZero() {
		t.Error("zero Type classification")
	}
}
