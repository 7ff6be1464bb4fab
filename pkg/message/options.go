package message

// ActionButton describes the optional action attached to a message. The
// action is either a navigation target or a callback; when both are set
// the callback wins and the link target is cleared on show.
type ActionButton struct {
	// Text is the button label.
	Text string
	// URL is the link target for navigation actions.
	URL string
	// Func is the callback for programmatic actions. It is stored as the
	// channel's action hook while the message is shown.
	Func HookFunc
}

// ShowOptions configures a single show call.
type ShowOptions struct {
	// Text is the message text, or a localization key resolved against
	// the registry's Localizer. Empty leaves the currently displayed
	// text untouched.
	Text string
	// Dismissable toggles the dismiss icon.
	Dismissable bool
	// Action configures the action button. Nil hides it.
	Action *ActionButton
	// Args are interpolation arguments applied to the resolved text.
	Args []any
}

// ParseArgs builds ShowOptions from a positional argument list, for call
// sites that pass everything through a single variadic parameter. The
// leading string is the text, an optional bool toggles dismissability, an
// optional ActionButton configures the action, and everything after the
// recognized prefix is kept as interpolation arguments.
//
// A bool in the first position is still the dismissable flag, so a show
// call can toggle the icon without touching the displayed text.
func ParseArgs(args []any) ShowOptions {
	var o ShowOptions
	i := 0
	if i < len(args) {
		if s, ok := args[i].(string); ok {
			o.Text = s
			i++
		}
	}
	if i < len(args) {
		if b, ok := args[i].(bool); ok {
			o.Dismissable = b
			i++
		}
	}
	if i < len(args) {
		switch v := args[i].(type) {
		case *ActionButton:
			o.Action = v
			i++
		case ActionButton:
			o.Action = &v
			i++
		}
	}
	o.Args = args[i:]
	return o
}
