package dom

// attr creates an Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class adds one or more classes to the element's class list.
func Class(classes ...string) Attr { return Attr{Classes: classes} }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Data creates a data-* attribute.
// Example: Data("level", "error") → data-level="error"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr {
	if hidden {
		return attr("aria-hidden", "true")
	}
	return attr("aria-hidden", "false")
}

// Event attributes

// On attaches a listener during construction.
func On(t EventType, fn Listener) EventHandler {
	return EventHandler{Event: t, Handler: fn}
}

// OnClick attaches a click listener during construction.
func OnClick(fn Listener) EventHandler { return On(EventClick, fn) }

// OnTransitionEnd attaches a transitionend listener during construction.
func OnTransitionEnd(fn Listener) EventHandler { return On(EventTransitionEnd, fn) }
