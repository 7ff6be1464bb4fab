package dom

import "fmt"

// createElement creates a detached element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *Element, []*Element, string,
// EventHandler.
func createElement(tag string, args []any) *Element {
	el := &Element{
		kind:  KindElement,
		tag:   tag,
		attrs: make(map[string]string),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			v.apply(el)

		case []Attr:
			for _, a := range v {
				a.apply(el)
			}

		case *Element:
			if v != nil {
				v.parent = el
				el.children = append(el.children, v)
			}

		case []*Element:
			for _, child := range v {
				if child != nil {
					child.parent = el
					el.children = append(el.children, child)
				}
			}

		case string:
			// Shorthand for a text node child
			el.children = append(el.children, &Element{kind: KindText, text: v, parent: el})

		case EventHandler:
			el.addListener(v.Event, v.Handler, v.Once)
		}
	}

	return el
}

// Attr is a builder attribute. Class entries go to the class list; every
// other key goes to the attribute map.
type Attr struct {
	Key     string
	Value   string
	Classes []string
}

func (a Attr) apply(el *Element) {
	if len(a.Classes) > 0 {
		for _, c := range a.Classes {
			if c != "" && !el.HasClass(c) {
				el.classes = append(el.classes, c)
			}
		}
		return
	}
	if a.Key != "" {
		el.attrs[a.Key] = a.Value
	}
}

// EventHandler attaches a listener during construction.
type EventHandler struct {
	Event   EventType
	Once    bool
	Handler Listener
}

// Text creates a detached text node.
func Text(content string) *Element {
	return &Element{kind: KindText, text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// Container and content elements used by the message layer.

func Div(args ...any) *Element    { return createElement("div", args) }
func Span(args ...any) *Element   { return createElement("span", args) }
func P(args ...any) *Element      { return createElement("p", args) }
func A(args ...any) *Element      { return createElement("a", args) }
func Button(args ...any) *Element { return createElement("button", args) }
func Section(args ...any) *Element {
	return createElement("section", args)
}

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *Element {
	return createElement(tag, args)
}
