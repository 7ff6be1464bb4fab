package dom

import (
	"slices"
	"strings"
)

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <button>, etc.
	KindText                    // Plain text node
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Element is a live DOM node. Elements start detached; once a subtree is
// appended to a Document the document assigns node ids and mirrors further
// mutations through its PatchSink.
type Element struct {
	kind      NodeKind
	tag       string
	text      string // KindText only
	attrs     map[string]string
	classes   []string
	parent    *Element
	children  []*Element
	listeners map[EventType][]*listener
	doc       *Document
	nid       string
}

// Kind returns the node kind.
func (el *Element) Kind() NodeKind { return el.kind }

// Tag returns the element tag name (empty for text nodes).
func (el *Element) Tag() string { return el.tag }

// ID returns the value of the id attribute.
func (el *Element) ID() string { return el.attrs["id"] }

// NodeID returns the document-assigned node id, or "" while detached.
func (el *Element) NodeID() string { return el.nid }

// Parent returns the parent element, or nil for roots and detached nodes.
func (el *Element) Parent() *Element { return el.parent }

// Children returns the child nodes. The returned slice must not be mutated.
func (el *Element) Children() []*Element { return el.children }

// Document returns the owning document, or nil while detached.
func (el *Element) Document() *Document { return el.doc }

// Attached reports whether the element is part of a live document.
func (el *Element) Attached() bool { return el.doc != nil }

// =============================================================================
// Attributes
// =============================================================================

// Attr returns the attribute value and whether it is set.
func (el *Element) Attr(key string) (string, bool) {
	v, ok := el.attrs[key]
	return v, ok
}

// SetAttr sets an attribute. Setting "id" re-indexes the element in its
// document.
func (el *Element) SetAttr(key, value string) {
	if el.kind != KindElement {
		return
	}
	if key == "id" && el.doc != nil {
		el.doc.reindexID(el, el.attrs["id"], value)
	}
	if el.attrs == nil {
		el.attrs = make(map[string]string)
	}
	el.attrs[key] = value
	el.record(Patch{Op: PatchSetAttr, Key: key, Value: value})
}

// RemoveAttr removes an attribute. Removing an unset attribute is a no-op.
func (el *Element) RemoveAttr(key string) {
	if _, ok := el.attrs[key]; !ok {
		return
	}
	if key == "id" && el.doc != nil {
		el.doc.reindexID(el, el.attrs["id"], "")
	}
	delete(el.attrs, key)
	el.record(Patch{Op: PatchRemoveAttr, Key: key})
}

// =============================================================================
// Class list
// =============================================================================

// Attrs returns a copy of the attribute map.
func (el *Element) Attrs() map[string]string {
	out := make(map[string]string, len(el.attrs))
	for k, v := range el.attrs {
		out[k] = v
	}
	return out
}

// HasClass reports whether the class is present.
func (el *Element) HasClass(class string) bool {
	return slices.Contains(el.classes, class)
}

// AddClass adds a class. Adding a present class is a no-op.
func (el *Element) AddClass(class string) {
	if class == "" || el.HasClass(class) {
		return
	}
	el.classes = append(el.classes, class)
	el.record(Patch{Op: PatchAddClass, Value: class})
}

// RemoveClass removes a class. Removing an absent class is a no-op.
func (el *Element) RemoveClass(class string) {
	i := slices.Index(el.classes, class)
	if i < 0 {
		return
	}
	el.classes = slices.Delete(el.classes, i, i+1)
	el.record(Patch{Op: PatchRemoveClass, Value: class})
}

// Classes returns the class list. The returned slice must not be mutated.
func (el *Element) Classes() []string { return el.classes }

// ClassAttr returns the class list joined for the class attribute.
func (el *Element) ClassAttr() string { return strings.Join(el.classes, " ") }

// =============================================================================
// Text content
// =============================================================================

// Text returns the text of a text node.
func (el *Element) Text() string { return el.text }

// TextContent returns the concatenated text of all descendant text nodes.
func (el *Element) TextContent() string {
	if el.kind == KindText {
		return el.text
	}
	var b strings.Builder
	for _, c := range el.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// SetText replaces the element's children with a single text node.
func (el *Element) SetText(text string) {
	if el.kind != KindElement {
		return
	}
	for _, c := range el.children {
		c.detach()
	}
	t := &Element{kind: KindText, text: text}
	el.children = []*Element{t}
	t.parent = el
	if el.doc != nil {
		el.doc.attach(t)
	}
	el.record(Patch{Op: PatchSetText, Value: text})
}

// =============================================================================
// Tree mutation
// =============================================================================

// AppendChild appends child as the last child of el, attaching it to el's
// document if el is attached.
func (el *Element) AppendChild(child *Element) {
	el.insertChild(child, len(el.children))
}

// InsertAfter inserts node as the next sibling of el. It panics if el has
// no parent, since a root has no siblings.
func (el *Element) InsertAfter(node *Element) {
	if el.parent == nil {
		panic("dom: InsertAfter on a node without a parent")
	}
	idx := slices.Index(el.parent.children, el)
	el.parent.insertChild(node, idx+1)
}

// Remove detaches el from its parent and document.
func (el *Element) Remove() {
	if el.parent != nil {
		i := slices.Index(el.parent.children, el)
		if i >= 0 {
			el.parent.children = slices.Delete(el.parent.children, i, i+1)
		}
	}
	el.record(Patch{Op: PatchRemoveNode})
	el.parent = nil
	el.detach()
}

func (el *Element) insertChild(child *Element, index int) {
	if child.parent != nil {
		child.Remove()
	}
	el.children = slices.Insert(el.children, index, child)
	child.parent = el
	if el.doc != nil {
		el.doc.attach(child)
		el.doc.record(Patch{
			Op:        PatchInsertNode,
			NID:       child.nid,
			ParentNID: el.nid,
			Index:     index,
			Node:      child,
		})
	}
}

// detach recursively clears document membership without touching the
// parent's child list. Callers handle the parent side.
func (el *Element) detach() {
	if el.doc != nil {
		el.doc.forget(el)
		el.doc = nil
		el.nid = ""
	}
	for _, c := range el.children {
		c.detach()
	}
}

// =============================================================================
// Clone
// =============================================================================

// Clone returns a detached deep copy of the element. Event listeners are
// not copied, matching browser cloneNode semantics.
func (el *Element) Clone() *Element {
	cp := &Element{
		kind: el.kind,
		tag:  el.tag,
		text: el.text,
	}
	if el.attrs != nil {
		cp.attrs = make(map[string]string, len(el.attrs))
		for k, v := range el.attrs {
			cp.attrs[k] = v
		}
	}
	cp.classes = slices.Clone(el.classes)
	for _, c := range el.children {
		cc := c.Clone()
		cc.parent = cp
		cp.children = append(cp.children, cc)
	}
	return cp
}

// =============================================================================
// Queries
// =============================================================================

// ByClass returns the first descendant (depth-first) carrying the class,
// or nil.
func (el *Element) ByClass(class string) *Element {
	for _, c := range el.children {
		if c.kind == KindElement {
			if c.HasClass(class) {
				return c
			}
			if found := c.ByClass(class); found != nil {
				return found
			}
		}
	}
	return nil
}

// AllByClass returns all descendants (depth-first) carrying the class.
func (el *Element) AllByClass(class string) []*Element {
	var out []*Element
	for _, c := range el.children {
		if c.kind == KindElement {
			if c.HasClass(class) {
				out = append(out, c)
			}
			out = append(out, c.AllByClass(class)...)
		}
	}
	return out
}

// Closest walks from el up through its ancestors (including el itself) and
// returns the first element carrying the class, or nil.
func (el *Element) Closest(class string) *Element {
	for n := el; n != nil; n = n.parent {
		if n.kind == KindElement && n.HasClass(class) {
			return n
		}
	}
	return nil
}

// record forwards a mutation of an attached element to the document.
func (el *Element) record(p Patch) {
	if el.doc == nil {
		return
	}
	p.NID = el.nid
	el.doc.record(p)
}
