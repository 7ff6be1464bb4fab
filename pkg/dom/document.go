package dom

import "strconv"

// Document owns a live element tree. It assigns node ids on attach, keeps
// the id index used by ElementByID, and mirrors mutations through the
// configured PatchSink.
//
// Documents are not safe for concurrent mutation; all mutation is expected
// to happen on a single event loop, matching the session model.
type Document struct {
	root   *Element
	byID   map[string]*Element
	byNID  map[string]*Element
	nidSeq uint64
	sink   PatchSink
}

// NewDocument creates a document with an empty body root.
func NewDocument() *Document {
	d := &Document{
		byID:  make(map[string]*Element),
		byNID: make(map[string]*Element),
	}
	d.root = &Element{kind: KindElement, tag: "body"}
	d.attach(d.root)
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// SetSink installs the patch sink that mirrors mutations. A nil sink
// disables mirroring (detached mode).
func (d *Document) SetSink(sink PatchSink) { d.sink = sink }

// ElementByID returns the element with the given id attribute, or nil.
func (d *Document) ElementByID(id string) *Element {
	return d.byID[id]
}

// ElementByNodeID returns the element with the given document-assigned node
// id, or nil. The server uses this to resolve client event targets.
func (d *Document) ElementByNodeID(nid string) *Element {
	return d.byNID[nid]
}

// HasID reports whether an element with the given id is attached.
func (d *Document) HasID(id string) bool {
	_, ok := d.byID[id]
	return ok
}

// attach assigns node ids and indexes a subtree.
func (d *Document) attach(el *Element) {
	el.doc = d
	if el.nid == "" {
		d.nidSeq++
		el.nid = "n" + strconv.FormatUint(d.nidSeq, 10)
	}
	d.byNID[el.nid] = el
	if id := el.attrs["id"]; id != "" {
		d.byID[id] = el
	}
	for _, c := range el.children {
		d.attach(c)
	}
}

// forget removes a single element from the indexes.
func (d *Document) forget(el *Element) {
	delete(d.byNID, el.nid)
	if id := el.attrs["id"]; id != "" && d.byID[id] == el {
		delete(d.byID, id)
	}
}

// reindexID moves an element between id index slots when its id attribute
// changes.
func (d *Document) reindexID(el *Element, oldID, newID string) {
	if oldID != "" && d.byID[oldID] == el {
		delete(d.byID, oldID)
	}
	if newID != "" {
		d.byID[newID] = el
	}
}

// record forwards a patch to the sink, if one is installed.
func (d *Document) record(p Patch) {
	if d.sink != nil {
		d.sink.Apply(p)
	}
}
