// Package dom implements the live element tree that backs flashbar's
// message presentation.
//
// Unlike a virtual DOM, elements here are mutable and long-lived: the Go
// process owns the tree, mutates it in place, and every mutation of an
// attached element is mirrored through the document's PatchSink so a thin
// browser client can replay it. The tree also works fully detached (no
// sink), which is how tests drive it.
//
// The package provides the operations the message layer needs from a
// document: lookup by id, descendant query by class name, class-list
// add/remove/contains, attribute get/set/remove, event listener
// attach/detach (including one-shot listeners), node clone, and sibling
// insert. Event dispatch bubbles from the target to the root.
package dom
