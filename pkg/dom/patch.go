package dom

// PatchOp is the type of document mutation.
// The wire protocol defines its own superset of these operations; the
// server translates between the two at the session boundary.
type PatchOp uint8

const (
	PatchSetText     PatchOp = iota + 1 // Replace text content
	PatchSetAttr                        // Set attribute
	PatchRemoveAttr                     // Remove attribute
	PatchAddClass                       // Add CSS class
	PatchRemoveClass                    // Remove CSS class
	PatchInsertNode                     // Insert new subtree
	PatchRemoveNode                     // Remove subtree
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	default:
		return "Unknown"
	}
}

// Patch describes a single mutation of an attached element.
type Patch struct {
	Op        PatchOp
	NID       string   // Target node id
	Key       string   // Attribute key
	Value     string   // Text/attribute/class value
	ParentNID string   // Parent node id for InsertNode
	Index     int      // Insert position
	Node      *Element // Inserted subtree for InsertNode
}

// PatchSink receives every mutation of an attached document.
// Implementations must be safe to call from the goroutine that mutates the
// document; the document performs no locking of its own.
type PatchSink interface {
	Apply(p Patch)
}

// SinkFunc adapts a function to a PatchSink.
type SinkFunc func(p Patch)

// Apply implements PatchSink.
func (f SinkFunc) Apply(p Patch) { f(p) }
