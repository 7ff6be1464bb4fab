package protocol

import "errors"

// Op identifies a document mutation carried on the wire.
type Op uint8

const (
	OpSetText Op = iota + 1
	OpSetAttr
	OpRemoveAttr
	OpAddClass
	OpRemoveClass
	OpInsertNode
	OpRemoveNode
)

// String returns the string representation of the op.
func (op Op) String() string {
	switch op {
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpAddClass:
		return "AddClass"
	case OpRemoveClass:
		return "RemoveClass"
	case OpInsertNode:
		return "InsertNode"
	case OpRemoveNode:
		return "RemoveNode"
	default:
		return "Unknown"
	}
}

// Valid reports whether the op is known.
func (op Op) Valid() bool { return op >= OpSetText && op <= OpRemoveNode }

// ErrInvalidOp is returned when decoding an unknown mutation op.
var ErrInvalidOp = errors.New("protocol: invalid patch op")

// Patch is a single document mutation. Target addresses the node by its
// node id. InsertNode carries the serialized HTML of the inserted subtree
// together with its parent node id and child index; the other ops use at
// most Key and Value.
type Patch struct {
	Op     Op
	Target string
	Key    string
	Value  string
	Parent string
	Index  uint32
	HTML   string
}

// PatchBatch is the payload of a FramePatches frame: a monotonically
// increasing sequence number and the mutations of one flush, in order.
type PatchBatch struct {
	Seq     uint32
	Patches []Patch
}

// Encode appends the batch to the encoder.
func (b *PatchBatch) Encode(e *Encoder) {
	e.WriteUint32(b.Seq)
	e.WriteUvarint(uint64(len(b.Patches)))
	for i := range b.Patches {
		p := &b.Patches[i]
		e.WriteByte(byte(p.Op))
		e.WriteString(p.Target)
		switch p.Op {
		case OpSetText:
			e.WriteString(p.Value)
		case OpSetAttr:
			e.WriteString(p.Key)
			e.WriteString(p.Value)
		case OpRemoveAttr, OpAddClass, OpRemoveClass:
			e.WriteString(p.Key)
		case OpInsertNode:
			e.WriteString(p.Parent)
			e.WriteUvarint(uint64(p.Index))
			e.WriteString(p.HTML)
		case OpRemoveNode:
			// Target only.
		}
	}
}

// EncodeBytes returns the encoded batch payload.
func (b *PatchBatch) EncodeBytes() []byte {
	e := NewEncoder()
	b.Encode(e)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodePatchBatch decodes a FramePatches payload.
func DecodePatchBatch(payload []byte) (*PatchBatch, error) {
	d := NewDecoder(payload)
	seq, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCount()
	if err != nil {
		return nil, err
	}
	b := &PatchBatch{Seq: seq, Patches: make([]Patch, 0, count)}
	for i := 0; i < count; i++ {
		op, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		p := Patch{Op: Op(op)}
		if !p.Op.Valid() {
			return nil, ErrInvalidOp
		}
		if p.Target, err = d.ReadString(); err != nil {
			return nil, err
		}
		switch p.Op {
		case OpSetText:
			if p.Value, err = d.ReadString(); err != nil {
				return nil, err
			}
		case OpSetAttr:
			if p.Key, err = d.ReadString(); err != nil {
				return nil, err
			}
			if p.Value, err = d.ReadString(); err != nil {
				return nil, err
			}
		case OpRemoveAttr, OpAddClass, OpRemoveClass:
			if p.Key, err = d.ReadString(); err != nil {
				return nil, err
			}
		case OpInsertNode:
			if p.Parent, err = d.ReadString(); err != nil {
				return nil, err
			}
			idx, err := d.ReadUvarint()
			if err != nil {
				return nil, err
			}
			p.Index = uint32(idx)
			if p.HTML, err = d.ReadString(); err != nil {
				return nil, err
			}
		}
		b.Patches = append(b.Patches, p)
	}
	return b, nil
}
