package protocol

import "errors"

// EventKind identifies a browser event the client forwards.
type EventKind uint8

const (
	EventClick EventKind = iota + 1
	EventTransitionEnd
	EventCustom
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventTransitionEnd:
		return "transitionend"
	case EventCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Valid reports whether the kind is known.
func (k EventKind) Valid() bool { return k >= EventClick && k <= EventCustom }

// ErrInvalidEventKind is returned when decoding an unknown event kind.
var ErrInvalidEventKind = errors.New("protocol: invalid event kind")

// Event is the payload of a FrameEvent frame: one browser event addressed
// by the node id of its target. Detail carries event-specific fields, for
// example the transitioned CSS property name or a custom event's name.
type Event struct {
	Seq    uint32
	Kind   EventKind
	Target string
	Detail map[string]string
}

// Encode appends the event to the encoder.
func (ev *Event) Encode(e *Encoder) {
	e.WriteUint32(ev.Seq)
	e.WriteByte(byte(ev.Kind))
	e.WriteString(ev.Target)
	e.WriteUvarint(uint64(len(ev.Detail)))
	for k, v := range ev.Detail {
		e.WriteString(k)
		e.WriteString(v)
	}
}

// EncodeBytes returns the encoded event payload.
func (ev *Event) EncodeBytes() []byte {
	e := NewEncoder()
	ev.Encode(e)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeEvent decodes a FrameEvent payload.
func DecodeEvent(payload []byte) (*Event, error) {
	d := NewDecoder(payload)
	seq, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	kind, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ev := &Event{Seq: seq, Kind: EventKind(kind)}
	if !ev.Kind.Valid() {
		return nil, ErrInvalidEventKind
	}
	if ev.Target, err = d.ReadString(); err != nil {
		return nil, err
	}
	count, err := d.ReadCount()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		ev.Detail = make(map[string]string, count)
	}
	for i := 0; i < count; i++ {
		k, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		ev.Detail[k] = v
	}
	return ev, nil
}
