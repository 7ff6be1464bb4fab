package protocol

import "errors"

// Version is the current protocol version. A mismatch closes the
// connection during the hello exchange.
const Version uint8 = 1

// ErrVersionMismatch is returned when the peer speaks a different
// protocol version.
var ErrVersionMismatch = errors.New("protocol: version mismatch")

// Hello is the payload of a FrameHello frame. The client sends it first;
// the server replies with its own carrying the assigned session id.
type Hello struct {
	Version   uint8
	SessionID string
}

// Encode appends the hello to the encoder.
func (h *Hello) Encode(e *Encoder) {
	e.WriteByte(h.Version)
	e.WriteString(h.SessionID)
}

// EncodeBytes returns the encoded hello payload.
func (h *Hello) EncodeBytes() []byte {
	e := NewEncoder()
	h.Encode(e)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeHello decodes a FrameHello payload and verifies the version.
func DecodeHello(payload []byte) (*Hello, error) {
	d := NewDecoder(payload)
	v, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if v != Version {
		return nil, ErrVersionMismatch
	}
	h := &Hello{Version: v}
	if h.SessionID, err = d.ReadString(); err != nil {
		return nil, err
	}
	return h, nil
}
