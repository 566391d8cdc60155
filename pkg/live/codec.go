package live

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jzhdev/vcanvas/pkg/surface"
)

// eventFrameLen is frame type, event type, handle, then two float64 values
const eventFrameLen = 3 + 8 + 8

var (
	ErrShortFrame = errors.New("live: frame too short")
	ErrNotEvent   = errors.New("live: not an event frame")
	ErrNonFinite  = errors.New("live: non-finite coordinate")
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Encoder handles encoding of live protocol messages
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a new encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteUvarint writes an unsigned varint
func (e *Encoder) WriteUvarint(v uint64) error {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, v)
	_, err := e.w.Write(buf[:n])
	return err
}

// WriteString writes a length-prefixed string
func (e *Encoder) WriteString(s string) error {
	if err := e.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

// WriteBytes writes raw bytes
func (e *Encoder) WriteBytes(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// Decoder handles decoding of live protocol messages
type Decoder struct {
	r io.Reader
}

// NewDecoder creates a new decoder
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadByte implements io.ByteReader
func (d *Decoder) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(d.r, b[:])
	return b[0], err
}

// ReadUvarint reads an unsigned varint
func (d *Decoder) ReadUvarint() (uint64, error) {
	return binary.ReadUvarint(d)
}

// ReadString reads a length-prefixed string
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if length > 1<<16 {
		return "", fmt.Errorf("live: string length %d too large", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// EncodeControl encodes a control frame: a name followed by string arguments
func EncodeControl(w io.Writer, name string, args ...string) error {
	enc := NewEncoder(w)
	if err := enc.WriteBytes([]byte{byte(FrameControl)}); err != nil {
		return err
	}
	if err := enc.WriteString(name); err != nil {
		return err
	}
	for _, a := range args {
		if err := enc.WriteString(a); err != nil {
			return err
		}
	}
	return nil
}

// EncodeEvent encodes an event to binary format. Coordinates are
// little-endian float64 so a browser can write them with DataView.
func EncodeEvent(evt Event) []byte {
	buf := make([]byte, eventFrameLen)
	buf[0] = byte(FrameEvent)
	buf[1] = byte(evt.Type)
	buf[2] = byte(evt.Handle)
	binary.LittleEndian.PutUint64(buf[3:], math.Float64bits(evt.X))
	binary.LittleEndian.PutUint64(buf[11:], math.Float64bits(evt.Y))
	return buf
}

// DecodeEvent decodes an event from binary format
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) > 0 && data[0] != byte(FrameEvent) {
		return nil, ErrNotEvent
	}
	if len(data) < eventFrameLen {
		return nil, ErrShortFrame
	}
	evt := &Event{
		Type:   EventType(data[1]),
		Handle: surface.Handle(data[2]),
		X:      math.Float64frombits(binary.LittleEndian.Uint64(data[3:])),
		Y:      math.Float64frombits(binary.LittleEndian.Uint64(data[11:])),
	}
	if _, ok := eventNames[evt.Type]; !ok {
		return nil, fmt.Errorf("live: unknown event type 0x%02x", data[1])
	}
	if !finite(evt.X) || !finite(evt.Y) {
		return nil, ErrNonFinite
	}
	return evt, nil
}

// textEvent is the JSON form of Event
type textEvent struct {
	Type   string  `json:"type"`
	Handle string  `json:"handle,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY"`
}

// DecodeTextEvent decodes a JSON event such as {"type":"down","handle":"br","x":1,"y":2}
func DecodeTextEvent(data []byte) (*Event, error) {
	var te textEvent
	if err := json.Unmarshal(data, &te); err != nil {
		return nil, fmt.Errorf("live: decode text event: %w", err)
	}
	t, ok := parseEventType(te.Type)
	if !ok {
		return nil, fmt.Errorf("live: unknown event %q", te.Type)
	}
	evt := &Event{Type: t, Handle: surface.ParseHandle(te.Handle), X: te.X, Y: te.Y}
	if t == EventWheel {
		evt.Y = te.DeltaY
	}
	if !finite(evt.X) || !finite(evt.Y) {
		return nil, ErrNonFinite
	}
	return evt, nil
}
