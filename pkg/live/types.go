// Package live drives resizable surfaces from the browser over a websocket.
// Every connection owns one surface.Controller; the client streams pointer
// and wheel input and receives the resulting state.
package live

import (
	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

// MessageType represents the type of live protocol frame
type MessageType uint8

const (
	// Frame types
	FrameState   MessageType = 0x00
	FrameEvent   MessageType = 0x01
	FrameControl MessageType = 0x02
)

// EventType represents client-side input events
type EventType uint8

const (
	EventPointerDown EventType = 0x01
	EventPointerMove EventType = 0x02
	EventPointerUp   EventType = 0x03
	EventWheel       EventType = 0x04
	EventResetZoom   EventType = 0x05
)

var eventNames = map[EventType]string{
	EventPointerDown: "down",
	EventPointerMove: "move",
	EventPointerUp:   "up",
	EventWheel:       "wheel",
	EventResetZoom:   "reset",
}

// String returns the name used in JSON text frames
func (t EventType) String() string { return eventNames[t] }

func parseEventType(name string) (EventType, bool) {
	for t, n := range eventNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Event is one client input. For EventWheel, Y carries deltaY.
type Event struct {
	Type   EventType
	Handle surface.Handle
	X      float64
	Y      float64
}

// HandleState is one handle in a state frame
type HandleState struct {
	Handle string `json:"handle"`
	Style  string `json:"style"`
}

// StateMessage is the JSON text frame sent to the client after every change
type StateMessage struct {
	Type    string        `json:"type"`
	Session string        `json:"session"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	ViewBox string        `json:"viewBox,omitempty"`
	Zoom    float64       `json:"zoom"`
	Active  string        `json:"active,omitempty"`
	Handles []HandleState `json:"handles"`
}

// NewStateMessage converts a controller snapshot for the wire
func NewStateMessage(session string, st surface.State) StateMessage {
	msg := StateMessage{
		Type:    "state",
		Session: session,
		Width:   st.Dimension.Width,
		Height:  st.Dimension.Height,
		Zoom:    st.Zoom,
		Active:  st.Active.String(),
		Handles: []HandleState{},
	}
	if st.Zoomable {
		msg.ViewBox = st.Viewport.ViewBox()
	}
	for _, box := range canvas.HandleGeometry(st) {
		msg.Handles = append(msg.Handles, HandleState{Handle: box.Handle.String(), Style: box.CSS()})
	}
	return msg
}
