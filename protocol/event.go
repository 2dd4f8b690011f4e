package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Kind identifies an outbound protocol event.
type Kind uint8

const (
	KindCursorMove Kind = iota + 1
	KindMouseButton
	KindJoystickConnected
	KindJoystickButton
	KindJoystickAxis
	KindJoystickDpad
)

func (k Kind) String() string {
	switch k {
	case KindCursorMove:
		return "cursorMove"
	case KindMouseButton:
		return "mouseButton"
	case KindJoystickConnected:
		return "joystickConnected"
	case KindJoystickButton:
		return "joystickButton"
	case KindJoystickAxis:
		return "joystickAxis"
	case KindJoystickDpad:
		return "joystickDpad"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// EventSize is the size of one encoded event.
const EventSize = 9

// Event is a single outbound call to the engine.
//
// Wire format (fixed 9 bytes, little-endian):
//
//	Byte 0: Kind
//	cursorMove:   bytes 1-4 X (float32), 5-8 Y (float32)
//	mouseButton, joystickButton: byte 1 code, byte 2 pressed (0/1)
//	joystickAxis: byte 1 code, bytes 2-5 value (float32)
//	joystickDpad: byte 1 pad index, byte 2 mask
//	joystickConnected: no payload
//
// Unused bytes are zero.
type Event struct {
	Kind    Kind
	Code    int
	Pressed bool
	Value   float32
	X, Y    float32
	Pad     int
	Mask    uint8
}

func (e Event) String() string {
	switch e.Kind {
	case KindCursorMove:
		return fmt.Sprintf("cursorMove(%g, %g)", e.X, e.Y)
	case KindMouseButton:
		return fmt.Sprintf("mouseButton(%d, %t)", e.Code, e.Pressed)
	case KindJoystickConnected:
		return "joystickConnected()"
	case KindJoystickButton:
		return fmt.Sprintf("joystickButton(%d, %t)", e.Code, e.Pressed)
	case KindJoystickAxis:
		return fmt.Sprintf("joystickAxis(%d, %g)", e.Code, e.Value)
	case KindJoystickDpad:
		return fmt.Sprintf("joystickDpad(%d, 0b%04b)", e.Pad, e.Mask)
	default:
		return e.Kind.String()
	}
}

// MarshalBinary encodes the event into its fixed-size wire form.
func (e Event) MarshalBinary() ([]byte, error) {
	b := make([]byte, EventSize)
	b[0] = byte(e.Kind)
	switch e.Kind {
	case KindCursorMove:
		binary.LittleEndian.PutUint32(b[1:5], math.Float32bits(e.X))
		binary.LittleEndian.PutUint32(b[5:9], math.Float32bits(e.Y))
	case KindMouseButton, KindJoystickButton:
		b[1] = byte(e.Code)
		if e.Pressed {
			b[2] = 1
		}
	case KindJoystickAxis:
		b[1] = byte(e.Code)
		binary.LittleEndian.PutUint32(b[2:6], math.Float32bits(e.Value))
	case KindJoystickDpad:
		b[1] = byte(e.Pad)
		b[2] = e.Mask
	case KindJoystickConnected:
	default:
		return nil, fmt.Errorf("unknown event kind %d", uint8(e.Kind))
	}
	return b, nil
}

// UnmarshalBinary decodes a fixed-size wire event.
func (e *Event) UnmarshalBinary(data []byte) error {
	if len(data) < EventSize {
		return fmt.Errorf("event too short: %d bytes", len(data))
	}
	*e = Event{Kind: Kind(data[0])}
	switch e.Kind {
	case KindCursorMove:
		e.X = math.Float32frombits(binary.LittleEndian.Uint32(data[1:5]))
		e.Y = math.Float32frombits(binary.LittleEndian.Uint32(data[5:9]))
	case KindMouseButton, KindJoystickButton:
		e.Code = int(data[1])
		e.Pressed = data[2] != 0
	case KindJoystickAxis:
		e.Code = int(data[1])
		e.Value = math.Float32frombits(binary.LittleEndian.Uint32(data[2:6]))
	case KindJoystickDpad:
		e.Pad = int(data[1])
		e.Mask = data[2]
	case KindJoystickConnected:
	default:
		return fmt.Errorf("unknown event kind %d", data[0])
	}
	return nil
}
