package testing

import (
	"errors"
	"testing"

	"github.com/Alia5/padmap/internal/kvstore"
	"github.com/Alia5/padmap/protocol"
)

// ErrStorageFailed is returned by FailingKV writes.
var ErrStorageFailed = errors.New("storage failed")

// RecordingSink records every protocol event it receives.
type RecordingSink struct {
	Events []protocol.Event
}

func (r *RecordingSink) sink() protocol.EventSink {
	return func(e protocol.Event) { r.Events = append(r.Events, e) }
}

func (r *RecordingSink) CursorMove(x, y float32) {
	r.sink().CursorMove(x, y)
}

func (r *RecordingSink) MouseButton(code int, pressed bool) {
	r.sink().MouseButton(code, pressed)
}

func (r *RecordingSink) JoystickConnected() {
	r.sink().JoystickConnected()
}

func (r *RecordingSink) JoystickButton(code int, pressed bool) {
	r.sink().JoystickButton(code, pressed)
}

func (r *RecordingSink) JoystickAxis(code int, value float32) {
	r.sink().JoystickAxis(code, value)
}

func (r *RecordingSink) JoystickDpad(pad int, mask uint8) {
	r.sink().JoystickDpad(pad, mask)
}

// Reset drops the recorded events.
func (r *RecordingSink) Reset() {
	r.Events = nil
}

// Of returns the recorded events of one kind.
func (r *RecordingSink) Of(kind protocol.Kind) []protocol.Event {
	var out []protocol.Event
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Axis is a joystickAxis event.
func Axis(code protocol.Code, value float32) protocol.Event {
	return protocol.Event{Kind: protocol.KindJoystickAxis, Code: code.Wire(), Value: value}
}

// Button is a joystickButton event.
func Button(code protocol.Code, pressed bool) protocol.Event {
	return protocol.Event{Kind: protocol.KindJoystickButton, Code: code.Wire(), Pressed: pressed}
}

// Dpad is a joystickDpad event for pad 0.
func Dpad(mask uint8) protocol.Event {
	return protocol.Event{Kind: protocol.KindJoystickDpad, Mask: mask}
}

// Connected is the joystickConnected event.
func Connected() protocol.Event {
	return protocol.Event{Kind: protocol.KindJoystickConnected}
}

// FailingKV reads from an in-memory store and fails every write once Fail is set.
type FailingKV struct {
	*kvstore.Memory
	Fail   bool
	Writes int
}

func NewFailingKV(t *testing.T) *FailingKV {
	t.Helper()
	return &FailingKV{Memory: kvstore.NewMemory()}
}

func (f *FailingKV) Put(key, value string) error {
	f.Writes++
	if f.Fail {
		return ErrStorageFailed
	}
	return f.Memory.Put(key, value)
}
