package protocol

// Sink receives protocol events. Calls are fire-and-forget.
type Sink interface {
	CursorMove(x, y float32)
	MouseButton(code int, pressed bool)
	JoystickConnected()
	JoystickButton(code int, pressed bool)
	JoystickAxis(code int, value float32)
	JoystickDpad(pad int, mask uint8)
}

// EventSink adapts a function taking Events to a Sink.
type EventSink func(Event)

func (f EventSink) CursorMove(x, y float32) {
	f(Event{Kind: KindCursorMove, X: x, Y: y})
}

func (f EventSink) MouseButton(code int, pressed bool) {
	f(Event{Kind: KindMouseButton, Code: code, Pressed: pressed})
}

func (f EventSink) JoystickConnected() {
	f(Event{Kind: KindJoystickConnected})
}

func (f EventSink) JoystickButton(code int, pressed bool) {
	f(Event{Kind: KindJoystickButton, Code: code, Pressed: pressed})
}

func (f EventSink) JoystickAxis(code int, value float32) {
	f(Event{Kind: KindJoystickAxis, Code: code, Value: value})
}

func (f EventSink) JoystickDpad(pad int, mask uint8) {
	f(Event{Kind: KindJoystickDpad, Pad: pad, Mask: mask})
}

// Dispatch replays e on s.
func Dispatch(s Sink, e Event) {
	switch e.Kind {
	case KindCursorMove:
		s.CursorMove(e.X, e.Y)
	case KindMouseButton:
		s.MouseButton(e.Code, e.Pressed)
	case KindJoystickConnected:
		s.JoystickConnected()
	case KindJoystickButton:
		s.JoystickButton(e.Code, e.Pressed)
	case KindJoystickAxis:
		s.JoystickAxis(e.Code, e.Value)
	case KindJoystickDpad:
		s.JoystickDpad(e.Pad, e.Mask)
	}
}
