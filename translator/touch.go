package translator

import (
	"github.com/Alia5/padmap/input"
	"github.com/Alia5/padmap/protocol"
)

// HandleTouch drives the cursor and the left mouse button from one tracked
// touch pointer. Presses are left unconsumed while overlay controls are
// enabled so the overlay can handle them as well; moves are never consumed.
func (t *Translator) HandleTouch(ev input.TouchEvent) bool {
	scale := t.opts.RenderScale
	switch ev.Action {
	case input.TouchDown, input.TouchPointerDown:
		p, ok := ev.Find(ev.PointerID)
		if !ok {
			return false
		}
		t.touchPointer = ev.PointerID
		t.sink.CursorMove(p.X*scale, p.Y*scale)
		t.sink.MouseButton(protocol.MouseButtonLeft, true)
		return !t.cfg.OverlayControlsEnabled

	case input.TouchMove:
		if t.touchPointer < 0 {
			return false
		}
		p, ok := ev.Find(t.touchPointer)
		if !ok {
			t.touchPointer = -1
			return false
		}
		t.sink.CursorMove(p.X*scale, p.Y*scale)
		return false

	case input.TouchUp, input.TouchPointerUp:
		if t.touchPointer < 0 || ev.PointerID != t.touchPointer {
			return false
		}
		t.touchPointer = -1
		t.sink.MouseButton(protocol.MouseButtonLeft, false)
		return true

	case input.TouchCancel:
		if t.touchPointer < 0 {
			return false
		}
		t.touchPointer = -1
		t.sink.MouseButton(protocol.MouseButtonLeft, false)
		return true
	}
	return false
}
