package capture

import (
	"github.com/Alia5/padmap/input"
	"github.com/Alia5/padmap/protocol"
)

// Threshold is the magnitude a trigger or analog axis must exceed to be
// picked up by a capture.
const Threshold float32 = 0.6

// Keys every capture recognises.
var keyCodes = map[input.KeyCode]protocol.Code{
	input.KeyButtonA:      protocol.ButtonA,
	input.KeyButtonB:      protocol.ButtonB,
	input.KeyButtonX:      protocol.ButtonX,
	input.KeyButtonY:      protocol.ButtonY,
	input.KeyButtonL1:     protocol.ButtonLB,
	input.KeyButtonR1:     protocol.ButtonRB,
	input.KeyButtonThumbL: protocol.ButtonLStick,
	input.KeyButtonThumbR: protocol.ButtonRStick,
	input.KeyButtonStart:  protocol.ButtonStart,
	input.KeyButtonSelect: protocol.ButtonBack,
	input.KeyButtonMode:   protocol.ButtonGuide,
}

// Keys only button captures recognise.
var buttonOnlyKeyCodes = map[input.KeyCode]protocol.Code{
	input.KeyDpadUp:    protocol.ButtonDpadUp,
	input.KeyDpadRight: protocol.ButtonDpadRight,
	input.KeyDpadDown:  protocol.ButtonDpadDown,
	input.KeyDpadLeft:  protocol.ButtonDpadLeft,
	input.KeyButtonL2:  protocol.LeftTrigger,
	input.KeyButtonR2:  protocol.RightTrigger,
}

// keyCandidate returns the code a key press proposes for a capture of cat.
func keyCandidate(code input.KeyCode, cat protocol.Category) (protocol.Code, bool) {
	if c, ok := keyCodes[code]; ok {
		return c, true
	}
	if cat != protocol.CategoryButton {
		return protocol.CodeInvalid, false
	}
	c, ok := buttonOnlyKeyCodes[code]
	return c, ok
}

// buttonMotionCandidate derives a D-pad direction from the hat axes, X before
// Y, or failing that a trigger pulled past Threshold. When both triggers are
// past it the larger wins; equal values pick the left one.
func buttonMotionCandidate(ev input.MotionEvent) (protocol.Code, bool) {
	x, y := ev.AxisValue(input.AxisHatX), ev.AxisValue(input.AxisHatY)
	switch {
	case x >= input.HatThreshold:
		return protocol.ButtonDpadRight, true
	case x <= -input.HatThreshold:
		return protocol.ButtonDpadLeft, true
	case y >= input.HatThreshold:
		return protocol.ButtonDpadDown, true
	case y <= -input.HatThreshold:
		return protocol.ButtonDpadUp, true
	}

	lt := max(ev.AxisValue(input.AxisLTrigger), 0)
	rt := max(ev.AxisValue(input.AxisRTrigger), 0)
	if lt <= Threshold && rt <= Threshold {
		return protocol.CodeInvalid, false
	}
	if lt >= rt {
		return protocol.LeftTrigger, true
	}
	return protocol.RightTrigger, true
}

// Evaluation order of axis captures. Ties go to the earlier entry.
var axisOrder = [...]struct {
	axis input.Axis
	code protocol.Code
	trig bool
}{
	{input.AxisX, protocol.AxisLX, false},
	{input.AxisY, protocol.AxisLY, false},
	{input.AxisZ, protocol.AxisRX, false},
	{input.AxisRZ, protocol.AxisRY, false},
	{input.AxisLTrigger, protocol.AxisLT, true},
	{input.AxisRTrigger, protocol.AxisRT, true},
}

// axisMotionCandidate picks the analog quantity with the largest magnitude
// strictly above Threshold.
func axisMotionCandidate(ev input.MotionEvent) (protocol.Code, bool) {
	best := protocol.CodeInvalid
	peak := Threshold
	for _, a := range axisOrder {
		v := ev.AxisValue(a.axis)
		if a.trig {
			v = max(v, 0)
		} else if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
			best = a.code
		}
	}
	return best, best != protocol.CodeInvalid
}
