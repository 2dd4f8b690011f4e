// Package input models the raw events delivered by the platform input layer.
package input

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyEvent is a key edge from an input device.
type KeyEvent struct {
	Code   KeyCode
	Action KeyAction
	Repeat int
	Source Source
}

// MotionEvent carries the current axis values of an input device.
// Axes missing from the map read as 0.
type MotionEvent struct {
	Action MotionAction
	Axes   map[Axis]float32
	Source Source
}

// AxisValue returns the value of a single axis.
func (m MotionEvent) AxisValue(a Axis) float32 {
	return m.Axes[a]
}

// Pointer is one touch pointer of a TouchEvent.
type Pointer struct {
	ID   int
	X, Y float32
}

// TouchEvent is a touch screen event. PointerID names the pointer the action
// applies to; Pointers holds every pointer currently down.
type TouchEvent struct {
	Action    TouchAction
	PointerID int
	Pointers  []Pointer
}

// Find returns the pointer with the given id.
func (t TouchEvent) Find(id int) (Pointer, bool) {
	for _, p := range t.Pointers {
		if p.ID == id {
			return p, true
		}
	}
	return Pointer{}, false
}

// Classifier decides whether a source qualifies as an external controller.
type Classifier func(Source) bool

// IsGamepadSource is the default Classifier: gamepad, joystick and dpad
// source classes qualify.
func IsGamepadSource(s Source) bool {
	return s&SourceGamepad == SourceGamepad ||
		s&SourceJoystick == SourceJoystick ||
		s&SourceDpad == SourceDpad
}

// ParseKeyCode accepts a key name (BUTTON_A, KEYCODE_BUTTON_A) or a number.
func ParseKeyCode(s string) (KeyCode, error) {
	n := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "KEYCODE_")
	if k, ok := keyNames[n]; ok {
		return k, nil
	}
	if v, err := strconv.Atoi(n); err == nil {
		return KeyCode(v), nil
	}
	return 0, fmt.Errorf("unknown key code %q", s)
}

func (k KeyCode) String() string {
	for n, v := range keyNames {
		if v == k {
			return n
		}
	}
	return strconv.Itoa(int(k))
}

// ParseAxis accepts an axis name (X, HAT_X, AXIS_LTRIGGER) or a number.
func ParseAxis(s string) (Axis, error) {
	n := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "AXIS_")
	if a, ok := axisNames[n]; ok {
		return a, nil
	}
	if v, err := strconv.Atoi(n); err == nil {
		return Axis(v), nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// ParseSource accepts one or more source class names joined by "|", or a
// number (0x prefix allowed).
func ParseSource(s string) (Source, error) {
	var out Source
	for _, part := range strings.Split(s, "|") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if src, ok := sourceNames[p]; ok {
			out |= src
			continue
		}
		v, err := strconv.ParseUint(p, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("unknown source %q", part)
		}
		out |= Source(v)
	}
	return out, nil
}

// ParseKeyAction accepts down, up or multiple.
func ParseKeyAction(s string) (KeyAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return KeyDown, nil
	case "up":
		return KeyUp, nil
	case "multiple":
		return KeyMultiple, nil
	}
	return 0, fmt.Errorf("unknown key action %q", s)
}

// ParseMotionAction accepts move, hover_move or scroll.
func ParseMotionAction(s string) (MotionAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move", "":
		return MotionMove, nil
	case "hover_move":
		return MotionHoverMove, nil
	case "scroll":
		return MotionScroll, nil
	}
	return 0, fmt.Errorf("unknown motion action %q", s)
}

// ParseTouchAction accepts down, up, move, cancel, pointer_down or pointer_up.
func ParseTouchAction(s string) (TouchAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return TouchDown, nil
	case "up":
		return TouchUp, nil
	case "move":
		return TouchMove, nil
	case "cancel":
		return TouchCancel, nil
	case "pointer_down":
		return TouchPointerDown, nil
	case "pointer_up":
		return TouchPointerUp, nil
	}
	return 0, fmt.Errorf("unknown touch action %q", s)
}

// HatThreshold is the magnitude at which a hat axis counts as pressed.
const HatThreshold float32 = 0.5

// Hat directions, in D-pad bit order.
const (
	HatUp = iota
	HatRight
	HatDown
	HatLeft
)

// HatDirections returns which directions the hat axes of m hold. Opposite
// directions are exclusive; one horizontal and one vertical may combine.
func (m MotionEvent) HatDirections() (dirs [4]bool) {
	x, y := m.AxisValue(AxisHatX), m.AxisValue(AxisHatY)
	dirs[HatRight] = x >= HatThreshold
	dirs[HatLeft] = x <= -HatThreshold
	dirs[HatDown] = y >= HatThreshold
	dirs[HatUp] = y <= -HatThreshold
	return dirs
}
