// Package protocol describes the virtual gamepad protocol understood by the
// game engine: the closed set of button and axis codes, the outbound events
// built from them and the Sink that delivers those events.
package protocol

import (
	"fmt"
	"strings"
)

// Category tells whether a Code is delivered as a button or as an axis.
type Category uint8

const (
	CategoryButton Category = iota
	CategoryAxis
)

func (c Category) String() string {
	switch c {
	case CategoryButton:
		return "button"
	case CategoryAxis:
		return "axis"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Code is a protocol code. The zero value is not a valid code.
type Code uint8

const (
	CodeInvalid Code = iota

	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonBack
	ButtonStart
	ButtonGuide
	ButtonLStick
	ButtonRStick
	ButtonDpadUp
	ButtonDpadRight
	ButtonDpadDown
	ButtonDpadLeft

	// LeftTrigger and RightTrigger are button-category pseudo codes. They are
	// never sent as button events; the engine receives them as AxisLT/AxisRT.
	LeftTrigger
	RightTrigger

	AxisLX
	AxisLY
	AxisRX
	AxisRY
	AxisLT
	AxisRT

	codeCount
)

// GLFW gamepad numbering.
const (
	glfwButtonA         = 0
	glfwButtonB         = 1
	glfwButtonX         = 2
	glfwButtonY         = 3
	glfwButtonLB        = 4
	glfwButtonRB        = 5
	glfwButtonBack      = 6
	glfwButtonStart     = 7
	glfwButtonGuide     = 8
	glfwButtonLStick    = 9
	glfwButtonRStick    = 10
	glfwButtonDpadUp    = 11
	glfwButtonDpadRight = 12
	glfwButtonDpadDown  = 13
	glfwButtonDpadLeft  = 14

	glfwAxisLX = 0
	glfwAxisLY = 1
	glfwAxisRX = 2
	glfwAxisRY = 3
	glfwAxisLT = 4
	glfwAxisRT = 5

	// MouseButtonLeft is the engine's code for the primary mouse button.
	MouseButtonLeft = 0
)

// D-pad mask bits.
const (
	DpadUp    uint8 = 0x1
	DpadRight uint8 = 0x2
	DpadDown  uint8 = 0x4
	DpadLeft  uint8 = 0x8
)

type codeInfo struct {
	name     string
	label    string
	category Category
	wire     int
	dpadBit  uint8
}

// codes is indexed by Code; the array length makes a missing entry a compile error.
var codes = [codeCount]codeInfo{
	CodeInvalid: {name: "INVALID", label: "INVALID"},

	ButtonA:         {name: "GAMEPAD_BUTTON_A", label: "A", wire: glfwButtonA},
	ButtonB:         {name: "GAMEPAD_BUTTON_B", label: "B", wire: glfwButtonB},
	ButtonX:         {name: "GAMEPAD_BUTTON_X", label: "X", wire: glfwButtonX},
	ButtonY:         {name: "GAMEPAD_BUTTON_Y", label: "Y", wire: glfwButtonY},
	ButtonLB:        {name: "GAMEPAD_BUTTON_LB", label: "LB", wire: glfwButtonLB},
	ButtonRB:        {name: "GAMEPAD_BUTTON_RB", label: "RB", wire: glfwButtonRB},
	ButtonBack:      {name: "GAMEPAD_BUTTON_BACK", label: "BACK", wire: glfwButtonBack},
	ButtonStart:     {name: "GAMEPAD_BUTTON_START", label: "START", wire: glfwButtonStart},
	ButtonGuide:     {name: "GAMEPAD_BUTTON_GUIDE", label: "GUIDE", wire: glfwButtonGuide},
	ButtonLStick:    {name: "GAMEPAD_BUTTON_LSTICK", label: "LSTICK", wire: glfwButtonLStick},
	ButtonRStick:    {name: "GAMEPAD_BUTTON_RSTICK", label: "RSTICK", wire: glfwButtonRStick},
	ButtonDpadUp:    {name: "GAMEPAD_BUTTON_DPAD_UP", label: "DPAD UP", wire: glfwButtonDpadUp, dpadBit: DpadUp},
	ButtonDpadRight: {name: "GAMEPAD_BUTTON_DPAD_RIGHT", label: "DPAD RIGHT", wire: glfwButtonDpadRight, dpadBit: DpadRight},
	ButtonDpadDown:  {name: "GAMEPAD_BUTTON_DPAD_DOWN", label: "DPAD DOWN", wire: glfwButtonDpadDown, dpadBit: DpadDown},
	ButtonDpadLeft:  {name: "GAMEPAD_BUTTON_DPAD_LEFT", label: "DPAD LEFT", wire: glfwButtonDpadLeft, dpadBit: DpadLeft},

	LeftTrigger:  {name: "GAMEPAD_LTRIGGER", label: "LTRIGGER", wire: glfwAxisLT},
	RightTrigger: {name: "GAMEPAD_RTRIGGER", label: "RTRIGGER", wire: glfwAxisRT},

	AxisLX: {name: "GAMEPAD_AXIS_LX", label: "LX", category: CategoryAxis, wire: glfwAxisLX},
	AxisLY: {name: "GAMEPAD_AXIS_LY", label: "LY", category: CategoryAxis, wire: glfwAxisLY},
	AxisRX: {name: "GAMEPAD_AXIS_RX", label: "RX", category: CategoryAxis, wire: glfwAxisRX},
	AxisRY: {name: "GAMEPAD_AXIS_RY", label: "RY", category: CategoryAxis, wire: glfwAxisRY},
	AxisLT: {name: "GAMEPAD_AXIS_LT", label: "LT", category: CategoryAxis, wire: glfwAxisLT},
	AxisRT: {name: "GAMEPAD_AXIS_RT", label: "RT", category: CategoryAxis, wire: glfwAxisRT},
}

var buttonOptions = []Code{
	ButtonA, ButtonB, ButtonX, ButtonY,
	ButtonLB, ButtonRB, ButtonBack, ButtonStart, ButtonGuide,
	ButtonLStick, ButtonRStick,
	ButtonDpadUp, ButtonDpadRight, ButtonDpadDown, ButtonDpadLeft,
	LeftTrigger, RightTrigger,
}

var axisOptions = []Code{AxisLX, AxisLY, AxisRX, AxisRY, AxisLT, AxisRT}

// Valid reports whether c is one of the enumerated codes.
func (c Code) Valid() bool { return c > CodeInvalid && c < codeCount }

func (c Code) info() codeInfo {
	if c >= codeCount {
		return codes[CodeInvalid]
	}
	return codes[c]
}

// String returns the identity name, e.g. GAMEPAD_BUTTON_A.
func (c Code) String() string { return c.info().name }

// Label returns the human-readable name shown on a binding's value button.
func (c Code) Label() string { return c.info().label }

func (c Code) Category() Category { return c.info().category }

// Wire returns the number the engine expects for this code. For the trigger
// pseudo buttons it is the number of the axis they are delivered on.
func (c Code) Wire() int { return c.info().wire }

// DpadBit returns the D-pad mask bit of a D-pad direction code, 0 otherwise.
func (c Code) DpadBit() uint8 { return c.info().dpadBit }

// TriggerAxis returns the axis a trigger pseudo button is delivered on.
func (c Code) TriggerAxis() (Code, bool) {
	switch c {
	case LeftTrigger:
		return AxisLT, true
	case RightTrigger:
		return AxisRT, true
	}
	return CodeInvalid, false
}

// MarshalText encodes the identity name.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid protocol code %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes an identity name.
func (c *Code) UnmarshalText(b []byte) error {
	v, err := ParseCode(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCode looks up a code by identity name, case-insensitively.
func ParseCode(name string) (Code, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for c := ButtonA; c < codeCount; c++ {
		if codes[c].name == n {
			return c, nil
		}
	}
	return CodeInvalid, fmt.Errorf("unknown protocol code %q", name)
}

// ButtonOptions returns the codes a button slot may be bound to.
func ButtonOptions() []Code { return append([]Code(nil), buttonOptions...) }

// AxisOptions returns the codes an axis slot may be bound to.
func AxisOptions() []Code { return append([]Code(nil), axisOptions...) }

// Options returns the option set for a category.
func Options(cat Category) []Code {
	if cat == CategoryAxis {
		return AxisOptions()
	}
	return ButtonOptions()
}

// Contains reports whether set holds c.
func Contains(set []Code, c Code) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}
