package mapping

import (
	"fmt"
	"strings"

	"github.com/Alia5/padmap/protocol"
)

// LogicalControl names a physical control on the external controller,
// independent of what it is mapped to.
type LogicalControl uint8

const (
	ControlButtonA LogicalControl = iota
	ControlButtonB
	ControlButtonX
	ControlButtonY
	ControlButtonLb
	ControlButtonRb
	ControlButtonBack
	ControlButtonStart
	ControlButtonLStick
	ControlButtonRStick
	ControlDpadUp
	ControlDpadRight
	ControlDpadDown
	ControlDpadLeft
	ControlAxisLeftX
	ControlAxisLeftY
	ControlAxisRightX
	ControlAxisRightY
	ControlAxisLeftTrigger
	ControlAxisRightTrigger

	ControlCount
)

type controlInfo struct {
	key      string
	name     string
	category protocol.Category
	def      protocol.Code
}

var controls = [ControlCount]controlInfo{
	ControlButtonA:      {key: "buttonA", name: "A", def: protocol.ButtonA},
	ControlButtonB:      {key: "buttonB", name: "B", def: protocol.ButtonB},
	ControlButtonX:      {key: "buttonX", name: "X", def: protocol.ButtonX},
	ControlButtonY:      {key: "buttonY", name: "Y", def: protocol.ButtonY},
	ControlButtonLb:     {key: "buttonLb", name: "LB", def: protocol.ButtonLB},
	ControlButtonRb:     {key: "buttonRb", name: "RB", def: protocol.ButtonRB},
	ControlButtonBack:   {key: "buttonBack", name: "Back", def: protocol.ButtonBack},
	ControlButtonStart:  {key: "buttonStart", name: "Start", def: protocol.ButtonStart},
	ControlButtonLStick: {key: "buttonLStick", name: "L3", def: protocol.ButtonLStick},
	ControlButtonRStick: {key: "buttonRStick", name: "R3", def: protocol.ButtonRStick},

	ControlDpadUp:    {key: "dpadUp", name: "D-pad up", def: protocol.ButtonDpadUp},
	ControlDpadRight: {key: "dpadRight", name: "D-pad right", def: protocol.ButtonDpadRight},
	ControlDpadDown:  {key: "dpadDown", name: "D-pad down", def: protocol.ButtonDpadDown},
	ControlDpadLeft:  {key: "dpadLeft", name: "D-pad left", def: protocol.ButtonDpadLeft},

	ControlAxisLeftX:        {key: "axisLeftX", name: "Left stick X", category: protocol.CategoryAxis, def: protocol.AxisLX},
	ControlAxisLeftY:        {key: "axisLeftY", name: "Left stick Y", category: protocol.CategoryAxis, def: protocol.AxisLY},
	ControlAxisRightX:       {key: "axisRightX", name: "Right stick X", category: protocol.CategoryAxis, def: protocol.AxisRX},
	ControlAxisRightY:       {key: "axisRightY", name: "Right stick Y", category: protocol.CategoryAxis, def: protocol.AxisRY},
	ControlAxisLeftTrigger:  {key: "axisLeftTrigger", name: "Left trigger", category: protocol.CategoryAxis, def: protocol.AxisLT},
	ControlAxisRightTrigger: {key: "axisRightTrigger", name: "Right trigger", category: protocol.CategoryAxis, def: protocol.AxisRT},
}

// Controls returns every logical control in slot order.
func Controls() []LogicalControl {
	out := make([]LogicalControl, ControlCount)
	for i := range out {
		out[i] = LogicalControl(i)
	}
	return out
}

func (c LogicalControl) Valid() bool { return c < ControlCount }

// Key is the persisted field name of the control.
func (c LogicalControl) Key() string {
	if !c.Valid() {
		return fmt.Sprintf("control(%d)", uint8(c))
	}
	return controls[c].key
}

func (c LogicalControl) String() string { return c.Key() }

// Name is the display name of the physical control.
func (c LogicalControl) Name() string {
	if !c.Valid() {
		return c.Key()
	}
	return controls[c].name
}

// Category is the category of codes the control's slot holds.
func (c LogicalControl) Category() protocol.Category {
	if !c.Valid() {
		return protocol.CategoryButton
	}
	return controls[c].category
}

// Default is the code the control maps to in a fresh configuration.
func (c LogicalControl) Default() protocol.Code {
	if !c.Valid() {
		return protocol.CodeInvalid
	}
	return controls[c].def
}

// Options returns the codes the control's slot accepts.
func (c LogicalControl) Options() []protocol.Code {
	return protocol.Options(c.Category())
}

// ParseControl looks up a control by persisted key, case-insensitively.
func ParseControl(s string) (LogicalControl, error) {
	for i, ci := range controls {
		if strings.EqualFold(ci.key, strings.TrimSpace(s)) {
			return LogicalControl(i), nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", s)
}
