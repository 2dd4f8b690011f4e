// Package translator turns raw controller events into protocol events
// according to the current mapping.
package translator

import (
	"context"
	"log/slog"

	"github.com/Alia5/padmap/input"
	"github.com/Alia5/padmap/internal/log"
	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/protocol"
)

// The ten enumerable buttons plus the D-pad keys.
var keyControls = map[input.KeyCode]mapping.LogicalControl{
	input.KeyButtonA:      mapping.ControlButtonA,
	input.KeyButtonB:      mapping.ControlButtonB,
	input.KeyButtonX:      mapping.ControlButtonX,
	input.KeyButtonY:      mapping.ControlButtonY,
	input.KeyButtonL1:     mapping.ControlButtonLb,
	input.KeyButtonR1:     mapping.ControlButtonRb,
	input.KeyButtonSelect: mapping.ControlButtonBack,
	input.KeyButtonStart:  mapping.ControlButtonStart,
	input.KeyButtonThumbL: mapping.ControlButtonLStick,
	input.KeyButtonThumbR: mapping.ControlButtonRStick,

	input.KeyDpadUp:    mapping.ControlDpadUp,
	input.KeyDpadRight: mapping.ControlDpadRight,
	input.KeyDpadDown:  mapping.ControlDpadDown,
	input.KeyDpadLeft:  mapping.ControlDpadLeft,
}

// Digital trigger keys drive the trigger axis slots directly.
var triggerKeys = map[input.KeyCode]mapping.LogicalControl{
	input.KeyButtonL2: mapping.ControlAxisLeftTrigger,
	input.KeyButtonR2: mapping.ControlAxisRightTrigger,
}

// Indexed by input.HatUp..HatLeft.
var hatControls = [4]mapping.LogicalControl{
	mapping.ControlDpadUp,
	mapping.ControlDpadRight,
	mapping.ControlDpadDown,
	mapping.ControlDpadLeft,
}

// Options configures a Translator.
type Options struct {
	// Classifier decides whether an event source is an external controller.
	// Defaults to input.IsGamepadSource.
	Classifier input.Classifier
	// RenderScale multiplies touch coordinates. Defaults to 1.
	RenderScale float32
	Logger      *slog.Logger
}

// Translator converts the events of one active controller. It reads cfg on
// every event, so mapping changes apply immediately. Not safe for concurrent
// use: all events must be delivered from one goroutine.
//
// D-pad slots follow the mapping like any other control. A D-pad slot bound
// to a D-pad code updates the hat mask; bound to any other code it is sent as
// that button and the mask is left untouched.
type Translator struct {
	cfg    *mapping.Config
	sink   protocol.Sink
	opts   Options
	logger *slog.Logger

	connected bool
	keyMask   uint8
	hatMask   uint8
	hatHeld   [4]bool

	touchPointer int
}

func New(cfg *mapping.Config, sink protocol.Sink, opts Options) *Translator {
	if opts.Classifier == nil {
		opts.Classifier = input.IsGamepadSource
	}
	if opts.RenderScale <= 0 {
		opts.RenderScale = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Translator{cfg: cfg, sink: sink, opts: opts, logger: logger, touchPointer: -1}
}

// Qualifies reports whether events from source are handled as controller input.
func (t *Translator) Qualifies(source input.Source) bool {
	return t.opts.Classifier(source)
}

// Reset forgets the session state: the connected signal will be sent again
// and the D-pad mask starts empty.
func (t *Translator) Reset() {
	t.connected = false
	t.keyMask, t.hatMask = 0, 0
	t.hatHeld = [4]bool{}
	t.touchPointer = -1
}

// DpadMask returns the combined D-pad mask last emitted.
func (t *Translator) DpadMask() uint8 { return t.keyMask | t.hatMask }

// HandleKey translates a key edge. It reports whether the event was consumed.
func (t *Translator) HandleKey(ev input.KeyEvent) bool {
	if !t.Qualifies(ev.Source) {
		t.trace("ignoring key from non-controller source", "source", ev.Source)
		return false
	}
	if !t.cfg.Enabled {
		return false
	}
	if ev.Action != input.KeyDown && ev.Action != input.KeyUp {
		return false
	}
	if ev.Action == input.KeyDown && ev.Repeat > 0 {
		return true
	}

	t.ensureConnected()
	pressed := ev.Action == input.KeyDown

	if ctl, ok := keyControls[ev.Code]; ok {
		t.press(t.cfg.Get(ctl), pressed, &t.keyMask)
		return true
	}
	if ctl, ok := triggerKeys[ev.Code]; ok {
		t.sendAxis(t.cfg.Get(ctl), boolAxis(pressed))
		return true
	}
	t.trace("unmapped key", "code", ev.Code)
	return false
}

// HandleMotion translates the analog state of a move event.
func (t *Translator) HandleMotion(ev input.MotionEvent) bool {
	if !t.Qualifies(ev.Source) {
		t.trace("ignoring motion from non-controller source", "source", ev.Source)
		return false
	}
	if !t.cfg.Enabled || ev.Action != input.MotionMove {
		return false
	}

	t.ensureConnected()
	dz := mapping.ClampDeadZone(t.cfg.AxisDeadZone)

	leftX := ApplyDeadZone(ev.AxisValue(input.AxisX), dz)
	leftY := ApplyDeadZone(ev.AxisValue(input.AxisY), dz)
	rightX := ApplyDeadZone(ev.AxisValue(input.AxisZ), dz)
	rightY := ApplyDeadZone(ev.AxisValue(input.AxisRZ), dz)
	leftTrigger := ApplyDeadZone(nonNegative(ev.AxisValue(input.AxisLTrigger)), dz)
	rightTrigger := ApplyDeadZone(nonNegative(ev.AxisValue(input.AxisRTrigger)), dz)

	t.sendAxis(t.cfg.Get(mapping.ControlAxisLeftX), leftX)
	t.sendAxis(t.cfg.Get(mapping.ControlAxisLeftY), leftY)
	t.sendAxis(t.cfg.Get(mapping.ControlAxisRightX), rightX)
	t.sendAxis(t.cfg.Get(mapping.ControlAxisRightY), rightY)
	t.sendAxis(t.cfg.Get(mapping.ControlAxisLeftTrigger), leftTrigger)
	t.sendAxis(t.cfg.Get(mapping.ControlAxisRightTrigger), rightTrigger)

	dirs := ev.HatDirections()
	for i, held := range dirs {
		if held == t.hatHeld[i] {
			continue
		}
		t.hatHeld[i] = held
		t.press(t.cfg.Get(hatControls[i]), held, &t.hatMask)
	}
	return true
}

func (t *Translator) ensureConnected() {
	if t.connected {
		return
	}
	t.sink.JoystickConnected()
	t.connected = true
	t.logger.Info("external controller connected")
}

// press delivers a button edge for code. Trigger pseudo buttons become axis
// values, D-pad codes update mask and emit the combined D-pad state.
func (t *Translator) press(code protocol.Code, pressed bool, mask *uint8) {
	if axis, ok := code.TriggerAxis(); ok {
		t.sink.JoystickAxis(axis.Wire(), boolAxis(pressed))
		return
	}
	if bit := code.DpadBit(); bit != 0 {
		if pressed {
			*mask |= bit
		} else {
			*mask &^= bit
		}
		t.sink.JoystickDpad(0, t.keyMask|t.hatMask)
		return
	}
	t.sink.JoystickButton(code.Wire(), pressed)
}

func (t *Translator) sendAxis(code protocol.Code, value float32) {
	t.sink.JoystickAxis(code.Wire(), value)
}

func (t *Translator) trace(msg string, args ...any) {
	t.logger.Log(context.Background(), log.LevelTrace, msg, args...)
}

func boolAxis(pressed bool) float32 {
	if pressed {
		return 1
	}
	return 0
}
