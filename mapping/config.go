// Package mapping holds the persisted external controller mapping: which
// protocol code every logical control produces, plus the global controller
// settings, and the store that loads and saves it.
package mapping

import (
	"errors"
	"fmt"

	"github.com/Alia5/padmap/protocol"
)

const (
	DefaultAxisDeadZone float32 = 0.2
	MaxAxisDeadZone     float32 = 0.95
)

// ErrInvalidCode is returned when a code does not fit a control's slot.
var ErrInvalidCode = errors.New("invalid code for control")

// Config is the mapping configuration. Every slot always holds a valid code
// of the slot's category; Set is the only way to change one.
type Config struct {
	Enabled                bool
	AxisDeadZone           float32
	OverlayControlsEnabled bool

	codes [ControlCount]protocol.Code
}

// NewConfig returns a configuration holding the defaults.
func NewConfig() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.Enabled = true
	c.AxisDeadZone = DefaultAxisDeadZone
	c.OverlayControlsEnabled = true
	for i := range c.codes {
		c.codes[i] = LogicalControl(i).Default()
	}
}

// Get returns the code the control is mapped to.
func (c *Config) Get(ctl LogicalControl) protocol.Code {
	if !ctl.Valid() {
		return protocol.CodeInvalid
	}
	return c.codes[ctl]
}

// Set maps ctl to code. The code must be one of ctl's options.
func (c *Config) Set(ctl LogicalControl, code protocol.Code) error {
	if !ctl.Valid() {
		return fmt.Errorf("%w: unknown control %d", ErrInvalidCode, uint8(ctl))
	}
	if !protocol.Contains(ctl.Options(), code) {
		return fmt.Errorf("%w: %s cannot be bound to %s", ErrInvalidCode, ctl, code)
	}
	c.codes[ctl] = code
	return nil
}

// SetAxisDeadZone stores v clamped into [0, MaxAxisDeadZone].
func (c *Config) SetAxisDeadZone(v float32) {
	c.AxisDeadZone = ClampDeadZone(v)
}

// Label returns the display label of the control's current binding.
func (c *Config) Label(ctl LogicalControl) string {
	return c.Get(ctl).Label()
}

// ClampDeadZone clamps v into [0, MaxAxisDeadZone]. NaN clamps to 0.
func ClampDeadZone(v float32) float32 {
	if !(v >= 0) {
		return 0
	}
	if v > MaxAxisDeadZone {
		return MaxAxisDeadZone
	}
	return v
}
