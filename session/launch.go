package session

import (
	"errors"
	"sync/atomic"
)

// ErrEngineLaunched is returned when the engine link was already started.
var ErrEngineLaunched = errors.New("engine already launched")

// LaunchToken allows exactly one caller to start the engine.
type LaunchToken struct {
	used atomic.Bool
}

// Consume reports true to the first caller only.
func (t *LaunchToken) Consume() bool {
	return t.used.CompareAndSwap(false, true)
}

// Consumed reports whether the token was taken.
func (t *LaunchToken) Consumed() bool { return t.used.Load() }
