package capture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padmap/capture"
	"github.com/Alia5/padmap/input"
	th "github.com/Alia5/padmap/internal/testing"
	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/protocol"
)

func newMachine(t *testing.T) (*capture.Machine, *mapping.Config, *th.FailingKV) {
	t.Helper()
	kv := th.NewFailingKV(t)
	cfg := mapping.NewConfig()
	return capture.New(cfg, mapping.NewStore(kv, nil, nil), capture.Options{}), cfg, kv
}

func down(code input.KeyCode) input.KeyEvent {
	return input.KeyEvent{Code: code, Action: input.KeyDown, Source: input.SourceGamepad}
}

func move(axes map[input.Axis]float32) input.MotionEvent {
	return input.MotionEvent{Action: input.MotionMove, Axes: axes, Source: input.SourceGamepad | input.SourceJoystick}
}

func TestStart(t *testing.T) {
	m, _, _ := newMachine(t)

	require.NoError(t, m.StartFor(mapping.ControlButtonA))
	assert.True(t, m.Armed())
	assert.ErrorIs(t, m.StartFor(mapping.ControlButtonB), capture.ErrCaptureActive)

	s, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, mapping.ControlButtonA, s.Control)
	assert.Equal(t, protocol.CategoryButton, s.Category)
	assert.Equal(t, protocol.ButtonOptions(), s.Allowed)

	m.Cancel()
	assert.False(t, m.Armed())
	m.Cancel()
}

func TestStartCategoryMismatch(t *testing.T) {
	tests := []struct {
		name    string
		ctl     mapping.LogicalControl
		allowed []protocol.Code
		cat     protocol.Category
	}{
		{"axis slot as button", mapping.ControlAxisLeftX, nil, protocol.CategoryButton},
		{"button slot as axis", mapping.ControlButtonA, nil, protocol.CategoryAxis},
		{"axis code in button set", mapping.ControlButtonA, []protocol.Code{protocol.ButtonA, protocol.AxisLX}, protocol.CategoryButton},
		{"unknown control", mapping.ControlCount, nil, protocol.CategoryButton},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newMachine(t)
			assert.ErrorIs(t, m.Start(tt.ctl, tt.allowed, tt.cat), capture.ErrCategoryMismatch)
			assert.False(t, m.Armed())
		})
	}
}

func TestIdleConsumesNothing(t *testing.T) {
	m, _, kv := newMachine(t)
	consumed, b, err := m.HandleKey(down(input.KeyButtonA))
	assert.False(t, consumed)
	assert.Nil(t, b)
	assert.NoError(t, err)

	consumed, _, _ = m.HandleMotion(move(map[input.Axis]float32{input.AxisX: 1}))
	assert.False(t, consumed)
	assert.Zero(t, kv.Writes)
}

func TestKeyCapture(t *testing.T) {
	tests := []struct {
		name string
		ctl  mapping.LogicalControl
		key  input.KeyCode
		want protocol.Code
	}{
		{"face button", mapping.ControlButtonA, input.KeyButtonY, protocol.ButtonY},
		{"shoulder", mapping.ControlButtonX, input.KeyButtonR1, protocol.ButtonRB},
		{"stick click", mapping.ControlButtonStart, input.KeyButtonThumbL, protocol.ButtonLStick},
		{"select is back", mapping.ControlButtonB, input.KeyButtonSelect, protocol.ButtonBack},
		{"dpad key", mapping.ControlButtonLb, input.KeyDpadLeft, protocol.ButtonDpadLeft},
		{"digital trigger", mapping.ControlButtonRb, input.KeyButtonR2, protocol.RightTrigger},
		{"dpad slot", mapping.ControlDpadUp, input.KeyButtonB, protocol.ButtonB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cfg, kv := newMachine(t)
			require.NoError(t, m.StartFor(tt.ctl))

			consumed, b, err := m.HandleKey(down(tt.key))
			require.NoError(t, err)
			assert.True(t, consumed)
			require.NotNil(t, b)
			assert.Equal(t, capture.Binding{Control: tt.ctl, Code: tt.want, Label: tt.want.Label()}, *b)
			assert.Equal(t, tt.want, cfg.Get(tt.ctl))
			assert.False(t, m.Armed())
			assert.Equal(t, 1, kv.Writes)

			stored, err := mapping.NewStore(kv, nil, nil).Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Get(tt.ctl))
		})
	}
}

func TestKeyCaptureIgnoredEventsStayArmed(t *testing.T) {
	tests := []struct {
		name     string
		ev       input.KeyEvent
		consumed bool
	}{
		{"repeat", input.KeyEvent{Code: input.KeyButtonA, Action: input.KeyDown, Repeat: 1, Source: input.SourceGamepad}, true},
		{"key up", input.KeyEvent{Code: input.KeyButtonA, Action: input.KeyUp, Source: input.SourceGamepad}, true},
		{"unknown key", down(input.KeyCode(4)), true},
		{"keyboard", input.KeyEvent{Code: input.KeyButtonA, Action: input.KeyDown, Source: input.SourceKeyboard}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cfg, kv := newMachine(t)
			require.NoError(t, m.StartFor(mapping.ControlButtonB))

			consumed, b, err := m.HandleKey(tt.ev)
			require.NoError(t, err)
			assert.Equal(t, tt.consumed, consumed)
			assert.Nil(t, b)
			assert.True(t, m.Armed())
			assert.Equal(t, protocol.ButtonB, cfg.Get(mapping.ControlButtonB))
			assert.Zero(t, kv.Writes)
		})
	}
}

func TestAxisCaptureIgnoresButtonOnlyKeys(t *testing.T) {
	m, cfg, _ := newMachine(t)
	require.NoError(t, m.StartFor(mapping.ControlAxisLeftTrigger))

	for _, k := range []input.KeyCode{input.KeyButtonL2, input.KeyDpadUp, input.KeyButtonA} {
		consumed, b, err := m.HandleKey(down(k))
		require.NoError(t, err)
		assert.True(t, consumed)
		assert.Nil(t, b)
	}
	assert.True(t, m.Armed())
	assert.Equal(t, protocol.AxisLT, cfg.Get(mapping.ControlAxisLeftTrigger))
}

func TestCommitOnlyAllowed(t *testing.T) {
	m, cfg, kv := newMachine(t)
	before := *cfg
	allowed := []protocol.Code{protocol.ButtonX, protocol.ButtonY}
	require.NoError(t, m.Start(mapping.ControlButtonA, allowed, protocol.CategoryButton))

	for _, k := range []input.KeyCode{input.KeyButtonA, input.KeyButtonB, input.KeyDpadUp, input.KeyButtonL2} {
		consumed, b, err := m.HandleKey(down(k))
		require.NoError(t, err)
		assert.True(t, consumed)
		assert.Nil(t, b)
	}
	assert.Equal(t, before, *cfg)
	assert.True(t, m.Armed())

	_, b, err := m.HandleKey(down(input.KeyButtonY))
	require.NoError(t, err)
	require.NotNil(t, b)

	for _, ctl := range mapping.Controls() {
		if ctl == mapping.ControlButtonA {
			assert.Equal(t, protocol.ButtonY, cfg.Get(ctl))
			continue
		}
		assert.Equal(t, before.Get(ctl), cfg.Get(ctl), ctl.String())
	}
	assert.Equal(t, before.Enabled, cfg.Enabled)
	assert.Equal(t, before.AxisDeadZone, cfg.AxisDeadZone)
	assert.False(t, m.Armed())
	assert.Equal(t, 1, kv.Writes)
}

func TestCommitSaveFailure(t *testing.T) {
	m, cfg, kv := newMachine(t)
	kv.Fail = true
	require.NoError(t, m.StartFor(mapping.ControlButtonA))

	consumed, b, err := m.HandleKey(down(input.KeyButtonX))
	assert.True(t, consumed)
	assert.Nil(t, b)
	require.ErrorIs(t, err, th.ErrStorageFailed)
	assert.Equal(t, protocol.ButtonA, cfg.Get(mapping.ControlButtonA))
	assert.False(t, m.Armed())
}

func TestButtonMotionCapture(t *testing.T) {
	tests := []struct {
		name string
		axes map[input.Axis]float32
		want protocol.Code
	}{
		{"hat right", map[input.Axis]float32{input.AxisHatX: 1}, protocol.ButtonDpadRight},
		{"hat left", map[input.Axis]float32{input.AxisHatX: -0.5}, protocol.ButtonDpadLeft},
		{"hat down", map[input.Axis]float32{input.AxisHatY: 0.7}, protocol.ButtonDpadDown},
		{"hat up", map[input.Axis]float32{input.AxisHatY: -1}, protocol.ButtonDpadUp},
		{"hat x before y", map[input.Axis]float32{input.AxisHatX: -1, input.AxisHatY: -1}, protocol.ButtonDpadLeft},
		{"hat before trigger", map[input.Axis]float32{input.AxisHatY: 1, input.AxisLTrigger: 1}, protocol.ButtonDpadDown},
		{"left trigger", map[input.Axis]float32{input.AxisLTrigger: 0.61}, protocol.LeftTrigger},
		{"right trigger", map[input.Axis]float32{input.AxisRTrigger: 0.9}, protocol.RightTrigger},
		{"larger trigger wins", map[input.Axis]float32{input.AxisLTrigger: 0.7, input.AxisRTrigger: 0.8}, protocol.RightTrigger},
		{"equal triggers pick left", map[input.Axis]float32{input.AxisLTrigger: 0.8, input.AxisRTrigger: 0.8}, protocol.LeftTrigger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cfg, _ := newMachine(t)
			require.NoError(t, m.StartFor(mapping.ControlButtonA))

			consumed, b, err := m.HandleMotion(move(tt.axes))
			require.NoError(t, err)
			assert.True(t, consumed)
			require.NotNil(t, b)
			assert.Equal(t, tt.want, b.Code)
			assert.Equal(t, tt.want, cfg.Get(mapping.ControlButtonA))
		})
	}
}

func TestButtonMotionNoCandidate(t *testing.T) {
	tests := map[string]map[input.Axis]float32{
		"hat below threshold":   {input.AxisHatX: 0.49, input.AxisHatY: -0.49},
		"trigger at threshold":  {input.AxisLTrigger: 0.6},
		"negative trigger":      {input.AxisRTrigger: -0.9},
		"stick is not a button": {input.AxisX: 1},
		"nothing":               nil,
	}
	for name, axes := range tests {
		t.Run(name, func(t *testing.T) {
			m, _, kv := newMachine(t)
			require.NoError(t, m.StartFor(mapping.ControlButtonA))

			consumed, b, err := m.HandleMotion(move(axes))
			require.NoError(t, err)
			assert.True(t, consumed)
			assert.Nil(t, b)
			assert.True(t, m.Armed())
			assert.Zero(t, kv.Writes)
		})
	}
}

func TestAxisMotionCapture(t *testing.T) {
	tests := []struct {
		name string
		axes map[input.Axis]float32
		want protocol.Code
	}{
		{"left x before near tie", map[input.Axis]float32{input.AxisX: 0.7, input.AxisRZ: 0.65}, protocol.AxisLX},
		{"largest magnitude", map[input.Axis]float32{input.AxisX: 0.7, input.AxisRZ: -0.9}, protocol.AxisRY},
		{"exact tie goes to first", map[input.Axis]float32{input.AxisY: -0.8, input.AxisZ: 0.8}, protocol.AxisLY},
		{"trigger", map[input.Axis]float32{input.AxisLTrigger: 0.95, input.AxisX: 0.7}, protocol.AxisLT},
		{"right trigger after larger left trigger", map[input.Axis]float32{input.AxisLTrigger: 0.9, input.AxisRTrigger: 0.7}, protocol.AxisLT},
		{"right trigger largest", map[input.Axis]float32{input.AxisLTrigger: 0.7, input.AxisRTrigger: 0.9}, protocol.AxisRT},
		{"right trigger below earlier stick", map[input.Axis]float32{input.AxisX: -0.99, input.AxisRTrigger: 0.8}, protocol.AxisLX},
		{"negative trigger clamps", map[input.Axis]float32{input.AxisLTrigger: -1, input.AxisZ: 0.61}, protocol.AxisRX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cfg, _ := newMachine(t)
			require.NoError(t, m.StartFor(mapping.ControlAxisRightY))

			_, b, err := m.HandleMotion(move(tt.axes))
			require.NoError(t, err)
			require.NotNil(t, b)
			assert.Equal(t, tt.want, b.Code)
			assert.Equal(t, tt.want, cfg.Get(mapping.ControlAxisRightY))
			assert.Equal(t, tt.want.Label(), b.Label)
		})
	}
}

func TestAxisMotionBelowThreshold(t *testing.T) {
	m, _, _ := newMachine(t)
	require.NoError(t, m.StartFor(mapping.ControlAxisLeftX))

	for _, axes := range []map[input.Axis]float32{
		{input.AxisX: 0.6, input.AxisY: -0.6},
		{input.AxisHatX: 1},
		{input.AxisLTrigger: -0.9, input.AxisRTrigger: 0.3},
	} {
		consumed, b, err := m.HandleMotion(move(axes))
		require.NoError(t, err)
		assert.True(t, consumed)
		assert.Nil(t, b)
	}
	assert.True(t, m.Armed())
}

func TestMotionNonMoveConsumed(t *testing.T) {
	m, _, _ := newMachine(t)
	require.NoError(t, m.StartFor(mapping.ControlAxisLeftX))

	ev := move(map[input.Axis]float32{input.AxisX: 1})
	ev.Action = input.MotionScroll
	consumed, b, _ := m.HandleMotion(ev)
	assert.True(t, consumed)
	assert.Nil(t, b)

	ev.Source = input.SourceMouse
	consumed, _, _ = m.HandleMotion(ev)
	assert.False(t, consumed)
}

func TestBindingString(t *testing.T) {
	b := capture.Binding{Control: mapping.ControlButtonLb, Code: protocol.ButtonDpadUp, Label: protocol.ButtonDpadUp.Label()}
	assert.Equal(t, "LB = DPAD UP", b.String())
}
