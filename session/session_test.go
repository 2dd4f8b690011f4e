package session_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padmap/capture"
	"github.com/Alia5/padmap/input"
	th "github.com/Alia5/padmap/internal/testing"
	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/protocol"
	"github.com/Alia5/padmap/session"
)

func newSession(t *testing.T) (*session.Session, *th.RecordingSink, *th.FailingKV) {
	t.Helper()
	kv := th.NewFailingKV(t)
	store := mapping.NewStore(kv, nil, nil)
	cfg, err := store.Load()
	require.NoError(t, err)
	sink := &th.RecordingSink{}
	return session.New(cfg, store, sink), sink, kv
}

func key(code input.KeyCode, action input.KeyAction) input.KeyEvent {
	return input.KeyEvent{Code: code, Action: action, Source: input.SourceGamepad}
}

func TestRoutesToTranslatorWhenIdle(t *testing.T) {
	s, sink, _ := newSession(t)

	res, err := s.HandleKey(key(input.KeyButtonX, input.KeyDown))
	require.NoError(t, err)
	assert.True(t, res.Handled)
	assert.Nil(t, res.Binding)
	assert.Equal(t, []protocol.Event{th.Connected(), th.Button(protocol.ButtonX, true)}, sink.Events)
}

func TestCaptureSuppressesTranslation(t *testing.T) {
	s, sink, kv := newSession(t)
	require.NoError(t, s.Capture().StartFor(mapping.ControlButtonA))

	res, err := s.HandleMotion(input.MotionEvent{
		Action: input.MotionMove,
		Axes:   map[input.Axis]float32{input.AxisX: 0.9},
		Source: input.SourceGamepad,
	})
	require.NoError(t, err)
	assert.True(t, res.Handled)

	res, err = s.HandleKey(key(input.KeyButtonB, input.KeyDown))
	require.NoError(t, err)
	require.NotNil(t, res.Binding)
	assert.Equal(t, protocol.ButtonB, res.Binding.Code)
	assert.Empty(t, sink.Events)

	// the release of the captured press now reaches the translator
	res, err = s.HandleKey(key(input.KeyButtonB, input.KeyUp))
	require.NoError(t, err)
	assert.True(t, res.Handled)
	assert.Equal(t, []protocol.Event{th.Connected(), th.Button(protocol.ButtonB, false)}, sink.Events)

	reloaded, err := mapping.NewStore(kv, nil, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, protocol.ButtonB, reloaded.Get(mapping.ControlButtonA))
}

func TestCaptureLeavesOtherSourcesAlone(t *testing.T) {
	s, sink, _ := newSession(t)
	require.NoError(t, s.Capture().StartFor(mapping.ControlButtonA))

	res, err := s.HandleKey(input.KeyEvent{Code: input.KeyButtonA, Action: input.KeyDown, Source: input.SourceKeyboard})
	require.NoError(t, err)
	assert.False(t, res.Handled)
	assert.Empty(t, sink.Events)
	assert.True(t, s.Capture().Armed())
}

func TestRepeatSuppression(t *testing.T) {
	s, sink, kv := newSession(t)
	repeat := input.KeyEvent{Code: input.KeyButtonA, Action: input.KeyDown, Repeat: 2, Source: input.SourceGamepad}

	res, err := s.HandleKey(repeat)
	require.NoError(t, err)
	assert.True(t, res.Handled)

	require.NoError(t, s.Capture().StartFor(mapping.ControlButtonY))
	res, err = s.HandleKey(repeat)
	require.NoError(t, err)
	assert.True(t, res.Handled)
	assert.Nil(t, res.Binding)

	assert.Empty(t, sink.Events)
	assert.Zero(t, kv.Writes)
}

func TestCaptureSaveFailure(t *testing.T) {
	s, _, kv := newSession(t)
	kv.Fail = true
	require.NoError(t, s.Capture().StartFor(mapping.ControlDpadUp))

	_, err := s.HandleKey(key(input.KeyButtonA, input.KeyDown))
	require.ErrorIs(t, err, th.ErrStorageFailed)
	assert.Equal(t, protocol.ButtonDpadUp, s.Config().Get(mapping.ControlDpadUp))
}

func TestTouchBypassesCapture(t *testing.T) {
	s, sink, _ := newSession(t)
	s.Config().OverlayControlsEnabled = false
	require.NoError(t, s.Capture().StartFor(mapping.ControlButtonA))

	res := s.HandleTouch(input.TouchEvent{Action: input.TouchDown, Pointers: []input.Pointer{{X: 1, Y: 2}}})
	assert.True(t, res.Handled)
	assert.Len(t, sink.Of(protocol.KindMouseButton), 1)
	assert.True(t, s.Capture().Armed())
}

const script = `
- capture: buttonLb
- motion: {axes: {LTRIGGER: 0.9}}
- key: {code: BUTTON_L1, action: down}
- motion: {axes: {LTRIGGER: 1}}
- key: {code: BUTTON_L1, action: up}
- key: {code: DPAD_UP, action: down}
- key: {code: DPAD_RIGHT, action: down}
- key: {code: DPAD_UP, action: up}
- capture: axisLeftX
- cancel: true
- motion: {axes: {X: 0.1}}
`

func TestRunScript(t *testing.T) {
	steps, err := input.ReadScript(strings.NewReader(script))
	require.NoError(t, err)

	s, sink, _ := newSession(t)
	bindings, err := s.Run(context.Background(), steps)
	require.NoError(t, err)

	assert.Equal(t, []capture.Binding{{
		Control: mapping.ControlButtonLb,
		Code:    protocol.LeftTrigger,
		Label:   "LTRIGGER",
	}}, bindings)

	axes := sink.Of(protocol.KindJoystickAxis)
	assert.Equal(t, th.Axis(protocol.AxisLT, 1), axes[0], "button path")
	assert.Contains(t, axes[1:7], th.Axis(protocol.AxisLT, 1), "analog path")
	assert.Equal(t, th.Axis(protocol.AxisLT, 0), axes[7])
	assert.Equal(t, []protocol.Event{th.Dpad(1), th.Dpad(3), th.Dpad(2)}, sink.Of(protocol.KindJoystickDpad))
	assert.Equal(t, th.Axis(protocol.AxisLX, 0), axes[8])
	assert.False(t, s.Capture().Armed())
}

func TestRunErrors(t *testing.T) {
	s, _, _ := newSession(t)

	_, err := s.Run(context.Background(), []input.Step{{Capture: "buttonA"}, {Capture: "buttonB"}})
	assert.ErrorIs(t, err, capture.ErrCaptureActive)
	assert.ErrorContains(t, err, "step 1")

	s.Capture().Cancel()
	_, err = s.Run(context.Background(), []input.Step{{Capture: "nope"}})
	assert.ErrorContains(t, err, `unknown control "nope"`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx, []input.Step{{Cancel: true}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLaunchToken(t *testing.T) {
	var token session.LaunchToken
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if token.Consume() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.True(t, token.Consumed())
	assert.False(t, token.Consume())
}
