package translator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/padmap/input"
	th "github.com/Alia5/padmap/internal/testing"
	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/protocol"
	"github.com/Alia5/padmap/translator"
)

func touch(action input.TouchAction, id int, ps ...input.Pointer) input.TouchEvent {
	return input.TouchEvent{Action: action, PointerID: id, Pointers: ps}
}

func TestTouchPath(t *testing.T) {
	cfg := mapping.NewConfig()
	cfg.OverlayControlsEnabled = false
	sink := &th.RecordingSink{}
	tr := translator.New(cfg, sink, translator.Options{RenderScale: 2})

	assert.True(t, tr.HandleTouch(touch(input.TouchDown, 0, input.Pointer{ID: 0, X: 10, Y: 20})))
	assert.False(t, tr.HandleTouch(touch(input.TouchMove, 0, input.Pointer{ID: 0, X: 11, Y: 21})))
	assert.False(t, tr.HandleTouch(touch(input.TouchUp, 3)))
	assert.True(t, tr.HandleTouch(touch(input.TouchUp, 0, input.Pointer{ID: 0, X: 11, Y: 21})))

	assert.Equal(t, []protocol.Event{
		{Kind: protocol.KindCursorMove, X: 20, Y: 40},
		{Kind: protocol.KindMouseButton, Code: protocol.MouseButtonLeft, Pressed: true},
		{Kind: protocol.KindCursorMove, X: 22, Y: 42},
		{Kind: protocol.KindMouseButton, Code: protocol.MouseButtonLeft, Pressed: false},
	}, sink.Events)
}

func TestTouchOverlayKeepsDown(t *testing.T) {
	cfg := mapping.NewConfig()
	sink := &th.RecordingSink{}
	tr := translator.New(cfg, sink, translator.Options{})

	assert.False(t, tr.HandleTouch(touch(input.TouchDown, 0, input.Pointer{ID: 0})))
	assert.Len(t, sink.Of(protocol.KindMouseButton), 1)
}

func TestTouchPointerUpAndCancel(t *testing.T) {
	cfg := mapping.NewConfig()
	sink := &th.RecordingSink{}
	tr := translator.New(cfg, sink, translator.Options{})

	tr.HandleTouch(touch(input.TouchPointerDown, 2, input.Pointer{ID: 1}, input.Pointer{ID: 2, X: 5, Y: 5}))
	assert.True(t, tr.HandleTouch(touch(input.TouchPointerUp, 2, input.Pointer{ID: 1}, input.Pointer{ID: 2})))

	tr.HandleTouch(touch(input.TouchDown, 0, input.Pointer{ID: 0}))
	assert.True(t, tr.HandleTouch(touch(input.TouchCancel, 0)))
	assert.False(t, tr.HandleTouch(touch(input.TouchCancel, 0)))

	buttons := sink.Of(protocol.KindMouseButton)
	assert.Len(t, buttons, 4)
	assert.False(t, buttons[3].Pressed)
}

func TestTouchDownWithoutPointer(t *testing.T) {
	tr := translator.New(mapping.NewConfig(), &th.RecordingSink{}, translator.Options{})
	assert.False(t, tr.HandleTouch(touch(input.TouchDown, 4)))
	assert.False(t, tr.HandleTouch(touch(input.TouchMove, 4)))
}
