// Package engine delivers protocol events to the game engine: through slog,
// as an encoded byte stream, or over a network link to a remote bridge.
package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/Alia5/padmap/internal/log"
	"github.com/Alia5/padmap/protocol"
)

// LogSink logs every event at debug level.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) sink() protocol.EventSink {
	return func(e protocol.Event) {
		s.Logger.Debug("protocol event", "kind", e.Kind, "event", e.String())
	}
}

func (s LogSink) CursorMove(x, y float32) {
	s.sink().CursorMove(x, y)
}

func (s LogSink) MouseButton(code int, pressed bool) {
	s.sink().MouseButton(code, pressed)
}

func (s LogSink) JoystickConnected() {
	s.sink().JoystickConnected()
}

func (s LogSink) JoystickButton(code int, pressed bool) {
	s.sink().JoystickButton(code, pressed)
}

func (s LogSink) JoystickAxis(code int, value float32) {
	s.sink().JoystickAxis(code, value)
}

func (s LogSink) JoystickDpad(pad int, mask uint8) {
	s.sink().JoystickDpad(pad, mask)
}

// StreamSink writes the binary encoding of every event to W. Sink calls have
// no return value, so the first write error is kept and later events are
// dropped; Err reports it.
type StreamSink struct {
	w      io.Writer
	events log.EventLogger

	mu  sync.Mutex
	err error
}

// NewStreamSink returns a sink writing to w. events may be nil.
func NewStreamSink(w io.Writer, events log.EventLogger) *StreamSink {
	return &StreamSink{w: w, events: events}
}

func (s *StreamSink) send(e protocol.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	b, err := e.MarshalBinary()
	if err == nil {
		_, err = s.w.Write(b)
	}
	if err != nil {
		s.err = err
		return
	}
	if s.events != nil {
		s.events.Log(e)
	}
}

// Err returns the first write error.
func (s *StreamSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *StreamSink) CursorMove(x, y float32) {
	s.send(protocol.Event{Kind: protocol.KindCursorMove, X: x, Y: y})
}

func (s *StreamSink) MouseButton(code int, pressed bool) {
	s.send(protocol.Event{Kind: protocol.KindMouseButton, Code: code, Pressed: pressed})
}

func (s *StreamSink) JoystickConnected() {
	s.send(protocol.Event{Kind: protocol.KindJoystickConnected})
}

func (s *StreamSink) JoystickButton(code int, pressed bool) {
	s.send(protocol.Event{Kind: protocol.KindJoystickButton, Code: code, Pressed: pressed})
}

func (s *StreamSink) JoystickAxis(code int, value float32) {
	s.send(protocol.Event{Kind: protocol.KindJoystickAxis, Code: code, Value: value})
}

func (s *StreamSink) JoystickDpad(pad int, mask uint8) {
	s.send(protocol.Event{Kind: protocol.KindJoystickDpad, Pad: pad, Mask: mask})
}

// Multi fans every event out to all sinks in order.
func Multi(sinks ...protocol.Sink) protocol.Sink {
	return protocol.EventSink(func(e protocol.Event) {
		for _, s := range sinks {
			protocol.Dispatch(s, e)
		}
	})
}

// ReadEvents decodes encoded events from r until EOF or ctx is done and hands
// each to fn. A clean EOF between events returns nil.
func ReadEvents(ctx context.Context, r io.Reader, fn func(protocol.Event)) error {
	buf := make([]byte, protocol.EventSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var e protocol.Event
		if err := e.UnmarshalBinary(buf); err != nil {
			return err
		}
		fn(e)
	}
}
