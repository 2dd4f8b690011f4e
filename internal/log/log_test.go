package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/padmap/protocol"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace": LevelTrace,
		"DEBUG": slog.LevelDebug,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestConsoleHandlerSplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(NewConsoleHandler(&stdout, &stderr, LevelTrace))

	logger.Log(context.Background(), LevelTrace, "per event")
	logger.Info("hello", "k", 1)
	logger.Error("boom")

	out := stdout.String()
	assert.Contains(t, out, "level=TRACE msg=\"per event\"")
	assert.Contains(t, out, "msg=hello k=1")
	assert.NotContains(t, out, "boom")
	assert.Contains(t, stderr.String(), "msg=boom")
	assert.NotContains(t, stderr.String(), "hello")
}

func TestConsoleHandlerLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(NewConsoleHandler(&stdout, &stderr, slog.LevelInfo))
	logger.Debug("hidden")
	logger.With("component", "translator").Info("shown")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "msg=shown component=translator")
}

func TestEventLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &eventLogger{w: &buf, now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }}

	l.Log(protocol.Event{Kind: protocol.KindJoystickButton, Code: 3, Pressed: true})
	l.Log(protocol.Event{Kind: protocol.KindJoystickDpad, Mask: 5})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"2024/01/02 03:04:05.000 joystickButton(3, true) hex: 04 03 01 00 00 00 00 00 00",
		"2024/01/02 03:04:05.000 joystickDpad(0, 0b0101) hex: 06 00 05 00 00 00 00 00 00",
	}, lines)

	// nil writer is a no-op
	NewEvents(nil).Log(protocol.Event{Kind: protocol.KindJoystickConnected})
}
