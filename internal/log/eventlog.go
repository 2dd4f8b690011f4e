package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/padmap/protocol"
)

// EventLogger traces outbound protocol events with their wire encoding.
type EventLogger interface {
	Log(e protocol.Event)
}

type eventLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewEvents creates a new EventLogger. If writer is nil, returns a no-op logger.
func NewEvents(w io.Writer) EventLogger {
	return &eventLogger{w: w, now: time.Now}
}

// Log emits a single line with timestamp, the event and a hex dump of its
// encoding.
func (l *eventLogger) Log(e protocol.Event) {
	if l.w == nil {
		return
	}
	data, err := e.MarshalBinary()
	if err != nil {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s hex: %s\n",
		l.now().Format("2006/01/02 15:04:05.000"),
		e,
		hexbuf.String())

	l.mu.Lock()
	_, _ = l.w.Write([]byte(line))
	l.mu.Unlock()
}
