package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/Alia5/padmap/internal/log"
)

// Link is a Sink connected to a remote engine bridge.
type Link struct {
	*StreamSink
	conn net.Conn
}

// Close closes the connection.
func (l *Link) Close() error { return l.conn.Close() }

// LinkConfig configures Dial.
type LinkConfig struct {
	Addr     string        `help:"Engine bridge address (host:port)" env:"PADMAP_ENGINE_ADDR"`
	Password string        `help:"Link password; empty sends events unencrypted" env:"PADMAP_ENGINE_PASSWORD"`
	Timeout  time.Duration `help:"Connect and handshake timeout" default:"5s" env:"PADMAP_ENGINE_TIMEOUT"`
}

// Dial connects to the bridge at addr. With a password the connection is
// authenticated and encrypted. events may be nil.
func Dial(ctx context.Context, cfg LinkConfig, events log.EventLogger, logger *slog.Logger) (*Link, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("dial engine %s: %w", cfg.Addr, err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	link, err := DialConn(conn, cfg.Password)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})
	link.events = events
	if logger != nil {
		logger.Info("connected to engine", "addr", cfg.Addr, "encrypted", cfg.Password != "")
	}
	return link, nil
}

// DialConn runs the client side of the link on an established connection.
func DialConn(conn net.Conn, password string) (*Link, error) {
	if password != "" {
		sc, err := secure(conn, password, true)
		if err != nil {
			return nil, fmt.Errorf("engine handshake: %w", err)
		}
		conn = sc
	}
	return &Link{StreamSink: NewStreamSink(conn, nil), conn: conn}, nil
}

// Accept prepares an accepted bridge connection for reading events: with a
// password the client must complete the handshake.
func Accept(conn net.Conn, password string) (net.Conn, error) {
	if password == "" {
		return conn, nil
	}
	sc, err := secure(conn, password, false)
	if err != nil {
		return nil, fmt.Errorf("engine handshake: %w", err)
	}
	return sc, nil
}
