package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/Alia5/padmap/engine"
	"github.com/Alia5/padmap/internal/configpaths"
	"github.com/Alia5/padmap/internal/log"
	"github.com/Alia5/padmap/protocol"
)

const keyFileName = "padmap.key.txt"

// Bridge is the receiving end of an engine link. It logs every event it
// gets, which makes it a stand-in engine for checking a mapping.
type Bridge struct {
	Addr     string `help:"Listen address" default:":7420" env:"PADMAP_BRIDGE_ADDR"`
	Password string `help:"Link password; read from or generated into the key file when empty" env:"PADMAP_BRIDGE_PASSWORD"`
	Insecure bool   `help:"Accept unencrypted links" env:"PADMAP_BRIDGE_INSECURE"`
}

func (b *Bridge) Run(logger *slog.Logger, events log.EventLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	password, err := b.resolvePassword(logger)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", b.Addr)
	if err != nil {
		return err
	}
	logger.Info("engine bridge listening", "addr", ln.Addr().String(), "encrypted", password != "")
	return serveBridge(ctx, ln, password, events, logger)
}

func (b *Bridge) resolvePassword(logger *slog.Logger) (string, error) {
	if b.Insecure || b.Password != "" {
		return b.Password, nil
	}
	dir, err := configpaths.DefaultConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve key file path: %w", err)
	}
	keyFile := filepath.Join(dir, keyFileName)
	if pwd, err := os.ReadFile(keyFile); err == nil {
		return strings.TrimSpace(string(pwd)), nil
	}

	pwd, err := engine.GeneratePassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate link password: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config dir for key file: %w", err)
	}
	if err := os.WriteFile(keyFile, []byte(pwd), 0o600); err != nil {
		return "", fmt.Errorf("failed to write link password: %w", err)
	}
	logger.Info("generated link password", "path", keyFile, "password", pwd)
	return pwd, nil
}

// serveBridge accepts links until ctx is done. Open links are closed on
// cancel and waited for before it returns.
func serveBridge(ctx context.Context, ln net.Listener, password string, events log.EventLogger, logger *slog.Logger) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
			defer stop()
			l := logger.With("remote", conn.RemoteAddr().String())
			sc, err := engine.Accept(conn, password)
			if err != nil {
				l.Warn("link rejected", "error", err)
				return
			}
			l.Info("link established")
			err = engine.ReadEvents(ctx, sc, func(e protocol.Event) {
				l.Debug("received", "event", e.String())
				events.Log(e)
			})
			if err != nil {
				l.Warn("link closed", "error", err)
				return
			}
			l.Info("link closed")
		}()
	}
}
