package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/padmap/engine"
	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/session"
)

// ErrNoCapture is returned when a script ends before the control was rebound.
var ErrNoCapture = errors.New("input ended without a usable press or movement")

// Capture rebinds one control from recorded input.
type Capture struct {
	Control string `arg:"" help:"Control to rebind (e.g. buttonA, axisLeftX)"`
	Script  string `arg:"" help:"Recorded input script (YAML or JSON), - for stdin" default:"-"`
}

func (c *Capture) Run(logger *slog.Logger, sc *StoreConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctl, err := mapping.ParseControl(c.Control)
	if err != nil {
		return err
	}
	steps, err := readScript(c.Script)
	if err != nil {
		return err
	}
	store, cfg, err := sc.load(logger)
	if err != nil {
		return err
	}

	s := session.New(cfg, store, engine.LogSink{Logger: logger}, session.WithLogger(logger))
	if err := s.Capture().StartFor(ctl); err != nil {
		return err
	}
	logger.Info("waiting for input", "control", ctl.Name(), "current", cfg.Label(ctl))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := s.Step(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if res.Binding != nil {
			fmt.Println(res.Binding)
			return nil
		}
	}
	return ErrNoCapture
}
