package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/padmap/engine"
	"github.com/Alia5/padmap/internal/log"
	"github.com/Alia5/padmap/protocol"
	"github.com/Alia5/padmap/session"
)

// Replay feeds a recorded script through the router and delivers the
// resulting protocol events.
type Replay struct {
	Script      string            `arg:"" help:"Recorded input script (YAML or JSON), - for stdin" default:"-"`
	Engine      engine.LinkConfig `embed:"" prefix:"engine."`
	Output      string            `help:"Write the encoded event stream to this file" type:"path"`
	RenderScale float32           `help:"Touch coordinate scale" default:"1" env:"PADMAP_RENDER_SCALE"`
}

func (r *Replay) Run(logger *slog.Logger, events log.EventLogger, sc *StoreConfig, launch *session.LaunchToken) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	steps, err := readScript(r.Script)
	if err != nil {
		return err
	}
	store, cfg, err := sc.load(logger)
	if err != nil {
		return err
	}

	sinks := []protocol.Sink{engine.LogSink{Logger: logger}}
	var streams []*engine.StreamSink
	traced := false

	if r.Engine.Addr != "" {
		if !launch.Consume() {
			return session.ErrEngineLaunched
		}
		link, err := engine.Dial(ctx, r.Engine, events, logger)
		if err != nil {
			return err
		}
		defer link.Close()
		sinks = append(sinks, link)
		streams = append(streams, link.StreamSink)
		traced = true
	}
	if r.Output != "" {
		f, err := os.Create(r.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		var fileEvents log.EventLogger
		if !traced {
			fileEvents, traced = events, true
		}
		out := engine.NewStreamSink(f, fileEvents)
		sinks = append(sinks, out)
		streams = append(streams, out)
	}
	if !traced {
		sinks = append(sinks, protocol.EventSink(events.Log))
	}

	s := session.New(cfg, store, engine.Multi(sinks...),
		session.WithLogger(logger),
		session.WithRenderScale(r.RenderScale),
	)
	bindings, err := s.Run(ctx, steps)
	if err != nil {
		return err
	}

	var errs []error
	for _, st := range streams {
		errs = append(errs, st.Err())
	}
	logger.Info("replay finished", "steps", len(steps), "captures", len(bindings))
	return errors.Join(errs...)
}
