// Package session routes the raw events of one controller session: to the
// capture machine while a rebind is armed, to the translator otherwise.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alia5/padmap/capture"
	"github.com/Alia5/padmap/input"
	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/protocol"
	"github.com/Alia5/padmap/translator"
)

// Result describes what happened to one event.
type Result struct {
	// Handled is true when the event must not be processed further.
	Handled bool
	// Binding is set when the event completed a capture.
	Binding *capture.Binding
}

type options struct {
	classifier  input.Classifier
	renderScale float32
	logger      *slog.Logger
}

type Option func(*options)

// WithClassifier replaces the gamepad source test.
func WithClassifier(c input.Classifier) Option {
	return func(o *options) { o.classifier = c }
}

// WithRenderScale scales touch coordinates before they reach the engine.
func WithRenderScale(scale float32) Option {
	return func(o *options) { o.renderScale = scale }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Session owns the translator and capture machine sharing one configuration.
// All methods must be called from the same goroutine.
type Session struct {
	cfg        *mapping.Config
	translator *translator.Translator
	capture    *capture.Machine
	logger     *slog.Logger
}

func New(cfg *mapping.Config, saver capture.Saver, sink protocol.Sink, opts ...Option) *Session {
	o := options{classifier: input.IsGamepadSource, renderScale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cfg: cfg,
		translator: translator.New(cfg, sink, translator.Options{
			Classifier:  o.classifier,
			RenderScale: o.renderScale,
			Logger:      o.logger.With("component", "translator"),
		}),
		capture: capture.New(cfg, saver, capture.Options{
			Classifier: o.classifier,
			Logger:     o.logger.With("component", "capture"),
		}),
		logger: o.logger,
	}
}

func (s *Session) Config() *mapping.Config            { return s.cfg }
func (s *Session) Capture() *capture.Machine          { return s.capture }
func (s *Session) Translator() *translator.Translator { return s.translator }

// HandleKey routes a key event. The error is only set when a capture commit
// could not be saved.
func (s *Session) HandleKey(ev input.KeyEvent) (Result, error) {
	if s.capture.Armed() {
		consumed, b, err := s.capture.HandleKey(ev)
		return Result{Handled: consumed, Binding: b}, err
	}
	return Result{Handled: s.translator.HandleKey(ev)}, nil
}

// HandleMotion routes a motion event.
func (s *Session) HandleMotion(ev input.MotionEvent) (Result, error) {
	if s.capture.Armed() {
		consumed, b, err := s.capture.HandleMotion(ev)
		return Result{Handled: consumed, Binding: b}, err
	}
	return Result{Handled: s.translator.HandleMotion(ev)}, nil
}

// HandleTouch forwards a touch event to the translator. Touch never takes
// part in a capture.
func (s *Session) HandleTouch(ev input.TouchEvent) Result {
	return Result{Handled: s.translator.HandleTouch(ev)}
}

// Run replays steps in order and returns the bindings committed on the way.
// It stops at the first failing step or when ctx is done.
func (s *Session) Run(ctx context.Context, steps []input.Step) ([]capture.Binding, error) {
	var bindings []capture.Binding
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return bindings, err
		}
		res, err := s.Step(step)
		if err != nil {
			return bindings, fmt.Errorf("step %d: %w", i, err)
		}
		if res.Binding != nil {
			s.logger.Info("captured", "control", res.Binding.Control, "code", res.Binding.Code, "label", res.Binding.Label)
			bindings = append(bindings, *res.Binding)
		}
	}
	return bindings, nil
}

// Step applies one script step.
func (s *Session) Step(step input.Step) (Result, error) {
	switch {
	case step.Key != nil:
		return s.HandleKey(*step.Key)
	case step.Motion != nil:
		return s.HandleMotion(*step.Motion)
	case step.Touch != nil:
		return s.HandleTouch(*step.Touch), nil
	case step.Capture != "":
		ctl, err := mapping.ParseControl(step.Capture)
		if err != nil {
			return Result{}, err
		}
		return Result{}, s.capture.StartFor(ctl)
	case step.Cancel:
		s.capture.Cancel()
	}
	return Result{}, nil
}
