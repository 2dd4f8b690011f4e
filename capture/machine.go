// Package capture implements interactive rebinding: a capture armed for one
// logical control takes over controller events until a press or movement
// proposes an allowed code, which is then written to the mapping and saved.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Alia5/padmap/input"
	"github.com/Alia5/padmap/internal/log"
	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/protocol"
)

var (
	ErrCaptureActive    = errors.New("capture already active")
	ErrCategoryMismatch = errors.New("code category does not match control")
)

// Saver persists a configuration. *mapping.Store implements it.
type Saver interface {
	Save(cfg *mapping.Config) error
}

// Session is an armed capture.
type Session struct {
	Control  mapping.LogicalControl
	Allowed  []protocol.Code
	Category protocol.Category
}

// Binding is the result of a committed capture.
type Binding struct {
	Control mapping.LogicalControl
	Code    protocol.Code
	// Label is the display label of Code.
	Label string
}

func (b Binding) String() string {
	return fmt.Sprintf("%s = %s", b.Control.Name(), b.Label)
}

type Options struct {
	// Classifier defaults to input.IsGamepadSource.
	Classifier input.Classifier
	Logger     *slog.Logger
}

// Machine is the capture state machine. It is either idle (session nil) or
// armed with exactly one session. Not safe for concurrent use.
type Machine struct {
	cfg        *mapping.Config
	saver      Saver
	classifier input.Classifier
	logger     *slog.Logger

	session *Session
}

func New(cfg *mapping.Config, saver Saver, opts Options) *Machine {
	if opts.Classifier == nil {
		opts.Classifier = input.IsGamepadSource
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Machine{cfg: cfg, saver: saver, classifier: opts.Classifier, logger: logger}
}

// Start arms a capture for ctl. Only codes in allowed are committed; nil
// allowed means every option of the category. Start fails without changing
// state when a capture is already armed or the category does not fit.
func (m *Machine) Start(ctl mapping.LogicalControl, allowed []protocol.Code, cat protocol.Category) error {
	if m.session != nil {
		return ErrCaptureActive
	}
	if !ctl.Valid() || ctl.Category() != cat {
		return fmt.Errorf("%w: %s is a %s control", ErrCategoryMismatch, ctl, ctl.Category())
	}
	if allowed == nil {
		allowed = protocol.Options(cat)
	}
	for _, c := range allowed {
		if c.Category() != cat {
			return fmt.Errorf("%w: %s is not a %s code", ErrCategoryMismatch, c, cat)
		}
	}

	m.session = &Session{Control: ctl, Allowed: slices.Clone(allowed), Category: cat}
	m.logger.Debug("capture armed", "control", ctl, "category", cat)
	return nil
}

// StartFor arms a capture for ctl accepting every option of its category.
func (m *Machine) StartFor(ctl mapping.LogicalControl) error {
	return m.Start(ctl, ctl.Options(), ctl.Category())
}

// Cancel drops the armed capture, if any.
func (m *Machine) Cancel() {
	if m.session == nil {
		return
	}
	m.logger.Debug("capture cancelled", "control", m.session.Control)
	m.session = nil
}

// Armed reports whether a capture is in progress.
func (m *Machine) Armed() bool { return m.session != nil }

// Session returns a copy of the armed session.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	s := *m.session
	s.Allowed = slices.Clone(s.Allowed)
	return s, true
}

// HandleKey feeds a key event to the armed capture. Every event from a
// qualifying source is consumed while armed. A non-nil Binding means the
// capture committed; an error means the commit could not be saved.
func (m *Machine) HandleKey(ev input.KeyEvent) (bool, *Binding, error) {
	if m.session == nil || !m.classifier(ev.Source) {
		return false, nil, nil
	}
	if ev.Action != input.KeyDown || ev.Repeat > 0 {
		return true, nil, nil
	}
	code, ok := keyCandidate(ev.Code, m.session.Category)
	if !ok {
		m.trace("no candidate for key", "code", ev.Code)
		return true, nil, nil
	}
	b, err := m.offer(code)
	return true, b, err
}

// HandleMotion feeds a motion event to the armed capture.
func (m *Machine) HandleMotion(ev input.MotionEvent) (bool, *Binding, error) {
	if m.session == nil || !m.classifier(ev.Source) {
		return false, nil, nil
	}
	if ev.Action != input.MotionMove {
		return true, nil, nil
	}

	var (
		code protocol.Code
		ok   bool
	)
	if m.session.Category == protocol.CategoryAxis {
		code, ok = axisMotionCandidate(ev)
	} else {
		code, ok = buttonMotionCandidate(ev)
	}
	if !ok {
		return true, nil, nil
	}
	b, err := m.offer(code)
	return true, b, err
}

// offer commits code when the session allows it. The session ends either way
// once a commit is attempted; on a save failure the slot is restored.
func (m *Machine) offer(code protocol.Code) (*Binding, error) {
	s := m.session
	if !slices.Contains(s.Allowed, code) {
		m.trace("candidate not allowed", "control", s.Control, "code", code)
		return nil, nil
	}

	prev := m.cfg.Get(s.Control)
	if err := m.cfg.Set(s.Control, code); err != nil {
		m.trace("candidate rejected by mapping", "control", s.Control, "code", code, "error", err)
		return nil, nil
	}
	m.session = nil

	if err := m.saver.Save(m.cfg); err != nil {
		_ = m.cfg.Set(s.Control, prev)
		m.logger.Error("capture could not be saved", "control", s.Control, "code", code, "error", err)
		return nil, fmt.Errorf("commit %s: %w", s.Control, err)
	}

	b := &Binding{Control: s.Control, Code: code, Label: code.Label()}
	m.logger.Info("control rebound", "control", s.Control, "code", code)
	return b, nil
}

func (m *Machine) trace(msg string, args ...any) {
	m.logger.Log(context.Background(), log.LevelTrace, msg, args...)
}
