package input

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Step is one entry of a recorded event script. Exactly one field is set.
// Capture names a logical control to arm a rebind for; Cancel drops an armed
// rebind.
type Step struct {
	Key     *KeyEvent
	Motion  *MotionEvent
	Touch   *TouchEvent
	Capture string
	Cancel  bool
}

type rawStep struct {
	Key     *rawKey    `yaml:"key"`
	Motion  *rawMotion `yaml:"motion"`
	Touch   *rawTouch  `yaml:"touch"`
	Capture string     `yaml:"capture"`
	Cancel  bool       `yaml:"cancel"`
}

type rawKey struct {
	Code   string `yaml:"code"`
	Action string `yaml:"action"`
	Repeat int    `yaml:"repeat"`
	Source string `yaml:"source"`
}

type rawMotion struct {
	Action string             `yaml:"action"`
	Source string             `yaml:"source"`
	Axes   map[string]float32 `yaml:"axes"`
}

type rawTouch struct {
	Action   string       `yaml:"action"`
	Pointer  int          `yaml:"pointer"`
	Pointers []rawPointer `yaml:"pointers"`
}

type rawPointer struct {
	ID int     `yaml:"id"`
	X  float32 `yaml:"x"`
	Y  float32 `yaml:"y"`
}

const defaultScriptSource = "gamepad"

// ReadScript decodes a YAML (or JSON) list of steps. Each step holds exactly
// one of key, motion, touch, capture or cancel, for example
// {key: {code: BUTTON_A, action: down}} or {motion: {axes: {X: 0.7}}}.
func ReadScript(r io.Reader) ([]Step, error) {
	var raw []rawStep
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}

	steps := make([]Step, 0, len(raw))
	for i, rs := range raw {
		st, err := rs.step()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func (rs rawStep) step() (Step, error) {
	set := 0
	for _, b := range []bool{rs.Key != nil, rs.Motion != nil, rs.Touch != nil, rs.Capture != "", rs.Cancel} {
		if b {
			set++
		}
	}
	if set != 1 {
		return Step{}, fmt.Errorf("expected exactly one of key, motion, touch, capture, cancel; got %d", set)
	}

	switch {
	case rs.Key != nil:
		ev, err := rs.Key.event()
		return Step{Key: ev}, err
	case rs.Motion != nil:
		ev, err := rs.Motion.event()
		return Step{Motion: ev}, err
	case rs.Touch != nil:
		ev, err := rs.Touch.event()
		return Step{Touch: ev}, err
	case rs.Capture != "":
		return Step{Capture: rs.Capture}, nil
	default:
		return Step{Cancel: true}, nil
	}
}

func sourceOrDefault(s string) (Source, error) {
	if s == "" {
		s = defaultScriptSource
	}
	return ParseSource(s)
}

func (rk rawKey) event() (*KeyEvent, error) {
	code, err := ParseKeyCode(rk.Code)
	if err != nil {
		return nil, err
	}
	action, err := ParseKeyAction(rk.Action)
	if err != nil {
		return nil, err
	}
	src, err := sourceOrDefault(rk.Source)
	if err != nil {
		return nil, err
	}
	return &KeyEvent{Code: code, Action: action, Repeat: rk.Repeat, Source: src}, nil
}

func (rm rawMotion) event() (*MotionEvent, error) {
	action, err := ParseMotionAction(rm.Action)
	if err != nil {
		return nil, err
	}
	src, err := sourceOrDefault(rm.Source)
	if err != nil {
		return nil, err
	}
	axes := make(map[Axis]float32, len(rm.Axes))
	for name, v := range rm.Axes {
		a, err := ParseAxis(name)
		if err != nil {
			return nil, err
		}
		axes[a] = v
	}
	return &MotionEvent{Action: action, Axes: axes, Source: src}, nil
}

func (rt rawTouch) event() (*TouchEvent, error) {
	action, err := ParseTouchAction(rt.Action)
	if err != nil {
		return nil, err
	}
	ev := &TouchEvent{Action: action, PointerID: rt.Pointer}
	for _, p := range rt.Pointers {
		ev.Pointers = append(ev.Pointers, Pointer{ID: p.ID, X: p.X, Y: p.Y})
	}
	return ev, nil
}
