package mapping

import (
	"encoding/json"

	"github.com/Alia5/padmap/protocol"
)

const (
	keyEnabled                = "enabled"
	keyAxisDeadZone           = "axisDeadZone"
	keyOverlayControlsEnabled = "overlayControlsEnabled"
)

// record returns the persisted shape: one flat entry per setting and per
// control slot, codes stored by identity name.
func (c *Config) record() map[string]any {
	m := make(map[string]any, int(ControlCount)+3)
	m[keyEnabled] = c.Enabled
	m[keyAxisDeadZone] = float64(c.AxisDeadZone)
	m[keyOverlayControlsEnabled] = c.OverlayControlsEnabled
	for i, code := range c.codes {
		m[LogicalControl(i).Key()] = code.String()
	}
	return m
}

// configFromRecord builds a Config from a decoded record. Missing fields keep
// their defaults; fields holding a value of the wrong type or a code that does
// not fit their slot also keep their defaults and are reported in rejected.
func configFromRecord(m map[string]any) (cfg *Config, rejected []string) {
	cfg = NewConfig()
	if v, ok := m[keyEnabled]; ok {
		if b, ok := v.(bool); ok {
			cfg.Enabled = b
		} else {
			rejected = append(rejected, keyEnabled)
		}
	}
	if v, ok := m[keyAxisDeadZone]; ok {
		if f, ok := toFloat(v); ok {
			cfg.AxisDeadZone = float32(f)
		} else {
			rejected = append(rejected, keyAxisDeadZone)
		}
	}
	if v, ok := m[keyOverlayControlsEnabled]; ok {
		if b, ok := v.(bool); ok {
			cfg.OverlayControlsEnabled = b
		} else {
			rejected = append(rejected, keyOverlayControlsEnabled)
		}
	}
	for _, ctl := range Controls() {
		v, ok := m[ctl.Key()]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			rejected = append(rejected, ctl.Key())
			continue
		}
		code, err := protocol.ParseCode(s)
		if err != nil {
			rejected = append(rejected, ctl.Key())
			continue
		}
		if err := cfg.Set(ctl, code); err != nil {
			rejected = append(rejected, ctl.Key())
		}
	}
	return cfg, rejected
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
