package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/Alia5/padmap/mapping"
	"github.com/Alia5/padmap/protocol"
)

// MappingCommand groups the mapping editing subcommands.
type MappingCommand struct {
	Show     MappingShow     `cmd:"" default:"1" help:"Print the current mapping"`
	Set      MappingSet      `cmd:"" help:"Bind a control to a protocol code"`
	Reset    MappingReset    `cmd:"" help:"Restore the default mapping"`
	Deadzone MappingDeadzone `cmd:"" help:"Set the analog dead-zone (0 to 0.95)"`
	Enabled  MappingEnabled  `cmd:"" help:"Turn external controller support on or off"`
	Overlay  MappingOverlay  `cmd:"" help:"Turn the on-screen overlay controls on or off"`
	Options  MappingOptions  `cmd:"" help:"List the codes a control accepts"`
}

type MappingShow struct {
	Output string `help:"Output format; auto prints a table on a terminal and JSON otherwise" enum:"auto,table,json" default:"auto"`
}

func (c *MappingShow) Run(logger *slog.Logger, sc *StoreConfig) error {
	_, cfg, err := sc.load(logger)
	if err != nil {
		return err
	}
	asTable := c.Output == "table" || (c.Output == "auto" && term.IsTerminal(int(os.Stdout.Fd())))
	if asTable {
		return writeTable(os.Stdout, cfg)
	}
	return writeJSON(os.Stdout, cfg)
}

type MappingSet struct {
	Control string `arg:"" help:"Control key (e.g. buttonA, dpadUp, axisLeftX)"`
	Code    string `arg:"" help:"Protocol code (e.g. GAMEPAD_BUTTON_B, GAMEPAD_AXIS_RX)"`
}

func (c *MappingSet) Run(logger *slog.Logger, sc *StoreConfig) error {
	ctl, err := mapping.ParseControl(c.Control)
	if err != nil {
		return err
	}
	code, err := protocol.ParseCode(c.Code)
	if err != nil {
		return err
	}
	store, cfg, err := sc.load(logger)
	if err != nil {
		return err
	}
	if err := cfg.Set(ctl, code); err != nil {
		return err
	}
	if err := store.Save(cfg); err != nil {
		return err
	}
	logger.Info("control rebound", "control", ctl, "code", code, "label", cfg.Label(ctl))
	return nil
}

type MappingReset struct{}

func (c *MappingReset) Run(logger *slog.Logger, sc *StoreConfig) error {
	store, cfg, err := sc.load(logger)
	if err != nil {
		return err
	}
	if err := store.ResetToDefaults(cfg); err != nil {
		return err
	}
	logger.Info("mapping reset to defaults")
	return nil
}

type MappingDeadzone struct {
	Value float32 `arg:"" help:"Dead-zone; values outside the range are clamped"`
}

func (c *MappingDeadzone) Run(logger *slog.Logger, sc *StoreConfig) error {
	store, cfg, err := sc.load(logger)
	if err != nil {
		return err
	}
	cfg.SetAxisDeadZone(c.Value)
	if err := store.Save(cfg); err != nil {
		return err
	}
	logger.Info("dead-zone updated", "value", cfg.AxisDeadZone)
	return nil
}

type MappingEnabled struct {
	State string `arg:"" enum:"on,off" help:"on or off"`
}

func (c *MappingEnabled) Run(logger *slog.Logger, sc *StoreConfig) error {
	return toggle(logger, sc, "enabled", c.State, func(cfg *mapping.Config, on bool) { cfg.Enabled = on })
}

type MappingOverlay struct {
	State string `arg:"" enum:"on,off" help:"on or off"`
}

func (c *MappingOverlay) Run(logger *slog.Logger, sc *StoreConfig) error {
	return toggle(logger, sc, "overlay", c.State, func(cfg *mapping.Config, on bool) { cfg.OverlayControlsEnabled = on })
}

func toggle(logger *slog.Logger, sc *StoreConfig, name, state string, apply func(*mapping.Config, bool)) error {
	store, cfg, err := sc.load(logger)
	if err != nil {
		return err
	}
	on := state == "on"
	apply(cfg, on)
	if err := store.Save(cfg); err != nil {
		return err
	}
	logger.Info("setting updated", "setting", name, "on", on)
	return nil
}

type MappingOptions struct {
	Control string `arg:"" help:"Control key"`
}

func (c *MappingOptions) Run() error {
	ctl, err := mapping.ParseControl(c.Control)
	if err != nil {
		return err
	}
	for _, code := range ctl.Options() {
		fmt.Printf("%-28s %s\n", code, code.Label())
	}
	return nil
}

func writeTable(w io.Writer, cfg *mapping.Config) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "enabled\t%t\n", cfg.Enabled)
	fmt.Fprintf(tw, "dead-zone\t%.2f\n", cfg.AxisDeadZone)
	fmt.Fprintf(tw, "overlay\t%t\n", cfg.OverlayControlsEnabled)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CONTROL\tKEY\tBINDING")
	for _, ctl := range mapping.Controls() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ctl.Name(), ctl.Key(), cfg.Label(ctl))
	}
	return tw.Flush()
}

type jsonMapping struct {
	Enabled                bool              `json:"enabled"`
	AxisDeadZone           float32           `json:"axisDeadZone"`
	OverlayControlsEnabled bool              `json:"overlayControlsEnabled"`
	Controls               map[string]string `json:"controls"`
}

func writeJSON(w io.Writer, cfg *mapping.Config) error {
	out := jsonMapping{
		Enabled:                cfg.Enabled,
		AxisDeadZone:           cfg.AxisDeadZone,
		OverlayControlsEnabled: cfg.OverlayControlsEnabled,
		Controls:               make(map[string]string, mapping.ControlCount),
	}
	for _, ctl := range mapping.Controls() {
		out.Controls[ctl.Key()] = cfg.Get(ctl).String()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
