// Package config declares the padmap command line.
package config

import (
	"github.com/Alia5/padmap/internal/cmd"
	"github.com/Alia5/padmap/internal/log"
)

// CLI is the root command line; kong fills it from flags, environment and
// configuration files.
type CLI struct {
	Config string          `help:"Configuration file (json, yaml or toml)" env:"PADMAP_CONFIG" type:"path"`
	Log    log.Config      `embed:"" prefix:"log."`
	Store  cmd.StoreConfig `embed:"" prefix:"store."`

	Mapping   cmd.MappingCommand `cmd:"" help:"Show or edit the external controller mapping"`
	Capture   cmd.Capture        `cmd:"" help:"Rebind a control from recorded input"`
	Replay    cmd.Replay         `cmd:"" help:"Replay recorded input and deliver the protocol events"`
	Bridge    cmd.Bridge         `cmd:"" help:"Receive and log protocol events from an engine link"`
	ConfigCmd cmd.ConfigCommand  `cmd:"" name:"config" help:"Configuration helpers"`
}
