package main

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/Alia5/padmap/internal/config"
	"github.com/Alia5/padmap/internal/configpaths"
	"github.com/Alia5/padmap/internal/log"
	"github.com/Alia5/padmap/session"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("padmap"),
		kong.Description("External controller mapping and capture for virtual gamepad engines"),
		kong.UsageOnError(),
		// flags and env override config file values
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closers, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	var eventsOut io.Writer
	switch {
	case cli.Log.EventsFile != "":
		f, err := os.OpenFile(cli.Log.EventsFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open events log file", "file", cli.Log.EventsFile, "error", err)
			break
		}
		eventsOut = f
		closers = append(closers, f)
	case log.ParseLevel(cli.Log.Level) <= log.LevelTrace:
		eventsOut = os.Stdout
	}

	ctx.Bind(logger, &cli.Store, &session.LaunchToken{})
	ctx.BindTo(log.NewEvents(eventsOut), (*log.EventLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("PADMAP_CONFIG")
}
