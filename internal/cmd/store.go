package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/padmap/internal/configpaths"
	"github.com/Alia5/padmap/internal/kvstore"
	"github.com/Alia5/padmap/mapping"
)

// StoreConfig selects where and how the mapping is persisted.
type StoreConfig struct {
	Dir    string `help:"Directory holding the mapping store (defaults to the user config dir)" env:"PADMAP_STORE_DIR"`
	Format string `help:"Mapping blob format" enum:"json,yaml,toml" default:"json" env:"PADMAP_STORE_FORMAT"`
}

// Open returns the mapping store described by the config.
func (s *StoreConfig) Open(logger *slog.Logger) (*mapping.Store, error) {
	codec, err := mapping.ParseCodec(s.Format)
	if err != nil {
		return nil, err
	}
	dir := s.Dir
	if dir == "" {
		dir = configpaths.DefaultStoreDir()
	}
	kv := kvstore.NewFile(dir, "."+configpaths.FormatExt(codec.Name()))
	logger.Debug("opened mapping store", "dir", dir, "format", codec.Name())
	return mapping.NewStore(kv, codec, logger.With("component", "store")), nil
}

// load opens the store and reads the configuration.
func (s *StoreConfig) load(logger *slog.Logger) (*mapping.Store, *mapping.Config, error) {
	store, err := s.Open(logger)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read mapping: %w", err)
	}
	return store, cfg, nil
}
