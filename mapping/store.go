package mapping

import (
	"fmt"
	"log/slog"
)

// StoreKey is the key the configuration blob is stored under.
const StoreKey = "external_controller_config"

// KV is a store of keyed string blobs.
type KV interface {
	// Get returns the blob for key and whether it exists.
	Get(key string) (string, bool, error)
	// Put replaces the blob for key. Readers never observe a partial write.
	Put(key, value string) error
}

// Store loads and persists the Config as a single blob in a KV.
type Store struct {
	kv     KV
	codec  Codec
	logger *slog.Logger
}

// NewStore returns a Store. A nil codec selects JSON, a nil logger discards.
func NewStore(kv KV, codec Codec, logger *slog.Logger) *Store {
	if codec == nil {
		codec = JSONCodec{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, codec: codec, logger: logger}
}

// Load reads the persisted configuration. A missing or undecodable blob
// yields the defaults. The dead-zone is always clamped. The error is only
// set when the KV itself fails, in which case the defaults are returned too.
func (s *Store) Load() (*Config, error) {
	blob, ok, err := s.kv.Get(StoreKey)
	if err != nil {
		return NewConfig(), fmt.Errorf("load mapping: %w", err)
	}
	if !ok {
		s.logger.Debug("no stored mapping, using defaults", "key", StoreKey)
		return NewConfig(), nil
	}

	record, err := s.codec.Decode([]byte(blob))
	if err != nil {
		s.logger.Warn("stored mapping is corrupt, using defaults", "key", StoreKey, "format", s.codec.Name(), "error", err)
		return NewConfig(), nil
	}
	if record == nil {
		return NewConfig(), nil
	}

	cfg, rejected := configFromRecord(record)
	if len(rejected) > 0 {
		s.logger.Warn("stored mapping has invalid fields, using their defaults", "fields", rejected)
	}
	cfg.AxisDeadZone = ClampDeadZone(cfg.AxisDeadZone)
	s.logger.Debug("loaded mapping", "key", StoreKey, "format", s.codec.Name())
	return cfg, nil
}

// Save writes the whole configuration. A failure is not retried.
func (s *Store) Save(cfg *Config) error {
	blob, err := s.codec.Encode(cfg.record())
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := s.kv.Put(StoreKey, string(blob)); err != nil {
		return fmt.Errorf("save mapping: %w", err)
	}
	return nil
}

// ResetToDefaults puts every field of cfg back to its default and saves it.
// Callers showing cfg must refresh their view afterwards.
func (s *Store) ResetToDefaults(cfg *Config) error {
	cfg.setDefaults()
	s.logger.Debug("mapping reset to defaults")
	return s.Save(cfg)
}
