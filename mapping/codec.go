package mapping

import (
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Codec serializes the persisted record into the stored blob.
type Codec interface {
	Name() string
	Encode(record map[string]any) ([]byte, error)
	Decode(blob []byte) (map[string]any, error)
}

// ParseCodec returns the codec for a format name: json, yaml (yml) or toml.
func ParseCodec(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	case "toml":
		return TOMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(record map[string]any) ([]byte, error) {
	return json.Marshal(record)
}

func (JSONCodec) Decode(blob []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(blob, &m); err != nil {
		return nil, err
	}
	return m, nil
}

type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(record map[string]any) ([]byte, error) {
	return yaml.Marshal(record)
}

func (YAMLCodec) Decode(blob []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(blob, &m); err != nil {
		return nil, err
	}
	return m, nil
}

type TOMLCodec struct{}

func (TOMLCodec) Name() string { return "toml" }

func (TOMLCodec) Encode(record map[string]any) ([]byte, error) {
	return toml.Marshal(record)
}

func (TOMLCodec) Decode(blob []byte) (map[string]any, error) {
	tree, err := toml.LoadBytes(blob)
	if err != nil {
		return nil, err
	}
	return tree.ToMap(), nil
}
