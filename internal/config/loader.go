package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file on top of the preset named in its "preset" key
// (default when absent). Unknown keys are rejected.
func Load(path string) (VectorizationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return VectorizationConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return VectorizationConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

type presetHeader struct {
	Preset string `yaml:"preset"`
}

type document struct {
	Preset              string `yaml:"preset"`
	VectorizationConfig `yaml:",inline"`
}

// Parse decodes YAML bytes. Fields that are not present keep the value of
// the selected preset.
func Parse(data []byte) (VectorizationConfig, error) {
	var header presetHeader
	if err := yaml.Unmarshal(data, &header); err != nil {
		return VectorizationConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	base, err := Preset(header.Preset)
	if err != nil {
		return VectorizationConfig{}, err
	}

	doc := document{Preset: header.Preset, VectorizationConfig: base}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return VectorizationConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := doc.VectorizationConfig.Validate(); err != nil {
		return VectorizationConfig{}, err
	}
	return doc.VectorizationConfig, nil
}

// Marshal renders the configuration as YAML, used by the CLI to print the
// effective settings.
func Marshal(cfg VectorizationConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
