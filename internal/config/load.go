package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax.
type Format int

const (
	// FormatTOML is TOML.
	FormatTOML Format = iota
	// FormatYAML is YAML.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf returns the format for a file path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "turtle", "config.toml")
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Default(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return Default(), err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes data over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()

	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	}
	if err != nil {
		return Default(), &ParseError{Path: "<" + format.String() + ">", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}
