package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for the config package.
var (
	// ErrUnsupportedFormat is returned for files that are not TOML or YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidConfig is returned when a setting has an invalid value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrWatchFailed is returned when the config file cannot be watched.
	ErrWatchFailed = errors.New("config watch failed")
)

// ParseError indicates a config file could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError reports an invalid value for one key.
type FieldError struct {
	Key     string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Key, e.Value, e.Message)
}

// Unwrap returns ErrInvalidConfig.
func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}
