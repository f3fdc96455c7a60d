package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Editor.Theme != "dark" || cfg.Editor.DefaultLanguage != ".py" || cfg.Editor.TabWidth != 4 {
		t.Errorf("unexpected defaults %+v", cfg.Editor)
	}
	if !cfg.Editor.ShowLineNumbers {
		t.Error("line numbers should be shown by default")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[editor]
theme = "light"
tab_width = 8

[run]
python = "/usr/bin/python3.12"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.Theme != "light" || cfg.Editor.TabWidth != 8 {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Editor.DefaultLanguage != ".py" {
		t.Errorf("unset keys should keep defaults, got %q", cfg.Editor.DefaultLanguage)
	}
	if cfg.Run.Python != "/usr/bin/python3.12" {
		t.Errorf("python = %q", cfg.Run.Python)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
editor:
  default_language: .js
  show_line_numbers: false
run:
  terminals: [alacritty, xterm]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.DefaultLanguage != ".js" || cfg.Editor.ShowLineNumbers {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if got := strings.Join(cfg.Run.Terminals, ","); got != "alacritty,xterm" {
		t.Errorf("terminals = %s", got)
	}
	if cfg.Editor.Theme != "dark" {
		t.Errorf("theme should default to dark, got %q", cfg.Editor.Theme)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("empty file should give defaults, got %+v", cfg.Editor)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"unsupported format", "config.json", "{}", ErrUnsupportedFormat},
		{"bad theme", "config.toml", "[editor]\ntheme = \"blue\"\n", ErrInvalidConfig},
		{"bad language", "config.toml", "[editor]\ndefault_language = \".rb\"\n", ErrInvalidConfig},
		{"bad tab width", "config.yaml", "editor:\n  tab_width: 0\n", ErrInvalidConfig},
		{"bad log level", "config.yaml", "log:\n  level: loud\n", ErrInvalidConfig},
		{"empty terminal", "config.yaml", "run:\n  terminals: ['']\n", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml syntax", "config.toml", "[editor\n"},
		{"toml unknown key", "config.toml", "[editor]\ncolour = \"red\"\n"},
		{"yaml unknown key", "config.yaml", "editor:\n  colour: red\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if pe.Path != path {
				t.Errorf("ParseError path = %q, want %q", pe.Path, path)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Editor.Theme = "neon"
	cfg.Editor.TabWidth = 99

	err := cfg.Validate()
	var keys []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var fe *FieldError
		if errors.As(e, &fe) {
			keys = append(keys, fe.Key)
		}
	}
	if got := strings.Join(keys, ","); got != "editor.theme,editor.tab_width" {
		t.Errorf("invalid keys = %s", got)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Editor.Theme != "dark" {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if _, err := LoadOrDefault(""); err != nil {
		t.Errorf("empty path should give defaults: %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load of a missing file should report it, got %v", err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.toml", FormatTOML, true},
		{"A.TOML", FormatTOML, true},
		{"a.yaml", FormatYAML, true},
		{"a.yml", FormatYAML, true},
		{"a.ini", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
				t.Errorf("FormatOf(%q) = %v, %v", tt.path, got, err)
			}
		})
	}
}
