package config

import (
	"errors"
	"slices"
	"strings"

	"github.com/turtleide/turtle/internal/renderer/highlight"
)

// Config holds all editor settings.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Run    RunConfig    `toml:"run" yaml:"run"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig holds display and language settings.
type EditorConfig struct {
	// Theme is "dark" or "light".
	Theme string `toml:"theme" yaml:"theme"`

	// DefaultLanguage is the extension used for new files.
	DefaultLanguage string `toml:"default_language" yaml:"default_language"`

	TabWidth        int  `toml:"tab_width" yaml:"tab_width"`
	ShowLineNumbers bool `toml:"show_line_numbers" yaml:"show_line_numbers"`
}

// RunConfig holds settings for running files.
type RunConfig struct {
	// Python is the interpreter for scripts. Empty uses the platform default.
	Python string `toml:"python" yaml:"python"`

	// Terminals are tried in order when running in an external terminal.
	Terminals []string `toml:"terminals" yaml:"terminals"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty disables logging.
	File string `toml:"file" yaml:"file"`
}

// MaxTabWidth is the largest accepted tab width.
const MaxTabWidth = 16

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Default returns the default settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			Theme:           highlight.ThemeDark,
			DefaultLanguage: highlight.DefaultExtension,
			TabWidth:        4,
			ShowLineNumbers: true,
		},
		Run: RunConfig{
			Terminals: []string{"gnome-terminal", "xterm", "konsole"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns all problems found. Each
// problem is a *FieldError.
func (c Config) Validate() error {
	var errs []error

	if _, err := highlight.ThemeByName(c.Editor.Theme); err != nil {
		errs = append(errs, &FieldError{Key: "editor.theme", Value: c.Editor.Theme, Message: "must be dark or light"})
	}
	if _, ok := highlight.DefaultRegistry().Lookup(c.Editor.DefaultLanguage); !ok {
		errs = append(errs, &FieldError{
			Key:     "editor.default_language",
			Value:   c.Editor.DefaultLanguage,
			Message: "must be one of " + strings.Join(highlight.DefaultRegistry().Extensions(), ", "),
		})
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		errs = append(errs, &FieldError{Key: "editor.tab_width", Value: c.Editor.TabWidth, Message: "must be between 1 and 16"})
	}
	for i, term := range c.Run.Terminals {
		if strings.TrimSpace(term) == "" {
			errs = append(errs, &FieldError{Key: "run.terminals", Value: i, Message: "entry is empty"})
		}
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, &FieldError{Key: "log.level", Value: c.Log.Level, Message: "must be debug, info, warn or error"})
	}

	return errors.Join(errs...)
}
