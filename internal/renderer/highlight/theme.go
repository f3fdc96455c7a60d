package highlight

import (
	"fmt"
	"strings"

	"github.com/turtleide/turtle/internal/renderer/core"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme defines the editor palette and per-category foreground colors.
type Theme struct {
	// Name is the theme identifier, "dark" or "light".
	Name string

	// Background is the editor background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// MenuBackground colors chrome such as the find prompt.
	MenuBackground core.Color

	// LineNumberBackground and LineNumberForeground color the gutter.
	LineNumberBackground core.Color
	LineNumberForeground core.Color

	// StatusBackground colors the status bar.
	StatusBackground core.Color

	// Found is the style of the most recent search match.
	Found core.Style

	// Categories maps each category to its foreground color.
	Categories map[Category]core.Color
}

// ColorOf returns the foreground for c, or the default text color when the
// theme does not define one.
func (t *Theme) ColorOf(c Category) core.Color {
	if color, ok := t.Categories[c]; ok {
		return color
	}
	return t.Foreground
}

// TextStyle returns the base style for document text.
func (t *Theme) TextStyle() core.Style {
	return core.NewStyle(t.Foreground).WithBackground(t.Background)
}

// StyleOf returns the document text style for category c.
func (t *Theme) StyleOf(c Category) core.Style {
	return t.TextStyle().WithForeground(t.ColorOf(c))
}

// GutterStyle returns the style of the line number gutter.
func (t *Theme) GutterStyle() core.Style {
	return core.NewStyle(t.LineNumberForeground).WithBackground(t.LineNumberBackground)
}

// StatusStyle returns the style of the status bar.
func (t *Theme) StatusStyle() core.Style {
	return core.NewStyle(t.Foreground).WithBackground(t.StatusBackground)
}

// MenuStyle returns the style of prompts drawn over the status bar.
func (t *Theme) MenuStyle() core.Style {
	return core.NewStyle(t.Foreground).WithBackground(t.MenuBackground)
}

// Label returns the status bar label, e.g. "Theme: Dark".
func (t *Theme) Label() string {
	if t.Name == "" {
		return "Theme: Dark"
	}
	return "Theme: " + strings.ToUpper(t.Name[:1]) + t.Name[1:]
}

// Other returns the name of the theme a toggle switches to.
func (t *Theme) Other() string {
	if t.Name == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func foundStyle() core.Style {
	return core.NewStyle(core.ColorBlack).WithBackground(core.ColorYellow)
}

// DarkTheme returns the default dark theme.
func DarkTheme() *Theme {
	return &Theme{
		Name:                 ThemeDark,
		Background:           core.MustHex("#1c1c1c"),
		Foreground:           core.MustHex("#dcdcdc"),
		MenuBackground:       core.MustHex("#252525"),
		LineNumberBackground: core.MustHex("#252525"),
		LineNumberForeground: core.MustHex("#808080"),
		StatusBackground:     core.MustHex("#252525"),
		Found:                foundStyle(),
		Categories: map[Category]core.Color{
			CategoryKeyword:  core.MustHex("#569CD6"),
			CategoryString:   core.MustHex("#CE9178"),
			CategoryComment:  core.MustHex("#6A9955"),
			CategoryFunction: core.MustHex("#DCDCAA"),
			CategoryNumber:   core.MustHex("#B5CEA8"),
			CategorySelector: core.MustHex("#D7BA7D"),
		},
	}
}

// LightTheme returns the light theme.
func LightTheme() *Theme {
	return &Theme{
		Name:                 ThemeLight,
		Background:           core.MustHex("#ffffff"),
		Foreground:           core.MustHex("#000000"),
		MenuBackground:       core.MustHex("#f0f0f0"),
		LineNumberBackground: core.MustHex("#f0f0f0"),
		LineNumberForeground: core.MustHex("#606060"),
		StatusBackground:     core.MustHex("#f0f0f0"),
		Found:                foundStyle(),
		Categories: map[Category]core.Color{
			CategoryKeyword:  core.MustHex("#0000ff"),
			CategoryString:   core.MustHex("#a31515"),
			CategoryComment:  core.MustHex("#008000"),
			CategoryFunction: core.MustHex("#795e26"),
			CategoryNumber:   core.MustHex("#098658"),
			CategorySelector: core.MustHex("#800080"),
		},
	}
}

// ThemeByName returns the named theme. Names are case-insensitive.
func ThemeByName(name string) (*Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeDark, "":
		return DarkTheme(), nil
	case ThemeLight:
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}
