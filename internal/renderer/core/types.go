// Package core provides shared value types for the renderer subsystem.
// This package breaks import cycles between renderer, highlight, and backend.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute represents text attributes (bold, reverse, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color represents a true color or the terminal's default color.
type Color struct {
	R, G, B uint8
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack  = Color{R: 0, G: 0, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorYellow = Color{R: 255, G: 255, B: 0}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex creates a color from a "#rrggbb" or "#rgb" string.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex is ColorFromHex for compile-time constant colors; it panics on
// malformed input.
func MustHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Merge overlays other on s: non-default colors of other win.
func (s Style) Merge(other Style) Style {
	result := s
	if !other.Foreground.IsDefault() {
		result.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		result.Background = other.Background
	}
	result.Attributes |= other.Attributes
	return result
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display.
	Rune rune

	// Width is the display width of this cell.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns a blank cell in the given style.
func EmptyCell(style Style) Cell {
	return Cell{Rune: ' ', Width: 1, Style: style}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// RuneWidth returns the display width of a rune in terminal cells.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// Contains returns true if (row, col) is within the rectangle.
func (r ScreenRect) Contains(row, col int) bool {
	return row >= r.Top && row < r.Bottom && col >= r.Left && col < r.Right
}
