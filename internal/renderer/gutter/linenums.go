package gutter

import (
	"strconv"
	"strings"
)

// LineNumberFormatter right-aligns line numbers to a fixed width.
type LineNumberFormatter struct {
	width int
}

// NewLineNumberFormatter creates a new line number formatter.
func NewLineNumberFormatter(width int) *LineNumberFormatter {
	return &LineNumberFormatter{width: width}
}

// SetWidth sets the display width for line numbers.
func (f *LineNumberFormatter) SetWidth(width int) {
	f.width = width
}

// Width returns the display width.
func (f *LineNumberFormatter) Width() int {
	return f.width
}

// Format returns the 1-based line number padded to the formatter width.
func (f *LineNumberFormatter) Format(line int) string {
	return PadLeft(strconv.Itoa(line), f.width)
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// CalculateWidth calculates the minimum width needed to display line numbers
// for the given line count.
func CalculateWidth(lineCount int, minWidth int) int {
	digits := countDigits(lineCount)
	if digits < minWidth {
		return minWidth
	}
	return digits
}
