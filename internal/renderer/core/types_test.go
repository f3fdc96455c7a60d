package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	if !ColorDefault.IsDefault() {
		t.Error("ColorDefault should be default")
	}
	if ColorDefault.String() != "default" {
		t.Errorf("String() = %q, want default", ColorDefault.String())
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    Color
		wantErr bool
	}{
		{"#569CD6", ColorFromRGB(0x56, 0x9C, 0xD6), false},
		{"1c1c1c", ColorFromRGB(0x1c, 0x1c, 0x1c), false},
		{"#fff", ColorFromRGB(255, 255, 255), false},
		{"#12345", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := ColorFromHex(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equals(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustHex should panic on malformed input")
		}
	}()
	MustHex("nope")
}

func TestColorEquals(t *testing.T) {
	a := ColorFromRGB(1, 2, 3)
	if !a.Equals(ColorFromRGB(1, 2, 3)) {
		t.Error("identical colors should be equal")
	}
	if a.Equals(ColorDefault) {
		t.Error("rgb color should not equal default")
	}
	if !ColorDefault.Equals(Color{Default: true, R: 9}) {
		t.Error("default colors should be equal regardless of components")
	}
}

func TestColorString(t *testing.T) {
	if got := ColorFromRGB(0xCE, 0x91, 0x78).String(); got != "#CE9178" {
		t.Errorf("String() = %q, want #CE9178", got)
	}
}

func TestStyleMerge(t *testing.T) {
	base := NewStyle(ColorWhite).WithBackground(ColorBlack)
	over := DefaultStyle().WithBackground(ColorYellow).Bold()

	got := base.Merge(over)
	if !got.Foreground.Equals(ColorWhite) {
		t.Error("default foreground must not override")
	}
	if !got.Background.Equals(ColorYellow) {
		t.Error("background should be overridden")
	}
	if !got.Attributes.Has(AttrBold) {
		t.Error("attributes should be combined")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{'日', 2},
		{0x7F, 0},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(1, 2, 3, 4)
	if r.Width() != 4 || r.Height() != 3 {
		t.Errorf("size = %dx%d, want 4x3", r.Width(), r.Height())
	}
	if !r.Contains(1, 2) || r.Contains(4, 2) || r.Contains(1, 6) {
		t.Error("Contains bounds are wrong")
	}
}
