package highlight

import (
	"unicode/utf8"

	"github.com/turtleide/turtle/internal/renderer/core"
)

// StyleRange is one highlighted region in character offsets, [Start, End).
type StyleRange struct {
	Category Category
	Start    int
	End      int
	Color    core.Color
}

// Len returns the number of characters covered.
func (r StyleRange) Len() int {
	return r.End - r.Start
}

// Highlight runs every rule of p over the whole of text and returns the
// matches in application order: rules in profile order, and matches of one
// rule in text order. Where ranges overlap, the later range takes
// precedence. Empty matches are skipped. Highlight has no side effects, so
// calling it twice on the same input yields the same ranges.
func Highlight(text string, p Profile, th *Theme) []StyleRange {
	if text == "" {
		return nil
	}
	if th == nil {
		th = DarkTheme()
	}

	offsets := newRuneOffsets(text)
	var ranges []StyleRange
	for _, rule := range p.rules {
		color := th.ColorOf(rule.Category)
		for _, m := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := rule.span(m)
			if start < 0 || end <= start {
				continue
			}
			ranges = append(ranges, StyleRange{
				Category: rule.Category,
				Start:    offsets.at(start),
				End:      offsets.at(end),
				Color:    color,
			})
		}
	}
	return ranges
}

// Span is a non-overlapping run of one category, [Start, End) in characters.
type Span struct {
	Category Category
	Start    int
	End      int
}

// Flatten resolves overlapping ranges into the visible runs of a text of
// length characters. Later ranges overwrite earlier ones. Characters no range
// covers are omitted.
func Flatten(ranges []StyleRange, length int) []Span {
	if length <= 0 || len(ranges) == 0 {
		return nil
	}

	cover := make([]int, length)
	for i := range cover {
		cover[i] = -1
	}
	for _, r := range ranges {
		start, end := max(r.Start, 0), min(r.End, length)
		for i := start; i < end; i++ {
			cover[i] = int(r.Category)
		}
	}

	var spans []Span
	for i := 0; i < length; {
		c := cover[i]
		j := i + 1
		for j < length && cover[j] == c {
			j++
		}
		if c >= 0 {
			spans = append(spans, Span{Category: Category(c), Start: i, End: j})
		}
		i = j
	}
	return spans
}

// runeOffsets converts byte offsets in a string to character offsets.
type runeOffsets struct {
	ascii bool
	index []int
}

func newRuneOffsets(text string) runeOffsets {
	if utf8.RuneCountInString(text) == len(text) {
		return runeOffsets{ascii: true}
	}
	index := make([]int, len(text)+1)
	n := 0
	for i := range text {
		// Invalid bytes decode with width 1, one character each.
		_, w := utf8.DecodeRuneInString(text[i:])
		for k := i; k < i+w; k++ {
			index[k] = n
		}
		n++
	}
	index[len(text)] = n
	return runeOffsets{index: index}
}

func (o runeOffsets) at(b int) int {
	if o.ascii {
		return b
	}
	return o.index[b]
}
