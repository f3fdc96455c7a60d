// Package highlight provides regex-based syntax highlighting: the fixed
// per-extension language profiles, the themes that color them, and the
// pure Highlight function that turns text into ordered style ranges.
package highlight

import "fmt"

// Category is a lexical class used for display styling.
type Category uint8

// Categories, in the order a profile enumerates them.
const (
	CategoryKeyword Category = iota
	CategoryString
	CategoryComment
	CategoryFunction
	CategoryNumber
	CategorySelector
)

// Categories lists every category.
var Categories = []Category{
	CategoryKeyword,
	CategoryString,
	CategoryComment,
	CategoryFunction,
	CategoryNumber,
	CategorySelector,
}

var categoryNames = map[Category]string{
	CategoryKeyword:  "keyword",
	CategoryString:   "string",
	CategoryComment:  "comment",
	CategoryFunction: "function",
	CategoryNumber:   "number",
	CategorySelector: "selector",
}

// String returns the category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// ParseCategory converts a name such as "comment" into a Category.
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}
