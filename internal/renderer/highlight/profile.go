package highlight

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrConfigurationDefect reports a built-in profile whose patterns are invalid.
// It is fatal at startup.
var ErrConfigurationDefect = errors.New("invalid language profile")

// Rule defines a highlighting rule.
type Rule struct {
	// Category is the category assigned to matches.
	Category Category

	// Pattern is the regex pattern to match.
	Pattern *regexp.Regexp

	// Submatch is the submatch index to use (0 for whole match).
	Submatch int
}

// span returns the highlighted byte range of one match of the rule.
func (r Rule) span(match []int) (start, end int) {
	start, end = match[0], match[1]
	if r.Submatch > 0 && len(match) > r.Submatch*2+1 {
		start = match[r.Submatch*2]
		end = match[r.Submatch*2+1]
	}
	return start, end
}

// RuleSpec is the uncompiled form of a Rule.
type RuleSpec struct {
	Category Category
	Pattern  string
	Submatch int
}

// Profile is an immutable, ordered list of rules for one file extension.
// Rules later in the list win where their ranges overlap earlier ones.
type Profile struct {
	// Extension is the lowercase extension with leading dot, e.g. ".py".
	Extension string

	// Name is the display label, e.g. "Python".
	Name string

	rules []Rule
}

// NewProfile compiles specs into a profile. Every pattern is compiled in
// multiline mode. A compilation failure wraps ErrConfigurationDefect.
func NewProfile(ext, name string, specs []RuleSpec) (Profile, error) {
	p := Profile{Extension: ext, Name: name}
	seen := make(map[Category]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Category] {
			return Profile{}, fmt.Errorf("%w: %s lists %s twice", ErrConfigurationDefect, ext, spec.Category)
		}
		seen[spec.Category] = true

		re, err := regexp.Compile("(?m)" + spec.Pattern)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %s %s: %v", ErrConfigurationDefect, ext, spec.Category, err)
		}
		if spec.Submatch < 0 || spec.Submatch > re.NumSubexp() {
			return Profile{}, fmt.Errorf("%w: %s %s: submatch %d out of range", ErrConfigurationDefect, ext, spec.Category, spec.Submatch)
		}
		p.rules = append(p.rules, Rule{Category: spec.Category, Pattern: re, Submatch: spec.Submatch})
	}
	return p, nil
}

// Rules returns a copy of the profile's rules in application order.
func (p Profile) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// Precedence returns the categories in application order; a later category
// overwrites an earlier one where they overlap.
func (p Profile) Precedence() []Category {
	order := make([]Category, len(p.rules))
	for i, r := range p.rules {
		order[i] = r.Category
	}
	return order
}

// Label returns the language label shown in the status bar.
func (p Profile) Label() string {
	if p.Name == "" {
		return "Plain Text"
	}
	return p.Name
}
