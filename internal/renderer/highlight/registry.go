package highlight

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps file extensions to their language profiles.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	profiles map[string]Profile
	fallback Profile
}

// NewRegistry compiles the built-in profiles. An error wraps
// ErrConfigurationDefect and means the binary itself is broken.
func NewRegistry() (*Registry, error) {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, lang := range builtinLanguages() {
		p, err := NewProfile(lang.ext, lang.name, lang.rules)
		if err != nil {
			return nil, err
		}
		r.profiles[lang.ext] = p
	}

	fallback, ok := r.profiles[DefaultExtension]
	if !ok {
		return nil, fmt.Errorf("%w: no profile for default extension %s", ErrConfigurationDefect, DefaultExtension)
	}
	r.fallback = fallback
	return r, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared built-in registry.
// It panics if the built-in profiles fail to compile.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = NewRegistry()
	})
	if defaultRegistryErr != nil {
		panic(defaultRegistryErr)
	}
	return defaultRegistry
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Lookup returns the profile registered for ext, if any.
// The lookup is case-insensitive and the leading dot is optional.
func (r *Registry) Lookup(ext string) (Profile, bool) {
	p, ok := r.profiles[NormalizeExtension(ext)]
	return p, ok
}

// ProfileFor returns the profile for ext, falling back to the default
// profile for unknown extensions.
func (r *Registry) ProfileFor(ext string) Profile {
	if p, ok := r.Lookup(ext); ok {
		return p
	}
	return r.fallback
}

// Default returns the default profile.
func (r *Registry) Default() Profile {
	return r.fallback
}

// Extensions returns all registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.profiles))
	for ext := range r.profiles {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
