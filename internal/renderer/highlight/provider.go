package highlight

import (
	"sync"

	"github.com/turtleide/turtle/internal/engine/buffer"
)

// Source is the document a Provider highlights.
type Source interface {
	Text() string
	Len() int
	RevisionID() buffer.RevisionID
}

// Provider keeps the highlighting of one document current. Every refresh
// re-highlights the whole text; results are reused only while the document
// revision, profile and theme are all unchanged.
type Provider struct {
	mu sync.RWMutex

	profile Profile
	theme   *Theme

	// revision is the document revision the cached ranges belong to.
	revision buffer.RevisionID
	valid    bool

	ranges []StyleRange
	spans  []Span
}

// NewProvider creates a provider for the given profile and theme.
func NewProvider(profile Profile, theme *Theme) *Provider {
	if theme == nil {
		theme = DarkTheme()
	}
	return &Provider{profile: profile, theme: theme}
}

// SetProfile changes the active profile and invalidates the cache.
func (p *Provider) SetProfile(profile Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile = profile
	p.valid = false
}

// Profile returns the active profile.
func (p *Provider) Profile() Profile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile
}

// SetTheme changes the active theme and invalidates the cache.
func (p *Provider) SetTheme(theme *Theme) {
	if theme == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = theme
	p.valid = false
}

// Theme returns the active theme.
func (p *Provider) Theme() *Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Invalidate forces the next Refresh to re-highlight.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.valid = false
}

// Refresh re-highlights src if it changed since the last refresh.
// It reports whether highlighting was recomputed.
func (p *Provider) Refresh(src Source) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	rev := src.RevisionID()
	if p.valid && p.revision == rev {
		return false
	}

	p.ranges = Highlight(src.Text(), p.profile, p.theme)
	p.spans = Flatten(p.ranges, src.Len())
	p.revision = rev
	p.valid = true
	return true
}

// Ranges returns the raw ranges of the last refresh in application order.
func (p *Provider) Ranges() []StyleRange {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]StyleRange(nil), p.ranges...)
}

// SpansIn returns the flattened spans intersecting [start, end), clipped to
// that window.
func (p *Provider) SpansIn(start, end int) []Span {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Span
	for _, s := range p.spans {
		if s.End <= start {
			continue
		}
		if s.Start >= end {
			break
		}
		out = append(out, Span{
			Category: s.Category,
			Start:    max(s.Start, start),
			End:      min(s.End, end),
		})
	}
	return out
}
