// Package pathglob implements the ordered glob matcher used by the Path
// Filter: an ordered list of glob patterns, later patterns overriding
// earlier ones, with a `!` prefix re-including a path an earlier pattern
// had excluded.
package pathglob

import (
	"fmt"

	"github.com/gobwas/glob"
)

type rule struct {
	negate bool
	g      glob.Glob
}

// Matcher evaluates an ordered list of glob patterns against a path.
type Matcher struct {
	rules []rule
}

// Compile builds a Matcher from an ordered pattern list. `*` matches any
// run of non-separator characters, `**` matches across separators, `?`
// matches a single non-separator character — the gobwas/glob defaults with
// '/' as the separator.
func Compile(patterns []string) (*Matcher, error) {
	m := &Matcher{rules: make([]rule, 0, len(patterns))}
	for _, p := range patterns {
		negate := false
		pat := p
		if len(pat) > 0 && pat[0] == '!' {
			negate = true
			pat = pat[1:]
		}
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		m.rules = append(m.rules, rule{negate: negate, g: g})
	}
	return m, nil
}

// Match reports whether path is ignored: the last rule to match wins; a
// negated rule that matches last means "not ignored". A path matched by no
// rule is not ignored.
func (m *Matcher) Match(path string) bool {
	if m == nil {
		return false
	}
	ignored := false
	for _, r := range m.rules {
		if r.g.Match(path) {
			ignored = !r.negate
		}
	}
	return ignored
}
