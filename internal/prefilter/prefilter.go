// Package prefilter implements the Keyword Prefilter: a pair of
// Aho-Corasick automatons built once over every detector's keyword set,
// used to skip the comparatively expensive regex pass for detectors whose
// keywords don't appear anywhere in a chunk.
package prefilter

import (
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"

	"github.com/deepbrainspace/guardy/internal/model"
)

// Prefilter screens a content chunk against every detector's keyword set in
// a linear pass. It is built once per Scanner and is safe for concurrent
// use by every worker goroutine: both tries are read-only after Build.
type Prefilter struct {
	sensitiveTrie   *ahocorasick.Trie
	insensitiveTrie *ahocorasick.Trie
	// bySensitiveKeyword maps an exact keyword to every detector that
	// declared it case-sensitively.
	bySensitiveKeyword map[string][]*model.Detector
	// byInsensitiveKeyword maps a lowercased keyword to every detector
	// that opted into ASCII case-insensitive matching.
	byInsensitiveKeyword map[string][]*model.Detector
	// always holds detectors with no keywords at all: they bypass both
	// automatons entirely and are always candidates.
	always []*model.Detector
}

// Build constructs the automatons over every detector's keyword set.
// Detectors with an empty keyword set are kept out of both tries and always
// returned by Candidates. A detector's Keywords are matched exactly as
// declared unless it sets CaseInsensitive, in which case its keywords are
// lowercased and matched against lowercased content.
func Build(detectors []*model.Detector) *Prefilter {
	pf := &Prefilter{
		bySensitiveKeyword:   make(map[string][]*model.Detector),
		byInsensitiveKeyword: make(map[string][]*model.Detector),
	}

	sensitiveBuilder := ahocorasick.NewTrieBuilder()
	insensitiveBuilder := ahocorasick.NewTrieBuilder()
	var sensitiveKeywords, insensitiveKeywords []string

	for _, d := range detectors {
		if len(d.Keywords) == 0 {
			pf.always = append(pf.always, d)
			continue
		}
		for _, kw := range d.Keywords {
			if d.CaseInsensitive {
				lower := strings.ToLower(kw)
				if _, seen := pf.byInsensitiveKeyword[lower]; !seen {
					insensitiveKeywords = append(insensitiveKeywords, lower)
				}
				pf.byInsensitiveKeyword[lower] = append(pf.byInsensitiveKeyword[lower], d)
				continue
			}
			if _, seen := pf.bySensitiveKeyword[kw]; !seen {
				sensitiveKeywords = append(sensitiveKeywords, kw)
			}
			pf.bySensitiveKeyword[kw] = append(pf.bySensitiveKeyword[kw], d)
		}
	}
	sensitiveBuilder.AddStrings(sensitiveKeywords)
	insensitiveBuilder.AddStrings(insensitiveKeywords)
	pf.sensitiveTrie = sensitiveBuilder.Build()
	pf.insensitiveTrie = insensitiveBuilder.Build()

	return pf
}

// Candidates returns every detector whose keyword appears somewhere in
// content, plus every keyword-less detector. Case-sensitive detectors are
// matched against content verbatim; case-insensitive detectors are matched
// against a lowercased copy. The returned slice contains no duplicate
// detectors even if multiple keywords for the same detector matched.
func (pf *Prefilter) Candidates(content []byte) []*model.Detector {
	seen := make(map[string]struct{}, len(pf.always))
	out := make([]*model.Detector, 0, len(pf.always))

	add := func(d *model.Detector) {
		if _, dup := seen[d.ID]; dup {
			return
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}

	for _, m := range pf.sensitiveTrie.Match(content) {
		for _, d := range pf.bySensitiveKeyword[string(m.Pattern())] {
			add(d)
		}
	}
	if len(pf.byInsensitiveKeyword) > 0 {
		lower := strings.ToLower(string(content))
		for _, m := range pf.insensitiveTrie.MatchString(lower) {
			for _, d := range pf.byInsensitiveKeyword[string(m.Pattern())] {
				add(d)
			}
		}
	}
	for _, d := range pf.always {
		add(d)
	}
	return out
}
