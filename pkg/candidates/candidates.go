// Package candidates accumulates keyword candidate surfaces across a
// corpus, remembering every role the chunking engine produced a surface
// under. Candidates also arrive from sources outside the engine: a curated
// seed list and pattern extraction over raw document content; those carry
// no roles.
package candidates

import (
	"regexp"
	"sort"

	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

// Pattern sources for script-specific candidates.
var (
	// Three or more consecutive katakana characters.
	katakanaPattern = regexp.MustCompile(`[\x{30A0}-\x{30FF}]{3,}`)
	// Three or more alphanumerics, optionally space-joined with further
	// alphanumeric tokens.
	alphanumericPattern = regexp.MustCompile(`[a-zA-Z0-9]{3,}(?: [a-zA-Z0-9]+)*`)
)

// Set is the corpus-wide candidate accumulator. Not safe for concurrent
// mutation; per-document sets are merged at a single accumulation point.
type Set struct {
	surfaces map[string]struct{}
	roles    map[string]map[grammar.Role]struct{}
}

// NewSet creates an empty candidate set.
func NewSet() *Set {
	return &Set{
		surfaces: make(map[string]struct{}),
		roles:    make(map[string]map[grammar.Role]struct{}),
	}
}

// AddChunk records an engine-derived surface together with the role it was
// produced under.
func (s *Set) AddChunk(surface string, role grammar.Role) {
	if surface == "" {
		return
	}
	s.surfaces[surface] = struct{}{}
	rs, ok := s.roles[surface]
	if !ok {
		rs = make(map[grammar.Role]struct{})
		s.roles[surface] = rs
	}
	rs[role] = struct{}{}
}

// AddLiteral records a candidate from an external source. It carries no
// engine role.
func (s *Set) AddLiteral(surface string) {
	if surface == "" {
		return
	}
	s.surfaces[surface] = struct{}{}
}

// ExtractPatterns adds the katakana runs and alphanumeric tokens found in
// raw document content.
func (s *Set) ExtractPatterns(content string) {
	for _, m := range katakanaPattern.FindAllString(content, -1) {
		s.AddLiteral(m)
	}
	for _, m := range alphanumericPattern.FindAllString(content, -1) {
		s.AddLiteral(m)
	}
}

// Merge unions another set into this one.
func (s *Set) Merge(other *Set) {
	for surface := range other.surfaces {
		s.surfaces[surface] = struct{}{}
	}
	for surface, rs := range other.roles {
		dst, ok := s.roles[surface]
		if !ok {
			dst = make(map[grammar.Role]struct{}, len(rs))
			s.roles[surface] = dst
		}
		for role := range rs {
			dst[role] = struct{}{}
		}
	}
}

// Surfaces returns every candidate surface, sorted.
func (s *Set) Surfaces() []string {
	out := make([]string, 0, len(s.surfaces))
	for surface := range s.surfaces {
		out = append(out, surface)
	}
	sort.Strings(out)
	return out
}

// Roles returns the roles a surface was produced under, sorted, or nil for
// roleless candidates.
func (s *Set) Roles(surface string) []grammar.Role {
	rs, ok := s.roles[surface]
	if !ok {
		return nil
	}
	out := make([]grammar.Role, 0, len(rs))
	for role := range rs {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasOnlyRole reports whether a surface has an engine role set consisting
// of exactly the given role. Roleless candidates report false.
func (s *Set) HasOnlyRole(surface string, role grammar.Role) bool {
	rs, ok := s.roles[surface]
	if !ok || len(rs) == 0 {
		return false
	}
	for r := range rs {
		if r != role {
			return false
		}
	}
	return true
}

// Len returns the number of distinct candidate surfaces.
func (s *Set) Len() int {
	return len(s.surfaces)
}
