// Package filter prunes the candidate keyword set down to the final
// keywords in three ordered stages: frequency bounds, substring-dominance
// pruning, and short-noun cleanup.
package filter

import (
	"sort"
	"unicode/utf8"

	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

// Config holds the stage thresholds.
type Config struct {
	// MinDocs is a strict lower bound: a keyword survives only when its
	// document count exceeds it.
	MinDocs int
	// MaxDocShare is an exclusive upper bound on count/totalDocs; phrases
	// near-universal across the corpus are stop-phrase noise.
	MaxDocShare float64
	// DominanceShare scales the substring-dominance threshold: a substring
	// is redundant when its document count differs from its superstring's
	// by at most DominanceShare x totalDocs.
	DominanceShare float64
	// MaxShortRunes is the rune-length cutoff for the noun-only cleanup.
	MaxShortRunes int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MinDocs:        2,
		MaxDocShare:    0.8,
		DominanceShare: 0.05,
		MaxShortRunes:  2,
	}
}

// RoleSource answers whether a surface was only ever produced under a
// single role by the chunking engine.
type RoleSource interface {
	HasOnlyRole(surface string, role grammar.Role) bool
}

// Run applies the three stages in order and returns the surviving
// keyword -> document ids map. The document lists are those of the
// frequency-stage survivors, untouched by later stages.
func Run(occ map[string][]string, totalDocs int, roles RoleSource, cfg Config) map[string][]string {
	frequent := ByFrequency(occ, totalDocs, cfg)
	dominant := BySubstringDominance(frequent, totalDocs, cfg)
	return ShortNounCleanup(dominant, roles, cfg)
}

// ByFrequency keeps keywords whose document count c satisfies
// MinDocs < c and c/totalDocs < MaxDocShare.
func ByFrequency(occ map[string][]string, totalDocs int, cfg Config) map[string][]string {
	out := make(map[string][]string)
	if totalDocs == 0 {
		return out
	}
	for keyword, ids := range occ {
		c := len(ids)
		if c > cfg.MinDocs && float64(c)/float64(totalDocs) < cfg.MaxDocShare {
			out[keyword] = ids
		}
	}
	return out
}

// BySubstringDominance removes keywords whose occurrence pattern is
// statistically indistinguishable from a longer superstring keyword.
// Keywords are processed longest-first (rune length, ties lexicographic)
// so the order, and therefore the winner of removal conflicts, is
// deterministic.
func BySubstringDominance(keywords map[string][]string, totalDocs int, cfg Config) map[string][]string {
	sorted := make([]string, 0, len(keywords))
	for k := range keywords {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(sorted[i]), utf8.RuneCountInString(sorted[j])
		if li != lj {
			return li > lj
		}
		return sorted[i] < sorted[j]
	})

	threshold := float64(totalDocs) * cfg.DominanceShare
	removed := make(map[string]bool)

	for _, longer := range sorted {
		if removed[longer] {
			continue
		}
		longCount := len(keywords[longer])

		runes := []rune(longer)
		checked := make(map[string]bool)
		for i := 0; i < len(runes); i++ {
			for j := i + 1; j <= len(runes); j++ {
				sub := string(runes[i:j])
				if sub == longer || checked[sub] {
					continue
				}
				checked[sub] = true
				if removed[sub] {
					continue
				}
				ids, ok := keywords[sub]
				if !ok {
					continue
				}
				diff := longCount - len(ids)
				if diff < 0 {
					diff = -diff
				}
				if float64(diff) <= threshold {
					removed[sub] = true
				}
			}
		}
	}

	out := make(map[string][]string, len(keywords)-len(removed))
	for keyword, ids := range keywords {
		if !removed[keyword] {
			out[keyword] = ids
		}
	}
	return out
}

// ShortNounCleanup drops keywords of at most MaxShortRunes runes whose
// engine role set is exactly the base noun role. Roleless candidates from
// the pattern and curated sources are kept.
func ShortNounCleanup(keywords map[string][]string, roles RoleSource, cfg Config) map[string][]string {
	out := make(map[string][]string, len(keywords))
	for keyword, ids := range keywords {
		if utf8.RuneCountInString(keyword) <= cfg.MaxShortRunes && roles.HasOnlyRole(keyword, grammar.NP) {
			continue
		}
		out[keyword] = ids
	}
	return out
}
