// Package occurrence maps candidate surfaces to the documents that contain
// them as literal substrings. Candidates are batched and each batch is
// compiled once into an Aho-Corasick automaton, so scanning costs
// O(documents x batches) instead of O(documents x candidates).
package occurrence

import (
	"runtime"
	"sort"
	"sync"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// DefaultBatchSize is how many candidate surfaces share one automaton.
const DefaultBatchSize = 500

// Document is the minimal view the mapper needs.
type Document struct {
	ID      string
	Content string
}

// Mapper scans documents against batched candidate automatons.
type Mapper struct {
	batchSize int
	workers   int
}

// NewMapper creates a Mapper. Non-positive batchSize or workers fall back
// to DefaultBatchSize and GOMAXPROCS respectively.
func NewMapper(batchSize, workers int) *Mapper {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Mapper{batchSize: batchSize, workers: workers}
}

// batch pairs one compiled automaton with its pattern surfaces,
// index-aligned with the automaton's pattern ids.
type batch struct {
	ac       ahocorasick.AhoCorasick
	surfaces []string
}

// Map returns surface -> sorted ids of the documents containing it.
// An empty candidate set degrades to an empty result.
func (m *Mapper) Map(docs []Document, surfaces []string) map[string][]string {
	patterns := make([]string, 0, len(surfaces))
	for _, s := range surfaces {
		if s != "" {
			patterns = append(patterns, s)
		}
	}

	result := make(map[string][]string)
	if len(patterns) == 0 || len(docs) == 0 {
		return result
	}

	batches := compileBatches(patterns, m.batchSize)

	// Fan out one job per document; each worker reports the document's
	// found-set and the results are unioned afterwards.
	type docMatches struct {
		id    string
		found []string
	}

	jobs := make(chan Document)
	matches := make(chan docMatches, len(docs))

	var wg sync.WaitGroup
	for w := 0; w < m.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				matches <- docMatches{id: doc.ID, found: scanDocument(doc.Content, batches)}
			}
		}()
	}

	go func() {
		for _, doc := range docs {
			jobs <- doc
		}
		close(jobs)
		wg.Wait()
		close(matches)
	}()

	for dm := range matches {
		for _, surface := range dm.found {
			result[surface] = append(result[surface], dm.id)
		}
	}

	// Union order depends on worker scheduling; sort for determinism.
	for surface := range result {
		sort.Strings(result[surface])
	}
	return result
}

func compileBatches(patterns []string, size int) []batch {
	batches := make([]batch, 0, (len(patterns)+size-1)/size)
	for start := 0; start < len(patterns); start += size {
		end := start + size
		if end > len(patterns) {
			end = len(patterns)
		}
		chunk := patterns[start:end]

		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			AsciiCaseInsensitive: false,
			MatchOnlyWholeWords:  false,
			// StandardMatch is required for IterOverlapping, and
			// overlapping iteration is what gives exact
			// substring-containment semantics for candidates nested
			// inside longer candidates.
			MatchKind: ahocorasick.StandardMatch,
			DFA:       false,
		})
		batches = append(batches, batch{ac: builder.Build(chunk), surfaces: chunk})
	}
	return batches
}

// scanDocument returns the distinct candidate surfaces present in content.
func scanDocument(content string, batches []batch) []string {
	seen := make(map[string]struct{})
	for _, b := range batches {
		iter := b.ac.IterOverlapping(content)
		for {
			match := iter.Next()
			if match == nil {
				break
			}
			seen[b.surfaces[match.Pattern()]] = struct{}{}
		}
	}

	found := make([]string, 0, len(seen))
	for surface := range seen {
		found = append(found, surface)
	}
	return found
}
