// Package analyzer runs the full keyword pipeline over a transcript
// corpus: per-document chunking and candidate extraction, corpus-wide
// occurrence mapping, and the filtering stages.
package analyzer

import (
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/inajob/inajob-podcast-research/internal/corpus"
	"github.com/inajob/inajob-podcast-research/internal/tokenize"
	"github.com/inajob/inajob-podcast-research/pkg/candidates"
	"github.com/inajob/inajob-podcast-research/pkg/chunker"
	"github.com/inajob/inajob-podcast-research/pkg/filter"
	"github.com/inajob/inajob-podcast-research/pkg/grammar"
	"github.com/inajob/inajob-podcast-research/pkg/occurrence"
	"github.com/inajob/inajob-podcast-research/pkg/parser"
)

// TokenCache is the optional mtime-validated token store. Cache failures
// are degradations, never fatal: the analyzer re-tokenizes and moves on.
type TokenCache interface {
	Get(docID string, mtime int64) ([]grammar.Token, bool, error)
	Put(docID string, mtime int64, tokens []grammar.Token) error
}

// Options tunes an Analyzer. Zero values pick sensible defaults.
type Options struct {
	Cache     TokenCache
	Logger    *slog.Logger
	Workers   int
	BatchSize int
	Filter    filter.Config
}

// Analyzer is a reusable pipeline instance.
type Analyzer struct {
	tok       tokenize.Tokenizer
	cache     TokenCache
	log       *slog.Logger
	workers   int
	batchSize int
	filterCfg filter.Config
}

// New creates an Analyzer around a tokenizer.
func New(tok tokenize.Tokenizer, opts Options) *Analyzer {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	fc := opts.Filter
	if fc == (filter.Config{}) {
		fc = filter.DefaultConfig()
	}
	return &Analyzer{
		tok:       tok,
		cache:     opts.Cache,
		log:       log,
		workers:   workers,
		batchSize: opts.BatchSize,
		filterCfg: fc,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	// KeywordToEpisodes maps each surviving keyword to the sorted ids of
	// the documents containing it.
	KeywordToEpisodes map[string][]string
	// EpisodeToKeywords is the inverse view, keyword lists sorted.
	EpisodeToKeywords map[string][]string
	// CuratedSurvivors are the curated seed keywords that passed the
	// filters, sorted.
	CuratedSurvivors []string
}

// Run executes the pipeline. The curated list seeds the candidate set as
// roleless literals alongside the engine-derived candidates.
func (a *Analyzer) Run(docs []corpus.Document, curated []string) Result {
	set := a.collectCandidates(docs)
	for _, keyword := range curated {
		set.AddLiteral(keyword)
	}
	a.log.Info("candidates collected", "documents", len(docs), "candidates", set.Len())

	mapper := occurrence.NewMapper(a.batchSize, a.workers)
	occ := mapper.Map(occurrenceDocs(docs), set.Surfaces())

	kept := filter.Run(occ, len(docs), set, a.filterCfg)
	a.log.Info("keywords filtered", "matched", len(occ), "kept", len(kept))

	return Result{
		KeywordToEpisodes: kept,
		EpisodeToKeywords: invert(kept),
		CuratedSurvivors:  survivors(curated, kept),
	}
}

// collectCandidates fans the per-document extraction out over a worker
// pool and merges the per-document sets at a single point.
func (a *Analyzer) collectCandidates(docs []corpus.Document) *candidates.Set {
	jobs := make(chan corpus.Document)
	sets := make(chan *candidates.Set, len(docs))

	var wg sync.WaitGroup
	for w := 0; w < a.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				sets <- a.extractDocument(doc)
			}
		}()
	}

	go func() {
		for _, doc := range docs {
			jobs <- doc
		}
		close(jobs)
		wg.Wait()
		close(sets)
	}()

	merged := candidates.NewSet()
	for set := range sets {
		merged.Merge(set)
	}
	return merged
}

// extractDocument produces one document's candidate set: harvested
// phrases from the chunking engine plus raw pattern matches.
func (a *Analyzer) extractDocument(doc corpus.Document) *candidates.Set {
	set := candidates.NewSet()
	set.ExtractPatterns(doc.Content)

	tokens, err := a.tokenizeCached(doc)
	if err != nil {
		a.log.Warn("tokenization failed, skipping engine candidates", "doc", doc.ID, "error", err)
		return set
	}

	forest := parser.New().Parse(chunker.BaseChunks(tokens))
	parser.Harvest(forest, set.AddChunk)
	return set
}

// tokenizeCached consults the token cache before paying for a fresh
// morphological analysis.
func (a *Analyzer) tokenizeCached(doc corpus.Document) ([]grammar.Token, error) {
	if a.cache != nil {
		tokens, ok, err := a.cache.Get(doc.ID, doc.ModTime)
		if err != nil {
			a.log.Warn("token cache read failed", "doc", doc.ID, "error", err)
		} else if ok {
			return tokens, nil
		}
	}

	tokens, err := a.tok.Tokenize(doc.Content)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.Put(doc.ID, doc.ModTime, tokens); err != nil {
			a.log.Warn("token cache write failed", "doc", doc.ID, "error", err)
		}
	}
	return tokens, nil
}

func occurrenceDocs(docs []corpus.Document) []occurrence.Document {
	out := make([]occurrence.Document, len(docs))
	for i, doc := range docs {
		out[i] = occurrence.Document{ID: doc.ID, Content: doc.Content}
	}
	return out
}

func invert(keywordToDocs map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for keyword, ids := range keywordToDocs {
		for _, id := range ids {
			out[id] = append(out[id], keyword)
		}
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}

func survivors(curated []string, kept map[string][]string) []string {
	out := make([]string, 0, len(curated))
	for _, keyword := range curated {
		if _, ok := kept[keyword]; ok {
			out = append(out, keyword)
		}
	}
	sort.Strings(out)
	return out
}
