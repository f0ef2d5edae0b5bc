package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inajob/inajob-podcast-research/internal/corpus"
	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

// fakeTokenizer maps exact document content to a fixed token stream.
// Unknown content tokenizes to nothing.
type fakeTokenizer struct {
	byContent map[string][]grammar.Token
	err       error
}

func (f *fakeTokenizer) Tokenize(content string) ([]grammar.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byContent[content], nil
}

func noun(surface string) grammar.Token {
	return grammar.Token{Surface: surface, MajorTag: grammar.TagNoun, MinorTag: "一般"}
}

func particle(surface, minor string) grammar.Token {
	return grammar.Token{Surface: surface, MajorTag: grammar.TagParticle, MinorTag: minor}
}

func verb(surface, form string) grammar.Token {
	return grammar.Token{Surface: surface, MajorTag: grammar.TagVerb, MinorTag: "自立", InflectionForm: form}
}

// corpusFixture builds a ten-document corpus where 東京タワー appears in
// three documents and ラジオ in two.
func corpusFixture() ([]corpus.Document, *fakeTokenizer) {
	contents := []string{
		"東京タワーの写真",
		"東京タワーを見る",
		"東京タワー",
		"ラジオの話",
		"ラジオ",
		"今日は良い天気です。",
		"明日も晴れそうです。",
		"昨日は雨でした。",
		"来週の予定の話です。",
		"短い挨拶だけの回です。",
	}

	tok := &fakeTokenizer{byContent: map[string][]grammar.Token{
		contents[0]: {noun("東京"), noun("タワー"), particle("の", "連体化"), noun("写真")},
		contents[1]: {noun("東京"), noun("タワー"), particle("を", "格助詞"), verb("見る", grammar.FormBase)},
		contents[2]: {noun("東京"), noun("タワー")},
		contents[3]: {noun("ラジオ"), particle("の", "連体化"), noun("話")},
		contents[4]: {noun("ラジオ")},
	}}

	docs := make([]corpus.Document, len(contents))
	for i, content := range contents {
		docs[i] = corpus.Document{
			ID:      fmt.Sprintf("ep%03d.txt.md", i+1),
			Title:   fmt.Sprintf("第%d回", i+1),
			Content: content,
			ModTime: int64(i),
		}
	}
	return docs, tok
}

func TestRunEndToEnd(t *testing.T) {
	docs, tok := corpusFixture()
	a := New(tok, Options{Logger: slog.New(slog.DiscardHandler)})

	res := a.Run(docs, nil)

	// 東京タワー is in three of ten documents: above the lower bound,
	// well below the 0.8 share cap.
	require.Contains(t, res.KeywordToEpisodes, "東京タワー")
	assert.Equal(t, []string{"ep001.txt.md", "ep002.txt.md", "ep003.txt.md"}, res.KeywordToEpisodes["東京タワー"])

	// ラジオ only reaches two documents and the lower bound is strict.
	assert.NotContains(t, res.KeywordToEpisodes, "ラジオ")

	// タワー is pattern-extracted but occurs in exactly the documents of
	// its superstring, so dominance pruning removes it.
	assert.NotContains(t, res.KeywordToEpisodes, "タワー")

	for _, id := range []string{"ep001.txt.md", "ep002.txt.md", "ep003.txt.md"} {
		assert.Equal(t, []string{"東京タワー"}, res.EpisodeToKeywords[id])
	}
	assert.NotContains(t, res.EpisodeToKeywords, "ep006.txt.md")
}

func TestRunCuratedSurvivors(t *testing.T) {
	docs, tok := corpusFixture()
	a := New(tok, Options{Logger: slog.New(slog.DiscardHandler)})

	// 東京タワー survives the filters; 存在しない語 matches nothing.
	res := a.Run(docs, []string{"東京タワー", "存在しない語"})

	assert.Equal(t, []string{"東京タワー"}, res.CuratedSurvivors)
	assert.NotContains(t, res.KeywordToEpisodes, "存在しない語")
}

func TestRunTokenizerFailureDegrades(t *testing.T) {
	docs, tok := corpusFixture()
	tok.err = errors.New("dictionary unavailable")
	a := New(tok, Options{Logger: slog.New(slog.DiscardHandler)})

	// With the engine out, pattern extraction still finds the katakana
	// run, and with no superstring candidate left it survives dominance.
	res := a.Run(docs, nil)
	assert.NotContains(t, res.KeywordToEpisodes, "東京タワー")
	assert.Contains(t, res.KeywordToEpisodes, "タワー")
}

// countingCache wraps an in-memory map and records traffic. Workers hit
// it concurrently, so it locks like the real store does.
type countingCache struct {
	mu      sync.Mutex
	entries map[string][]grammar.Token
	mtimes  map[string]int64
	hits    int
	puts    int
}

func newCountingCache() *countingCache {
	return &countingCache{
		entries: make(map[string][]grammar.Token),
		mtimes:  make(map[string]int64),
	}
}

func (c *countingCache) Get(docID string, mtime int64) ([]grammar.Token, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tokens, ok := c.entries[docID]
	if !ok || c.mtimes[docID] != mtime {
		return nil, false, nil
	}
	c.hits++
	return tokens, true, nil
}

func (c *countingCache) Put(docID string, mtime int64, tokens []grammar.Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[docID] = tokens
	c.mtimes[docID] = mtime
	c.puts++
	return nil
}

func TestRunUsesTokenCache(t *testing.T) {
	docs, tok := corpusFixture()
	cache := newCountingCache()
	a := New(tok, Options{Cache: cache, Logger: slog.New(slog.DiscardHandler)})

	first := a.Run(docs, nil)
	assert.Equal(t, len(docs), cache.puts)
	assert.Zero(t, cache.hits)

	second := a.Run(docs, nil)
	assert.Equal(t, len(docs), cache.hits)
	assert.Equal(t, first.KeywordToEpisodes, second.KeywordToEpisodes)
}
