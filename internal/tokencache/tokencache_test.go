package tokencache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

func TestRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	tokens := []grammar.Token{
		{Surface: "東京", MajorTag: grammar.TagNoun, MinorTag: "固有名詞"},
		{Surface: "タワー", MajorTag: grammar.TagNoun, MinorTag: "一般"},
	}
	require.NoError(t, s.Put("ep1.txt.md", 100, tokens))

	got, ok, err := s.Get("ep1.txt.md", 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tokens, got)
}

func TestMissIsNotAnError(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("unknown", 100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModificationInvalidates(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	tokens := []grammar.Token{{Surface: "語", MajorTag: grammar.TagNoun}}
	require.NoError(t, s.Put("ep1.txt.md", 100, tokens))

	_, ok, err := s.Get("ep1.txt.md", 200)
	require.NoError(t, err)
	assert.False(t, ok, "changed mtime must miss")

	// Re-tokenized content replaces the stale entry.
	fresh := []grammar.Token{{Surface: "新語", MajorTag: grammar.TagNoun}}
	require.NoError(t, s.Put("ep1.txt.md", 200, fresh))

	got, ok, err := s.Get("ep1.txt.md", 200)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fresh, got)
}
