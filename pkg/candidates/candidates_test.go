package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

func TestAddChunkAccumulatesRoles(t *testing.T) {
	s := NewSet()
	s.AddChunk("本を読む", grammar.VP)
	s.AddChunk("本を読む", grammar.NP)
	s.AddChunk("本を読む", grammar.VP)

	assert.ElementsMatch(t, []grammar.Role{grammar.NP, grammar.VP}, s.Roles("本を読む"))
	assert.Equal(t, 1, s.Len())
}

func TestLiteralCandidatesAreRoleless(t *testing.T) {
	s := NewSet()
	s.AddLiteral("ポッドキャスト")

	assert.Nil(t, s.Roles("ポッドキャスト"))
	assert.False(t, s.HasOnlyRole("ポッドキャスト", grammar.NP))
	assert.Contains(t, s.Surfaces(), "ポッドキャスト")
}

func TestExtractPatterns(t *testing.T) {
	s := NewSet()
	s.ExtractPatterns("今日はポッドキャストでAWS Lambdaの話。アプリの話も。短いカナは無視: アレ")

	surfaces := s.Surfaces()
	assert.Contains(t, surfaces, "ポッドキャスト")
	assert.Contains(t, surfaces, "アプリ")
	assert.Contains(t, surfaces, "AWS Lambda")
	assert.NotContains(t, surfaces, "アレ", "two-katakana runs are below the minimum")
}

func TestMerge(t *testing.T) {
	a := NewSet()
	a.AddChunk("東京タワー", grammar.NP)
	a.AddLiteral("RSS")

	b := NewSet()
	b.AddChunk("東京タワー", grammar.VP)
	b.AddChunk("夜景", grammar.NP)

	a.Merge(b)

	assert.ElementsMatch(t, []grammar.Role{grammar.NP, grammar.VP}, a.Roles("東京タワー"))
	assert.ElementsMatch(t, []string{"RSS", "夜景", "東京タワー"}, a.Surfaces())
}

// Re-running aggregation over the same inputs yields the identical
// surface-to-role-set mapping.
func TestAggregationIdempotence(t *testing.T) {
	build := func() *Set {
		s := NewSet()
		s.AddChunk("東京タワー", grammar.NP)
		s.AddChunk("夜景を見る", grammar.VP)
		s.AddLiteral("RSS")
		s.ExtractPatterns("ポッドキャストの話")
		return s
	}

	a, b := build(), build()
	assert.Equal(t, a.Surfaces(), b.Surfaces())
	for _, surface := range a.Surfaces() {
		assert.Equal(t, a.Roles(surface), b.Roles(surface), "roles for %q", surface)
	}

	// Merging a set into itself-shaped data changes nothing.
	a.Merge(b)
	assert.Equal(t, b.Surfaces(), a.Surfaces())
}

func TestHasOnlyRole(t *testing.T) {
	s := NewSet()
	s.AddChunk("犬", grammar.NP)
	s.AddChunk("猫", grammar.NP)
	s.AddChunk("猫", grammar.VP)

	assert.True(t, s.HasOnlyRole("犬", grammar.NP))
	assert.False(t, s.HasOnlyRole("猫", grammar.NP))
	assert.False(t, s.HasOnlyRole("未知", grammar.NP))
}
