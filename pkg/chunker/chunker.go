// Package chunker groups a document's token stream into base chunks:
// maximal noun runs, verb+auxiliary runs, single-token modifier and
// particle units. Base chunks cover the input exactly once.
package chunker

import (
	"strings"

	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

// ============================================================================
// Chunk
// ============================================================================

// Chunk is a contiguous span of tokens merged into one labeled unit.
// Base chunks have no children; merged chunks own their children
// exclusively. Surface is always the in-order concatenation of the
// constituent token surfaces.
type Chunk struct {
	Surface  string
	Role     grammar.Role
	Tokens   []grammar.Token
	Children []*Chunk
}

// NewBase builds a base chunk from a token run.
func NewBase(role grammar.Role, tokens []grammar.Token) *Chunk {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Surface)
	}
	return &Chunk{Surface: sb.String(), Role: role, Tokens: tokens}
}

// Merge combines chunks into one parent. The parent's surface and token
// sequence are the ordered concatenation of the children's.
func Merge(role grammar.Role, children []*Chunk) *Chunk {
	var sb strings.Builder
	var tokens []grammar.Token
	for _, c := range children {
		sb.WriteString(c.Surface)
		tokens = append(tokens, c.Tokens...)
	}
	return &Chunk{Surface: sb.String(), Role: role, Tokens: tokens, Children: children}
}

// LastToken returns the final source token, or false for an empty chunk.
func (c *Chunk) LastToken() (grammar.Token, bool) {
	if len(c.Tokens) == 0 {
		return grammar.Token{}, false
	}
	return c.Tokens[len(c.Tokens)-1], true
}

// ============================================================================
// Base chunking
// ============================================================================

// BaseChunks scans tokens left to right and emits base chunks. At each
// position the first matching rule wins and the cursor advances past all
// consumed tokens, so the output covers the input with no gaps or overlaps.
func BaseChunks(tokens []grammar.Token) []*Chunk {
	chunks := make([]*Chunk, 0, len(tokens)/2+1)
	i := 0

	for i < len(tokens) {
		if c, n := tryNounRun(tokens, i); n > 0 {
			chunks = append(chunks, c)
			i += n
			continue
		}
		if c, n := tryVerbRun(tokens, i); n > 0 {
			chunks = append(chunks, c)
			i += n
			continue
		}

		// Everything else is a single-token chunk; TokenRole covers
		// adjective/modifier units, refined particles, and the raw-tag
		// fallback for anything unclassified.
		tok := tokens[i]
		chunks = append(chunks, NewBase(grammar.TokenRole(tok), []grammar.Token{tok}))
		i++
	}

	return chunks
}

// tryNounRun: maximal run of noun-like or prefix tokens -> one NP chunk.
func tryNounRun(tokens []grammar.Token, start int) (*Chunk, int) {
	i := start
	for i < len(tokens) && grammar.Classify(tokens[i]) == grammar.FamilyNoun {
		i++
	}
	if i == start {
		return nil, 0
	}
	return NewBase(grammar.NP, tokens[start:i]), i - start
}

// tryVerbRun: a verb followed by a maximal run of auxiliaries -> one VP chunk.
func tryVerbRun(tokens []grammar.Token, start int) (*Chunk, int) {
	if grammar.Classify(tokens[start]) != grammar.FamilyVerb {
		return nil, 0
	}
	i := start + 1
	for i < len(tokens) && grammar.Classify(tokens[i]) == grammar.FamilyAuxiliary {
		i++
	}
	return NewBase(grammar.VP, tokens[start:i]), i - start
}
