// Package tokenize adapts a morphological analyzer to the token model the
// chunking engine consumes.
package tokenize

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

// Tokenizer produces the tagged token stream for a document's content.
type Tokenizer interface {
	Tokenize(content string) ([]grammar.Token, error)
}

// Kagome tokenizes with the kagome morphological analyzer and the IPA
// dictionary. Safe for concurrent use.
type Kagome struct {
	t *tokenizer.Tokenizer
}

// NewKagome builds the analyzer. Dictionary construction is the expensive
// part; build once and share.
func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("building kagome tokenizer: %w", err)
	}
	return &Kagome{t: t}, nil
}

// Tokenize analyzes content into tagged tokens.
func (k *Kagome) Tokenize(content string) ([]grammar.Token, error) {
	morphemes := k.t.Tokenize(content)

	out := make([]grammar.Token, 0, len(morphemes))
	for _, m := range morphemes {
		tok := grammar.Token{Surface: m.Surface}
		pos := m.POS()
		if len(pos) > 0 {
			tok.MajorTag = pos[0]
		}
		if len(pos) > 1 {
			tok.MinorTag = pos[1]
		}
		if form, ok := m.InflectionalForm(); ok {
			tok.InflectionForm = form
		}
		out = append(out, tok)
	}
	return out, nil
}
