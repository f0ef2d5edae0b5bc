// Package parser merges base chunks into nested phrases with an ordered
// shift-reduce grammar. Reduction is greedy: the highest-priority rule
// whose right-hand side matches the stack tail is applied until no rule
// matches, then one chunk is shifted from the input queue.
package parser

import (
	"unicode/utf8"

	"github.com/inajob/inajob-podcast-research/pkg/chunker"
	"github.com/inajob/inajob-podcast-research/pkg/grammar"
)

// ============================================================================
// Grammar rules
// ============================================================================

// Rule rewrites a stack tail matching Sequence into one chunk of Result
// role. Guard, when set, receives the matched tail and can veto the
// reduction.
type Rule struct {
	Result   grammar.Role
	Sequence []grammar.Role
	Guard    func(tail []*chunker.Chunk) bool
}

// DefaultRules returns the production rules in priority order. Longer and
// higher-priority rules come first; order determines which reduction wins.
func DefaultRules() []Rule {
	return []Rule{
		// Noun phrases
		{Result: grammar.NP, Sequence: []grammar.Role{grammar.NP, grammar.PAttr, grammar.NP}},
		{Result: grammar.NP, Sequence: []grammar.Role{grammar.VP, grammar.NP}, Guard: prenominalVP},
		{Result: grammar.NP, Sequence: []grammar.Role{grammar.MOD, grammar.NP}},
		{Result: grammar.NP, Sequence: []grammar.Role{grammar.NP, grammar.PPara, grammar.NP}},

		// Verb phrases
		{Result: grammar.VP, Sequence: []grammar.Role{grammar.NP, grammar.PObj, grammar.VP}},
		{Result: grammar.VP, Sequence: []grammar.Role{grammar.VP, grammar.PConn, grammar.VP}},
		{Result: grammar.VP, Sequence: []grammar.Role{grammar.MOD, grammar.VP}},
		{Result: grammar.VP, Sequence: []grammar.Role{grammar.NP, grammar.PSubj, grammar.VP}},

		// Adjective phrases
		{Result: grammar.ADJP, Sequence: []grammar.Role{grammar.NP, grammar.PSubj, grammar.ADJP}},
		{Result: grammar.ADJP, Sequence: []grammar.Role{grammar.MOD, grammar.ADJP}},

		// Clauses
		{Result: grammar.Clause, Sequence: []grammar.Role{grammar.ADJP, grammar.PReason, grammar.VP}},
	}
}

// prenominalVP licenses "VP NP" only when the verb phrase can modify a
// following noun: its final token is an auxiliary, or its conjugation is
// the base or attributive form.
func prenominalVP(tail []*chunker.Chunk) bool {
	vp := tail[0]
	last, ok := vp.LastToken()
	if !ok {
		return false
	}
	if grammar.Classify(last) == grammar.FamilyAuxiliary {
		return true
	}
	return last.InflectionForm == grammar.FormBase || last.InflectionForm == grammar.FormAttributive
}

// ============================================================================
// Parser
// ============================================================================

// Parser runs the shift-reduce loop over one document's base chunks.
// Safe for reuse across documents; all parse state is local to Parse.
type Parser struct {
	rules    []Rule
	maxArity int
}

// New creates a Parser with the default grammar.
func New() *Parser {
	return NewWithRules(DefaultRules())
}

// NewWithRules creates a Parser with a custom rule set, checked in the
// given order.
func NewWithRules(rules []Rule) *Parser {
	maxArity := 0
	for _, r := range rules {
		if len(r.Sequence) > maxArity {
			maxArity = len(r.Sequence)
		}
	}
	return &Parser{rules: rules, maxArity: maxArity}
}

// Parse reduces base chunks to the smallest forest the grammar allows.
// A single remaining chunk is a full parse; a longer forest means the
// document did not reduce completely, which is an expected outcome and
// still worth harvesting.
func (p *Parser) Parse(chunks []*chunker.Chunk) []*chunker.Chunk {
	stack := make([]*chunker.Chunk, 0, len(chunks))
	queue := chunks

	for len(queue) > 0 || len(stack) > 1 {
		reduced := false
		for {
			rule, arity, ok := p.findMatch(stack)
			if !ok {
				break
			}
			tail := make([]*chunker.Chunk, arity)
			copy(tail, stack[len(stack)-arity:])
			stack = stack[:len(stack)-arity]
			stack = append(stack, chunker.Merge(rule.Result, tail))
			reduced = true
		}

		if len(queue) > 0 {
			stack = append(stack, queue[0])
			queue = queue[1:]
		} else if !reduced {
			// Queue drained, nothing reduces: halt with the partial forest.
			return stack
		}
	}

	return stack
}

// findMatch checks rules in priority order against the stack tail and
// returns the first whose sequence matches exactly and whose guard passes.
func (p *Parser) findMatch(stack []*chunker.Chunk) (Rule, int, bool) {
	for _, rule := range p.rules {
		arity := len(rule.Sequence)
		if len(stack) < arity {
			continue
		}
		tail := stack[len(stack)-arity:]
		if !rolesMatch(tail, rule.Sequence) {
			continue
		}
		if rule.Guard != nil && !rule.Guard(tail) {
			continue
		}
		return rule, arity, true
	}
	return Rule{}, 0, false
}

func rolesMatch(tail []*chunker.Chunk, seq []grammar.Role) bool {
	for i, role := range seq {
		if tail[i].Role != role {
			return false
		}
	}
	return true
}

// ============================================================================
// Harvesting
// ============================================================================

// harvestRoles are the phrase roles worth keeping as keyword candidates.
var harvestRoles = map[grammar.Role]bool{
	grammar.NP:   true,
	grammar.VP:   true,
	grammar.ADJP: true,
}

// Harvest walks a parse forest, visiting every node (including all
// intermediate merged chunks) whose role is NP, VP or ADJP and whose
// surface is longer than one rune.
func Harvest(forest []*chunker.Chunk, visit func(surface string, role grammar.Role)) {
	for _, root := range forest {
		harvestChunk(root, visit)
	}
}

func harvestChunk(c *chunker.Chunk, visit func(surface string, role grammar.Role)) {
	if c == nil {
		return
	}
	if harvestRoles[c.Role] && utf8.RuneCountInString(c.Surface) > 1 {
		visit(c.Surface, c.Role)
	}
	for _, child := range c.Children {
		harvestChunk(child, visit)
	}
}
