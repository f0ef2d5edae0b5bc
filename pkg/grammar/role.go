// Package grammar classifies morphologically tagged tokens into the role
// families the phrase chunker builds on.
package grammar

// ============================================================================
// Roles
// ============================================================================

// Role labels a token or chunk. The set is open: a token whose tag has no
// dedicated mapping keeps its raw major tag as the role.
type Role string

const (
	NP      Role = "NP"
	VP      Role = "VP"
	ADJP    Role = "ADJP"
	MOD     Role = "MOD"
	PAttr   Role = "P_attr"
	PObj    Role = "P_obj"
	PSubj   Role = "P_subj"
	PConn   Role = "P_conn"
	PPara   Role = "P_para"
	PReason Role = "P_reason"
	P       Role = "P"
	Clause  Role = "Clause"
)

// ============================================================================
// Tokens
// ============================================================================

// Token is one morpheme as emitted by the morphological analyzer.
// Immutable once classified.
type Token struct {
	Surface        string `json:"surface"`
	MajorTag       string `json:"major_tag"`
	MinorTag       string `json:"minor_tag"`
	InflectionForm string `json:"inflection_form"`
}

// Tag constants from the IPA dictionary feature set.
const (
	TagNoun       = "名詞"
	TagPrefix     = "接頭詞"
	TagVerb       = "動詞"
	TagAux        = "助動詞"
	TagAdjective  = "形容詞"
	TagAdjectival = "形容動詞"
	TagAdverb     = "副詞"
	TagDeterminer = "連体詞"
	TagParticle   = "助詞"

	minorAttributive  = "連体化"
	minorCaseMarking  = "格助詞"
	minorBinding      = "係助詞"
	minorConnective   = "接続助詞"
	minorCoordinating = "並立助詞"
)

// Inflection forms relevant to prenominal licensing.
const (
	FormBase        = "基本形"
	FormAttributive = "連体形"
)

// ============================================================================
// Family classification
// ============================================================================

// Family is the coarse grammatical category a token belongs to.
type Family int

const (
	FamilyNoun Family = iota // nouns and noun prefixes
	FamilyVerb
	FamilyAuxiliary
	FamilyAdjective // adjectives and adjectival nouns
	FamilyModifier  // adverbs and determiners
	FamilyParticle
	FamilyOther
)

// familyRules is evaluated in order; the first match wins. Order matters:
// keep this an explicit list, not a map.
var familyRules = []struct {
	match  func(Token) bool
	family Family
}{
	{func(t Token) bool { return t.MajorTag == TagNoun || t.MajorTag == TagPrefix }, FamilyNoun},
	{func(t Token) bool { return t.MajorTag == TagVerb }, FamilyVerb},
	{func(t Token) bool { return t.MajorTag == TagAux }, FamilyAuxiliary},
	{func(t Token) bool { return t.MajorTag == TagAdjective || t.MajorTag == TagAdjectival }, FamilyAdjective},
	{func(t Token) bool { return t.MajorTag == TagAdverb || t.MajorTag == TagDeterminer }, FamilyModifier},
	{func(t Token) bool { return t.MajorTag == TagParticle }, FamilyParticle},
}

// Classify maps a token to its role family. Total: every tag maps to
// exactly one family, unseen tags map to FamilyOther.
func Classify(t Token) Family {
	for _, r := range familyRules {
		if r.match(t) {
			return r.family
		}
	}
	return FamilyOther
}

// ============================================================================
// Particle refinement
// ============================================================================

// particleRules refines a particle by subtype and surface, first match wins.
var particleRules = []struct {
	match func(minor, surface string) bool
	role  Role
}{
	{func(minor, _ string) bool { return minor == minorAttributive }, PAttr},
	{func(minor, surface string) bool { return minor == minorCaseMarking && surface == "を" }, PObj},
	{func(minor, surface string) bool {
		return (minor == minorCaseMarking || minor == minorBinding) && (surface == "が" || surface == "は")
	}, PSubj},
	{func(minor, _ string) bool { return minor == minorConnective }, PConn},
	{func(minor, _ string) bool { return minor == minorCoordinating }, PPara},
	{func(_, surface string) bool { return surface == "ので" || surface == "から" }, PReason},
}

// ParticleRole returns the refined role for a particle token.
func ParticleRole(t Token) Role {
	for _, r := range particleRules {
		if r.match(t.MinorTag, t.Surface) {
			return r.role
		}
	}
	return P
}

// TokenRole returns the chunk role a single token carries on its own.
// Noun and verb families are handled by the chunker's run rules and never
// reach this as single tokens; they still get a sensible answer here.
// A stray auxiliary with no preceding verb keeps its raw tag.
func TokenRole(t Token) Role {
	switch Classify(t) {
	case FamilyNoun:
		return NP
	case FamilyVerb:
		return VP
	case FamilyAdjective:
		return ADJP
	case FamilyModifier:
		return MOD
	case FamilyParticle:
		return ParticleRole(t)
	default:
		return Role(t.MajorTag)
	}
}
