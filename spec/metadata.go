package spec

// The metadata contract is data-only: the builder never inspects live
// objects, only these descriptive records. A reflection layer, a DSL
// front end, or a hand-written file can all produce them.

// Value types a token kind may carry. The set is open; these are the two
// conversions the lexer adapter knows how to perform.
const (
	ValueTypeText = "text"
	ValueTypeInt  = "int"
)

// Eligibility settings for a rule class. See GrammarSpec.RestrictImplicit.
const (
	EligibilityDefault      = ""
	EligibilityExplicitOnly = "explicit-only"
	EligibilityImplicit     = "implicit"
)

// TokenKindSpec declares one token kind. Pattern is an optional lexical
// pattern; when every parse input arrives as a pre-lexed token slice it may
// be left empty.
type TokenKindSpec struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ValueType string `json:"value_type,omitempty" yaml:"value_type,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Skip      bool   `json:"skip,omitempty" yaml:"skip,omitempty"`
}

// NeedSpec declares one field dependency of a rule class. Type names either
// a value type, a token kind, a rule class, or an interface; declaration
// order matters because implicit patterns are derived from it.
type NeedSpec struct {
	Field       string `json:"field" yaml:"field"`
	Type        string `json:"type" yaml:"type"`
	Specializer string `json:"specializer,omitempty" yaml:"specializer,omitempty"`
}

// RuleClassSpec declares one rule class. Patterns holds the explicit rule
// strings; when empty, one implicit pattern is derived from Needs.
type RuleClassSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Needs       []*NeedSpec `json:"needs,omitempty" yaml:"needs,omitempty"`
	Interfaces  []string    `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Patterns    []string    `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Root        bool        `json:"root,omitempty" yaml:"root,omitempty"`
	Eligibility string      `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// GrammarSpec is the complete raw input of the grammar model builder.
//
// When RestrictImplicit is set, only the root, classes carrying explicit
// patterns, anything they transitively need, and classes individually opted
// back in are eligible parse targets.
type GrammarSpec struct {
	Name             string           `json:"name" yaml:"name"`
	Tokens           []*TokenKindSpec `json:"tokens" yaml:"tokens"`
	Classes          []*RuleClassSpec `json:"classes" yaml:"classes"`
	RestrictImplicit bool             `json:"restrict_implicit,omitempty" yaml:"restrict_implicit,omitempty"`
}
