package spec

import (
	mlspec "github.com/nihei9/maleeni/spec"
)

// Element kinds a compiled pattern may reference.
const (
	ElementKindToken     = "token"
	ElementKindClass     = "class"
	ElementKindInterface = "interface"
)

// CompiledTokenKind is a token kind of the validated model.
type CompiledTokenKind struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ValueType string `json:"value_type,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Skip      bool   `json:"skip,omitempty"`
}

// CompiledNeed is one field dependency of a compiled rule class. Value
// reports whether the field stores a token's carried value rather than the
// matched token or child instance itself.
type CompiledNeed struct {
	Field string `json:"field"`
	Value bool   `json:"value,omitempty"`
}

// CompiledElement is one element of a compiled pattern. Index refers into
// Tokens, Classes, or Interfaces of the containing grammar depending on Kind.
type CompiledElement struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
}

// CompiledPattern is one alternative of a rule class, with the need-to-
// element binding resolved at build time. Bindings[i] is the element index
// feeding need i.
type CompiledPattern struct {
	Elements []*CompiledElement `json:"elements"`
	Bindings []int              `json:"bindings,omitempty"`
}

// CompiledClass is a rule class of the validated model. Patterns are tried
// strictly in order at parse time.
type CompiledClass struct {
	Name     string             `json:"name"`
	Needs    []*CompiledNeed    `json:"needs,omitempty"`
	Patterns []*CompiledPattern `json:"patterns"`
}

// CompiledInterface is an interface with its eligible implementors in
// try-order. Implementors are class indices.
type CompiledInterface struct {
	Name         string `json:"name"`
	Implementors []int  `json:"implementors"`
}

// CompiledGrammar is the immutable grammar model in wire form. It is what a
// generated parser embeds; the driver interprets it directly. Lexical is
// present only when the token kinds carry lexical patterns.
type CompiledGrammar struct {
	Name       string                 `json:"name"`
	Tokens     []*CompiledTokenKind   `json:"tokens"`
	Classes    []*CompiledClass       `json:"classes"`
	Interfaces []*CompiledInterface   `json:"interfaces,omitempty"`
	Root       int                    `json:"root"`
	Lexical    *mlspec.CompiledLexSpec `json:"lexical,omitempty"`
}
