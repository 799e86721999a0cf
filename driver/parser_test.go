package driver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gramgen/gramgen/grammar"
	"github.com/gramgen/gramgen/spec"
)

func compile(t *testing.T, gspec *spec.GrammarSpec) *spec.CompiledGrammar {
	t.Helper()

	b := &grammar.GrammarBuilder{
		Spec: gspec,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cgram, err := grammar.Compile(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cgram
}

func parse(t *testing.T, cgram *spec.CompiledGrammar, toks []*Token) (*Instance, error) {
	t.Helper()

	p, err := NewParser(cgram, NewTokenStream(toks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p.Parse()
}

func tok(kind int, name string) *Token {
	return &Token{
		Kind:     kind,
		KindName: name,
		Text:     name,
	}
}

func valTok(kind int, name string, v any) *Token {
	return &Token{
		Kind:     kind,
		KindName: name,
		Value:    v,
	}
}

func TestParserTokenValues(t *testing.T) {
	cgram := compile(t, &spec.GrammarSpec{
		Name: "expr",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "identifier", ValueType: spec.ValueTypeText},
			{ID: 2, Name: "number", ValueType: spec.ValueTypeInt},
			{ID: 3, Name: "*"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name: "Expr",
				Needs: []*spec.NeedSpec{
					{Field: "identifier", Type: spec.ValueTypeText},
					{Field: "number", Type: spec.ValueTypeInt},
				},
				Root: true,
			},
		},
	})

	inst, err := parse(t, cgram, []*Token{
		valTok(0, "identifier", "hello"),
		valTok(1, "number", 3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.ClassName != "Expr" {
		t.Fatalf("unexpected class: %v", inst.ClassName)
	}
	if v, _ := inst.Field("identifier"); v != "hello" {
		t.Errorf("unexpected field value: %v", v)
	}
	if v, _ := inst.Field("number"); v != 3 {
		t.Errorf("unexpected field value: %v", v)
	}

	// The same tokens in the wrong order derive nothing.
	_, err = parse(t, cgram, []*Token{
		valTok(1, "number", 3),
		valTok(0, "identifier", "hello"),
	})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != FailureNoMatchingDerivation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParserSpecializedPatterns(t *testing.T) {
	cgram := compile(t, &spec.GrammarSpec{
		Name: "cmp",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "number", ValueType: spec.ValueTypeInt},
			{ID: 2, Name: ">"},
			{ID: 3, Name: "<"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name: "Comparison",
				Needs: []*spec.NeedSpec{
					{Field: "gt", Type: spec.ValueTypeInt, Specializer: "gt"},
					{Field: "lt", Type: spec.ValueTypeInt, Specializer: "lt"},
				},
				Patterns: []string{
					"number:gt > number:lt",
					"number:lt < number:gt",
				},
				Root: true,
			},
		},
	})

	tests := []struct {
		caption string
		toks    []*Token
		gt      int
		lt      int
	}{
		{
			caption: "the first number of a > comparison is the greater one",
			toks: []*Token{
				valTok(0, "number", 5),
				tok(1, ">"),
				valTok(0, "number", 3),
			},
			gt: 5,
			lt: 3,
		},
		{
			caption: "the first number of a < comparison is the lesser one",
			toks: []*Token{
				valTok(0, "number", 5),
				tok(2, "<"),
				valTok(0, "number", 3),
			},
			gt: 3,
			lt: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			inst, err := parse(t, cgram, tt.toks)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v, _ := inst.Field("gt"); v != tt.gt {
				t.Errorf("unexpected gt: %v", v)
			}
			if v, _ := inst.Field("lt"); v != tt.lt {
				t.Errorf("unexpected lt: %v", v)
			}
		})
	}
}

func parenGrammar(t *testing.T) *spec.CompiledGrammar {
	t.Helper()

	return compile(t, &spec.GrammarSpec{
		Name: "paren",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "("},
			{ID: 2, Name: ")"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name:       "Empty",
				Patterns:   []string{"( )"},
				Interfaces: []string{"Matching"},
				Root:       true,
			},
			{
				Name: "Enclosing",
				Needs: []*spec.NeedSpec{
					{Field: "inner", Type: "Matching"},
				},
				Patterns:   []string{"( Matching )"},
				Interfaces: []string{"Matching"},
			},
		},
	})
}

func TestParserRecursionThroughInterface(t *testing.T) {
	cgram := compile(t, &spec.GrammarSpec{
		Name: "paren",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "("},
			{ID: 2, Name: ")"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name: "Parens",
				Needs: []*spec.NeedSpec{
					{Field: "expr", Type: "Matching"},
				},
				Root: true,
			},
			{
				Name:       "Empty",
				Patterns:   []string{"( )"},
				Interfaces: []string{"Matching"},
			},
			{
				Name: "Enclosing",
				Needs: []*spec.NeedSpec{
					{Field: "inner", Type: "Matching"},
				},
				Patterns:   []string{"( Matching )"},
				Interfaces: []string{"Matching"},
			},
		},
	})

	// (())
	inst, err := parse(t, cgram, []*Token{
		tok(0, "("),
		tok(0, "("),
		tok(1, ")"),
		tok(1, ")"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outer, ok := inst.Child("expr")
	if !ok || outer.ClassName != "Enclosing" {
		t.Fatalf("unexpected outer instance: %v", outer)
	}
	innermost, ok := outer.Child("inner")
	if !ok || innermost.ClassName != "Empty" {
		t.Fatalf("unexpected inner instance: %v", innermost)
	}

	// A lone opening parenthesis derives nothing, and the recursive
	// implementor search still terminates.
	_, err = parse(t, cgram, []*Token{
		tok(0, "("),
	})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != FailureNoMatchingDerivation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParserOrderedChoice(t *testing.T) {
	// Both implementors match the same input; the first-declared one wins.
	cgram := compile(t, &spec.GrammarSpec{
		Name: "choice",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "a"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name: "Root",
				Needs: []*spec.NeedSpec{
					{Field: "value", Type: "I"},
				},
				Root: true,
			},
			{
				Name:       "First",
				Patterns:   []string{"a"},
				Interfaces: []string{"I"},
			},
			{
				Name:       "Second",
				Patterns:   []string{"a"},
				Interfaces: []string{"I"},
			},
		},
	})

	inst, err := parse(t, cgram, []*Token{
		tok(0, "a"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chosen, _ := inst.Child("value")
	if chosen == nil || chosen.ClassName != "First" {
		t.Fatalf("unexpected implementor: %v", chosen)
	}
}

func TestParserLeftRecursionGuard(t *testing.T) {
	// L refers to its own interface at the head of its pattern. The memo
	// table's in-progress entry fails that attempt, so the parse falls
	// through to the terminating implementor instead of looping.
	cgram := compile(t, &spec.GrammarSpec{
		Name: "leftrec",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "a"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name: "Root",
				Needs: []*spec.NeedSpec{
					{Field: "value", Type: "I"},
				},
				Root: true,
			},
			{
				Name:       "L",
				Patterns:   []string{"I a"},
				Interfaces: []string{"I"},
				Needs: []*spec.NeedSpec{
					{Field: "head", Type: "I"},
				},
			},
			{
				Name:       "A",
				Patterns:   []string{"a"},
				Interfaces: []string{"I"},
			},
		},
	})

	inst, err := parse(t, cgram, []*Token{
		tok(0, "a"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chosen, _ := inst.Child("value")
	if chosen == nil || chosen.ClassName != "A" {
		t.Fatalf("unexpected implementor: %v", chosen)
	}
}

func TestParserTrailingInput(t *testing.T) {
	cgram := parenGrammar(t)

	_, err := parse(t, cgram, []*Token{
		tok(0, "("),
		tok(1, ")"),
		tok(1, ")"),
	})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("unexpected error: %v", err)
	}
	if perr.Kind != FailureTrailingInput || perr.Pos != 2 {
		t.Fatalf("unexpected failure: %v at %v", perr.Kind, perr.Pos)
	}
	if perr.Token == nil || perr.Token.KindName != ")" {
		t.Fatalf("unexpected token: %v", perr.Token)
	}
}

func TestParserEmptyInput(t *testing.T) {
	cgram := parenGrammar(t)

	_, err := parse(t, cgram, nil)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("unexpected error: %v", err)
	}
	if perr.Kind != FailureNoMatchingDerivation || perr.Token != nil {
		t.Fatalf("unexpected failure: %v", perr)
	}
}

func TestParserDeterminism(t *testing.T) {
	cgram := parenGrammar(t)
	toks := func() []*Token {
		return []*Token{
			tok(0, "("),
			tok(1, ")"),
		}
	}

	first, err := parse(t, cgram, toks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := parse(t, cgram, toks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parses disagree: %v vs %v", first, second)
	}
}

func TestParserMemoization(t *testing.T) {
	// Both root patterns open with the same class at position 0. The second
	// pattern must reuse the memoized outcome rather than recompute it.
	cgram := compile(t, &spec.GrammarSpec{
		Name: "memo",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "a"},
			{ID: 2, Name: "b"},
			{ID: 3, Name: "c"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name: "Root",
				Patterns: []string{
					"A b",
					"A c",
				},
				Root: true,
			},
			{
				Name:     "A",
				Patterns: []string{"a"},
			},
		},
	})

	p, err := NewParser(cgram, NewTokenStream([]*Token{
		tok(0, "a"),
		tok(2, "c"),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Parse(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, exist := p.memo[memoKey{entity: 1, pos: 0}]
	if !exist {
		t.Fatalf("the (A, 0) state must be memoized")
	}
	if e.computations != 1 {
		t.Fatalf("the (A, 0) state must be computed exactly once; got: %v", e.computations)
	}
}
