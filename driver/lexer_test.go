package driver

import (
	"errors"
	"strings"
	"testing"

	"github.com/gramgen/gramgen/spec"
)

func lexGrammar(t *testing.T) *spec.CompiledGrammar {
	t.Helper()

	return compile(t, &spec.GrammarSpec{
		Name: "assign",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "whitespace", Pattern: "[\\u{0009}\\u{0020}]+", Skip: true},
			{ID: 2, Name: "identifier", Pattern: "[a-z]+", ValueType: spec.ValueTypeText},
			{ID: 3, Name: "number", Pattern: "[0-9]+", ValueType: spec.ValueTypeInt},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name: "Assign",
				Needs: []*spec.NeedSpec{
					{Field: "name", Type: spec.ValueTypeText},
					{Field: "value", Type: spec.ValueTypeInt},
				},
				Patterns: []string{"identifier number"},
				Root:     true,
			},
		},
	})
}

func TestParseText(t *testing.T) {
	cgram := lexGrammar(t)

	inst, err := ParseText(cgram, strings.NewReader("count 42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := inst.Field("name"); v != "count" {
		t.Errorf("unexpected name: %v", v)
	}
	if v, _ := inst.Field("value"); v != 42 {
		t.Errorf("unexpected value: %v", v)
	}
}

func TestParseTextInvalidInput(t *testing.T) {
	cgram := lexGrammar(t)

	_, err := ParseText(cgram, strings.NewReader("count = 42"))
	var lerr *LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("unexpected error: %v", err)
	}
	if lerr.Row != 1 {
		t.Errorf("unexpected position: %v:%v", lerr.Row, lerr.Col)
	}
}

func TestLexerSkipsSkipKinds(t *testing.T) {
	cgram := lexGrammar(t)

	lex, err := NewLexer(cgram, strings.NewReader("a 1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	toks, err := readAllTokens(lex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 2 {
		t.Fatalf("unexpected token count: %v (%v)", len(toks), toks)
	}
	if toks[0].KindName != "identifier" || toks[1].KindName != "number" {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestLexerRequiresLexicalSpec(t *testing.T) {
	// Token kinds without patterns embed no lexical specification.
	cgram := compile(t, &spec.GrammarSpec{
		Name: "bare",
		Tokens: []*spec.TokenKindSpec{
			{ID: 1, Name: "a"},
		},
		Classes: []*spec.RuleClassSpec{
			{
				Name:     "R",
				Patterns: []string{"a"},
				Root:     true,
			},
		},
	})

	if _, err := NewLexer(cgram, strings.NewReader("a")); err == nil {
		t.Fatalf("an error must occur")
	}
}
