package driver

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	mldriver "github.com/nihei9/maleeni/driver"

	"github.com/gramgen/gramgen/spec"
)

// LexError is a malformed-input condition reported by the lexer. It aborts
// parsing immediately; no recovery is attempted.
type LexError struct {
	Text string
	Row  int
	Col  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%v:%v: invalid input: %#v", e.Row, e.Col, e.Text)
}

// Lexer adapts a maleeni lexer to the engine's token-stream contract using
// the lexical specification embedded in a compiled grammar. Kinds flagged
// as skip never reach the parser.
type Lexer struct {
	cgram      *spec.CompiledGrammar
	d          *mldriver.Lexer
	kindByName map[string]int
}

// NewLexer prepares lexing of one source. The grammar must embed a lexical
// specification, i.e. its token kinds must carry patterns.
func NewLexer(cgram *spec.CompiledGrammar, src io.Reader) (*Lexer, error) {
	if cgram.Lexical == nil {
		return nil, errors.New("the grammar carries no lexical specification; parse from a token stream instead")
	}

	d, err := mldriver.NewLexer(mldriver.NewLexSpec(cgram.Lexical), src)
	if err != nil {
		return nil, err
	}

	kindByName := make(map[string]int, len(cgram.Tokens))
	for i, k := range cgram.Tokens {
		kindByName[k.Name] = i
	}

	return &Lexer{
		cgram:      cgram,
		d:          d,
		kindByName: kindByName,
	}, nil
}

func (l *Lexer) Next() (*Token, error) {
	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return nil, nil
		}
		if tok.Invalid {
			return nil, &LexError{
				Text: string(tok.Lexeme),
				Row:  tok.Row + 1,
				Col:  tok.Col + 1,
			}
		}

		idx, ok := l.kindByName[l.cgram.Lexical.KindNames[tok.KindID].String()]
		if !ok {
			return nil, &LexError{
				Text: string(tok.Lexeme),
				Row:  tok.Row + 1,
				Col:  tok.Col + 1,
			}
		}
		kind := l.cgram.Tokens[idx]
		if kind.Skip {
			continue
		}

		t := &Token{
			Kind:     idx,
			KindName: kind.Name,
			Text:     string(tok.Lexeme),
			Row:      tok.Row + 1,
			Col:      tok.Col + 1,
		}
		switch kind.ValueType {
		case "":
		case spec.ValueTypeInt:
			n, err := strconv.Atoi(string(tok.Lexeme))
			if err != nil {
				return nil, &LexError{
					Text: string(tok.Lexeme),
					Row:  tok.Row + 1,
					Col:  tok.Col + 1,
				}
			}
			t.Value = n
		default:
			// ValueTypeText and any user-defined value type carry the
			// matched text.
			t.Value = string(tok.Lexeme)
		}

		return t, nil
	}
}

// ParseText lexes and parses one raw text input against a compiled grammar.
func ParseText(cgram *spec.CompiledGrammar, src io.Reader) (*Instance, error) {
	lex, err := NewLexer(cgram, src)
	if err != nil {
		return nil, err
	}
	p, err := NewParser(cgram, lex)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}
