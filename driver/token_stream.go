package driver

import (
	"fmt"
)

// Token is one lexical unit of a parse input. Kind is the index of the
// token's kind within the grammar's token kinds; Value is present iff the
// kind declares a value type.
type Token struct {
	Kind     int
	KindName string
	Value    any
	Text     string
	Row      int
	Col      int
}

func (t *Token) String() string {
	if t.Text != "" {
		return fmt.Sprintf("%v %#v", t.KindName, t.Text)
	}
	return t.KindName
}

// TokenStream is the lexer contract: a finite, possibly lazy token
// sequence. Next returns nil on exhaustion; no end-of-stream token is
// required. A malformed-input condition is reported as an error and aborts
// parsing immediately.
type TokenStream interface {
	Next() (*Token, error)
}

type sliceTokenStream struct {
	toks []*Token
	pos  int
}

// NewTokenStream wraps a pre-lexed token slice, for callers that bring
// their own lexer.
func NewTokenStream(toks []*Token) TokenStream {
	return &sliceTokenStream{
		toks: toks,
	}
}

func (s *sliceTokenStream) Next() (*Token, error) {
	if s.pos >= len(s.toks) {
		return nil, nil
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, nil
}

func readAllTokens(ts TokenStream) ([]*Token, error) {
	var toks []*Token
	for {
		tok, err := ts.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
