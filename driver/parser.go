package driver

import (
	"fmt"

	"github.com/gramgen/gramgen/spec"
)

// FailureKind classifies a run-time parse failure.
type FailureKind int

const (
	// FailureNoMatchingDerivation means the root pattern/implementor
	// search was exhausted without success.
	FailureNoMatchingDerivation FailureKind = iota
	// FailureTrailingInput means the root matched but left tokens
	// unconsumed.
	FailureTrailingInput
)

func (k FailureKind) String() string {
	switch k {
	case FailureNoMatchingDerivation:
		return "no matching derivation"
	case FailureTrailingInput:
		return "trailing input"
	default:
		return "unknown failure"
	}
}

// ParseError is the typed result of a failed parse. The engine performs no
// implicit retries; ordered-choice backtracking within one parse is the only
// recovery mechanism.
type ParseError struct {
	Kind  FailureKind
	Pos   int
	Token *Token
}

func (e *ParseError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("%v:%v: %v: %v", e.Token.Row, e.Token.Col, e.Kind, e.Token)
	}
	return e.Kind.String()
}

type memoKey struct {
	entity int
	pos    int
}

type memoEntry struct {
	inProgress   bool
	ok           bool
	end          int
	inst         *Instance
	computations int
}

// Parser executes a memoized, ordered-choice, recursive-descent parse of one
// token stream against a compiled grammar. The memo table lives for a single
// invocation; the grammar itself is read-only, so distinct parsers over the
// same grammar may run in parallel with no synchronization.
type Parser struct {
	cgram     *spec.CompiledGrammar
	ifaceBase int
	toks      []*Token
	memo      map[memoKey]*memoEntry
}

// NewParser consumes the token stream to completion and prepares a parse.
// A lexical failure from the stream is propagated unmodified.
func NewParser(cgram *spec.CompiledGrammar, ts TokenStream) (*Parser, error) {
	toks, err := readAllTokens(ts)
	if err != nil {
		return nil, err
	}

	return &Parser{
		cgram:     cgram,
		ifaceBase: len(cgram.Classes),
		toks:      toks,
		memo:      map[memoKey]*memoEntry{},
	}, nil
}

// Parse derives the grammar root over the whole stream. A structurally
// successful root match with unconsumed trailing tokens is a failure, not a
// silent success.
func (p *Parser) Parse() (*Instance, error) {
	inst, end, ok := p.parseEntity(p.cgram.Root, 0)
	if !ok {
		e := &ParseError{
			Kind: FailureNoMatchingDerivation,
		}
		if len(p.toks) > 0 {
			e.Token = p.toks[0]
		}
		return nil, e
	}
	if end != len(p.toks) {
		return nil, &ParseError{
			Kind:  FailureTrailingInput,
			Pos:   end,
			Token: p.toks[end],
		}
	}
	return inst, nil
}

// parseEntity attempts one (entity, position) state. The first computation
// is recorded in the memo table; later requests for the same pair return the
// cached outcome without recomputing. An in-progress entry fails the
// recursive attempt, which rules out unbounded left recursion.
func (p *Parser) parseEntity(entity int, pos int) (*Instance, int, bool) {
	key := memoKey{
		entity: entity,
		pos:    pos,
	}
	if e, exist := p.memo[key]; exist {
		if e.inProgress {
			return nil, 0, false
		}
		return e.inst, e.end, e.ok
	}

	e := &memoEntry{
		inProgress: true,
	}
	p.memo[key] = e
	e.computations++

	var inst *Instance
	var end int
	var ok bool
	if entity < p.ifaceBase {
		inst, end, ok = p.parseClass(entity, pos)
	} else {
		inst, end, ok = p.parseInterface(entity-p.ifaceBase, pos)
	}

	e.inProgress = false
	e.inst = inst
	e.end = end
	e.ok = ok
	return inst, end, ok
}

// parseClass tries the class's patterns strictly in declaration order and
// commits to the first that fully succeeds.
func (p *Parser) parseClass(ci int, pos int) (*Instance, int, bool) {
	c := p.cgram.Classes[ci]
	for _, pat := range c.Patterns {
		results, end, ok := p.matchPattern(pat, pos)
		if !ok {
			continue
		}
		return p.buildInstance(c, pat, results), end, true
	}
	return nil, 0, false
}

// parseInterface tries the eligible implementors strictly in try-order and
// commits to the first that succeeds.
func (p *Parser) parseInterface(ii int, pos int) (*Instance, int, bool) {
	f := p.cgram.Interfaces[ii]
	for _, impl := range f.Implementors {
		inst, end, ok := p.parseEntity(impl, pos)
		if !ok {
			continue
		}
		return inst, end, true
	}
	return nil, 0, false
}

// matchPattern succeeds iff every element succeeds in sequence. A failed
// attempt commits nothing; the caller's position is untouched.
func (p *Parser) matchPattern(pat *spec.CompiledPattern, pos int) ([]any, int, bool) {
	results := make([]any, len(pat.Elements))
	cur := pos
	for i, e := range pat.Elements {
		switch e.Kind {
		case spec.ElementKindToken:
			if cur >= len(p.toks) || p.toks[cur].Kind != e.Index {
				return nil, 0, false
			}
			results[i] = p.toks[cur]
			cur++
		case spec.ElementKindClass:
			inst, end, ok := p.parseEntity(e.Index, cur)
			if !ok {
				return nil, 0, false
			}
			results[i] = inst
			cur = end
		default:
			inst, end, ok := p.parseEntity(p.ifaceBase+e.Index, cur)
			if !ok {
				return nil, 0, false
			}
			results[i] = inst
			cur = end
		}
	}
	return results, cur, true
}

// buildInstance materializes a rule-class instance from a successful match,
// reading each need's value from its bound element: the carried value for a
// value-typed need, the token itself for a token-typed need, and the child
// instance for a nonterminal need.
func (p *Parser) buildInstance(c *spec.CompiledClass, pat *spec.CompiledPattern, results []any) *Instance {
	inst := newInstance(c.Name)
	for i, n := range c.Needs {
		v := results[pat.Bindings[i]]
		if n.Value {
			v = v.(*Token).Value
		}
		inst.set(n.Field, v)
	}
	return inst
}
