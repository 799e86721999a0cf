package grammar

import (
	"fmt"
	"strings"

	verr "github.com/gramgen/gramgen/error"
)

type elementKind int

const (
	elemToken elementKind = iota
	elemClass
	elemInterface
)

// PatternElement is one literal-token or nonterminal reference of a pattern.
type PatternElement struct {
	Kind        elementKind
	Specializer string

	TokenKind *TokenKind
	Class     *RuleClass
	Iface     *Interface
}

func (e *PatternElement) Name() string {
	switch e.Kind {
	case elemToken:
		return e.TokenKind.Name
	case elemClass:
		return e.Class.Name
	default:
		return e.Iface.Name
	}
}

func (e *PatternElement) String() string {
	if e.Specializer != "" {
		return e.Name() + ":" + e.Specializer
	}
	return e.Name()
}

// Pattern is an ordered element sequence describing one way to derive a rule
// class. Bindings[i] is the index of the element feeding need i; it is
// resolved once at build time and never varies across inputs.
type Pattern struct {
	Elements []*PatternElement
	Bindings []int
}

func (p *Pattern) String() string {
	elems := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		elems[i] = e.String()
	}
	return strings.Join(elems, " ")
}

// genPatterns compiles every class's patterns: explicit rule strings when
// declared, a single implicit pattern derived from the needs otherwise.
// Successfully compiled patterns are handed to the binder.
func (b *GrammarBuilder) genPatterns(tokens *TokenRegistry, classMap map[string]*RuleClass, ifaceMap map[string]*Interface, classes []*RuleClass) {
	for _, c := range classes {
		if c.explicit {
			for _, src := range c.srcSpec.Patterns {
				p := b.parseRulePattern(c, src, tokens, classMap, ifaceMap)
				if p == nil {
					continue
				}
				b.bindPattern(c, p)
				c.Patterns = append(c.Patterns, p)
			}
			continue
		}

		p := b.genImplicitPattern(c, tokens)
		if p == nil {
			continue
		}
		b.bindPattern(c, p)
		c.Patterns = append(c.Patterns, p)
	}
}

// parseRulePattern compiles one explicit rule string. Elements are separated
// by whitespace; each may carry a `:specializer` suffix. Base names resolve
// against the token registry first, then interfaces, then rule classes.
func (b *GrammarBuilder) parseRulePattern(c *RuleClass, src string, tokens *TokenRegistry, classMap map[string]*RuleClass, ifaceMap map[string]*Interface) *Pattern {
	fields := strings.Fields(src)
	if len(fields) == 0 {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrEmptyPattern,
			Detail: fmt.Sprintf("rule class %v", c.Name),
		})
		return nil
	}

	elems := make([]*PatternElement, 0, len(fields))
	ok := true
	for _, f := range fields {
		name := f
		var specializer string
		if i := strings.Index(f, ":"); i > 0 {
			name = f[:i]
			specializer = f[i+1:]
		}

		e := &PatternElement{
			Specializer: specializer,
		}
		if k, exist := tokens.KindByName(name); exist {
			e.Kind = elemToken
			e.TokenKind = k
		} else if iface, exist := ifaceMap[name]; exist {
			e.Kind = elemInterface
			e.Iface = iface
		} else if cl, exist := classMap[name]; exist {
			e.Kind = elemClass
			e.Class = cl
		} else {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUnknownReference,
				Detail: fmt.Sprintf("%v in pattern %q of rule class %v", name, src, c.Name),
			})
			ok = false
			continue
		}
		elems = append(elems, e)
	}
	if !ok {
		return nil
	}

	return &Pattern{
		Elements: elems,
	}
}

// genImplicitPattern derives a pattern by walking the needs in declaration
// order. A value-typed need maps to the unique token kind carrying that
// value type; more than one candidate kind demands an explicit pattern.
func (b *GrammarBuilder) genImplicitPattern(c *RuleClass, tokens *TokenRegistry) *Pattern {
	elems := make([]*PatternElement, 0, len(c.Needs))
	for _, n := range c.Needs {
		e := &PatternElement{
			Specializer: n.Specializer,
		}
		switch n.target {
		case needToken:
			e.Kind = elemToken
			e.TokenKind = n.TokenKind
		case needValue:
			kinds := tokens.KindsByValueType(n.ValueType)
			if len(kinds) > 1 {
				names := make([]string, len(kinds))
				for i, k := range kinds {
					names[i] = k.Name
				}
				b.errs = append(b.errs, &verr.SpecError{
					Cause: semErrAmbiguousBinding,
					Detail: fmt.Sprintf("need %v of rule class %v: value type %v matches token kinds %v; declare an explicit pattern",
						n.Field, c.Name, n.ValueType, strings.Join(names, ", ")),
				})
				return nil
			}
			e.Kind = elemToken
			e.TokenKind = kinds[0]
		case needClass:
			e.Kind = elemClass
			e.Class = n.Class
		case needInterface:
			e.Kind = elemInterface
			e.Iface = n.Iface
		default:
			// The unresolved need was already reported.
			return nil
		}
		elems = append(elems, e)
	}

	return &Pattern{
		Elements: elems,
	}
}
