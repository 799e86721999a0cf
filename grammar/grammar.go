package grammar

import (
	"fmt"

	verr "github.com/gramgen/gramgen/error"
	"github.com/gramgen/gramgen/spec"
)

type needTarget int

const (
	needInvalid needTarget = iota
	needValue
	needToken
	needClass
	needInterface
)

// Need is a resolved field dependency of a rule class. Exactly one of
// TokenKind, Class, and Iface is set for the token-, class-, and
// interface-targeted variants; ValueType is set for value-targeted needs.
type Need struct {
	Field       string
	Specializer string

	target    needTarget
	ValueType string
	TokenKind *TokenKind
	Class     *RuleClass
	Iface     *Interface
}

// StoresValue reports whether the field stores a token's carried value
// rather than the matched token or child instance itself.
func (n *Need) StoresValue() bool {
	return n.target == needValue
}

// RuleClass is a declared entity with typed field dependencies and one or
// more match patterns. Patterns are tried strictly in declaration order.
type RuleClass struct {
	Name     string
	Needs    []*Need
	Ifaces   []*Interface
	Patterns []*Pattern
	Root     bool

	explicit bool
	eligible bool
	srcSpec  *spec.RuleClassSpec
}

// Eligible reports whether the class may be offered as an interface
// implementor candidate at parse time.
func (c *RuleClass) Eligible() bool {
	return c.eligible
}

// Interface is a named capability implemented by a set of rule classes.
// Implementors holds the eligible implementors in first-declaration order,
// which is also the parser's try-order.
type Interface struct {
	Name         string
	Implementors []*RuleClass

	declared []*RuleClass
}

// Grammar is a validated, immutable grammar model.
type Grammar struct {
	name       string
	tokens     *TokenRegistry
	classes    []*RuleClass
	classMap   map[string]*RuleClass
	interfaces []*Interface
	ifaceMap   map[string]*Interface
	root       *RuleClass
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) Tokens() *TokenRegistry {
	return g.tokens
}

func (g *Grammar) Classes() []*RuleClass {
	return g.classes
}

func (g *Grammar) Interfaces() []*Interface {
	return g.interfaces
}

func (g *Grammar) Root() *RuleClass {
	return g.root
}

// GrammarBuilder validates raw declaration metadata and produces a Grammar.
// All violations are collected; the builder never stops at the first error.
type GrammarBuilder struct {
	Spec *spec.GrammarSpec

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	tokens := b.genTokenRegistry()

	classes, classMap, ifaces, ifaceMap := b.genRuleClasses()

	b.resolveNeeds(tokens, classMap, ifaceMap, classes)
	b.resolveInterfaces(classes, ifaces)
	b.genPatterns(tokens, classMap, ifaceMap, classes)
	root := b.checkRoot(classes)
	b.checkCycles(classes, ifaces)
	b.checkLexPatterns(tokens)

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return &Grammar{
		name:       b.Spec.Name,
		tokens:     tokens,
		classes:    classes,
		classMap:   classMap,
		interfaces: ifaces,
		ifaceMap:   ifaceMap,
		root:       root,
	}, nil
}

func (b *GrammarBuilder) genTokenRegistry() *TokenRegistry {
	tokens := newTokenRegistry()
	for _, t := range b.Spec.Tokens {
		if t.Name == "" {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrInvalidToken,
				Detail: fmt.Sprintf("id %v", t.ID),
			})
			continue
		}
		err := tokens.register(&TokenKind{
			ID:        t.ID,
			Name:      t.Name,
			ValueType: t.ValueType,
			Pattern:   t.Pattern,
			Skip:      t.Skip,
		})
		if err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  err,
				Detail: fmt.Sprintf("%v (id %v)", t.Name, t.ID),
			})
		}
	}
	return tokens
}

func (b *GrammarBuilder) genRuleClasses() ([]*RuleClass, map[string]*RuleClass, []*Interface, map[string]*Interface) {
	var classes []*RuleClass
	classMap := map[string]*RuleClass{}
	var ifaces []*Interface
	ifaceMap := map[string]*Interface{}

	for _, cs := range b.Spec.Classes {
		if _, exist := classMap[cs.Name]; exist {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateClass,
				Detail: cs.Name,
			})
			continue
		}

		switch cs.Eligibility {
		case spec.EligibilityDefault, spec.EligibilityExplicitOnly, spec.EligibilityImplicit:
		default:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrInvalidEligibility,
				Detail: fmt.Sprintf("%v on rule class %v", cs.Eligibility, cs.Name),
			})
		}

		c := &RuleClass{
			Name:     cs.Name,
			Root:     cs.Root,
			explicit: len(cs.Patterns) > 0,
			srcSpec:  cs,
		}
		classes = append(classes, c)
		classMap[cs.Name] = c

		// Interfaces come into existence at their first mention; that
		// order stays stable across builds.
		for _, iname := range cs.Interfaces {
			i, exist := ifaceMap[iname]
			if !exist {
				i = &Interface{
					Name: iname,
				}
				ifaces = append(ifaces, i)
				ifaceMap[iname] = i
			}
			c.Ifaces = append(c.Ifaces, i)
			i.declared = append(i.declared, c)
		}
	}

	return classes, classMap, ifaces, ifaceMap
}

func (b *GrammarBuilder) resolveNeeds(tokens *TokenRegistry, classMap map[string]*RuleClass, ifaceMap map[string]*Interface, classes []*RuleClass) {
	for _, c := range classes {
		for _, ns := range c.srcSpec.Needs {
			n := &Need{
				Field:       ns.Field,
				Specializer: ns.Specializer,
			}
			if k, ok := tokens.KindByName(ns.Type); ok {
				n.target = needToken
				n.TokenKind = k
			} else if len(tokens.KindsByValueType(ns.Type)) > 0 {
				n.target = needValue
				n.ValueType = ns.Type
			} else if i, ok := ifaceMap[ns.Type]; ok {
				n.target = needInterface
				n.Iface = i
			} else if cl, ok := classMap[ns.Type]; ok {
				n.target = needClass
				n.Class = cl
			} else {
				n.target = needInvalid
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrUnknownReference,
					Detail: fmt.Sprintf("type %v of need %v in rule class %v", ns.Type, ns.Field, c.Name),
				})
			}
			c.Needs = append(c.Needs, n)
		}
	}
}

func (b *GrammarBuilder) checkRoot(classes []*RuleClass) *RuleClass {
	var root *RuleClass
	var extra []string
	for _, c := range classes {
		if !c.Root {
			continue
		}
		if root == nil {
			root = c
			continue
		}
		extra = append(extra, c.Name)
	}
	if root == nil {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrMissingRoot,
		})
		return nil
	}
	if len(extra) > 0 {
		detail := root.Name
		for _, name := range extra {
			detail += ", " + name
		}
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrMultipleRoots,
			Detail: detail,
		})
		return nil
	}
	return root
}

// checkLexPatterns enforces that lexical patterns are declared all-or-none:
// once one token kind carries a pattern, every non-skip kind must, otherwise
// the generated lexer could never produce the patternless kinds.
func (b *GrammarBuilder) checkLexPatterns(tokens *TokenRegistry) {
	any := false
	for _, k := range tokens.Kinds() {
		if k.Pattern != "" {
			any = true
			break
		}
	}
	if !any {
		return
	}
	for _, k := range tokens.Kinds() {
		if k.Pattern == "" {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrMissingLexPattern,
				Detail: k.Name,
			})
		}
	}
}
