package grammar

import (
	"fmt"
	"strings"

	verr "github.com/gramgen/gramgen/error"
)

// bindPattern binds every need of the class to exactly one element of the
// pattern. Labeled needs pair with the matching labeled element first; the
// rest bind by unique type match among the still-unbound elements. Zero or
// multiple candidates is an error either way.
func (b *GrammarBuilder) bindPattern(c *RuleClass, p *Pattern) {
	bindings := make([]int, len(c.Needs))
	for i := range bindings {
		bindings[i] = -1
	}
	used := make([]bool, len(p.Elements))
	erred := make([]bool, len(c.Needs))
	ok := true

	for i, n := range c.Needs {
		if n.target == needInvalid {
			ok = false
			erred[i] = true
			continue
		}
		if n.Specializer == "" {
			continue
		}

		var cands []int
		for j, e := range p.Elements {
			if used[j] || e.Specializer != n.Specializer {
				continue
			}
			if !needMatchesElement(n, e) {
				continue
			}
			cands = append(cands, j)
		}
		switch len(cands) {
		case 0:
			// No labeled counterpart; the need falls through to the
			// type-match pass.
		case 1:
			bindings[i] = cands[0]
			used[cands[0]] = true
		default:
			b.errs = append(b.errs, b.bindingError(c, p, n, cands))
			ok = false
			erred[i] = true
		}
	}

	for i, n := range c.Needs {
		if bindings[i] >= 0 || erred[i] {
			continue
		}

		var cands []int
		for j, e := range p.Elements {
			if used[j] || !needMatchesElement(n, e) {
				continue
			}
			cands = append(cands, j)
		}
		if len(cands) == 1 {
			bindings[i] = cands[0]
			used[cands[0]] = true
			continue
		}
		b.errs = append(b.errs, b.bindingError(c, p, n, cands))
		ok = false
	}

	if ok {
		p.Bindings = bindings
	}
}

func (b *GrammarBuilder) bindingError(c *RuleClass, p *Pattern, n *Need, cands []int) *verr.SpecError {
	var detail string
	if len(cands) == 0 {
		detail = fmt.Sprintf("need %v of rule class %v has no candidate element in pattern %q",
			n.Field, c.Name, p.String())
	} else {
		names := make([]string, len(cands))
		for i, j := range cands {
			names[i] = p.Elements[j].String()
		}
		detail = fmt.Sprintf("need %v of rule class %v has multiple candidate elements in pattern %q: %v",
			n.Field, c.Name, p.String(), strings.Join(names, ", "))
	}
	return &verr.SpecError{
		Cause:  semErrAmbiguousBinding,
		Detail: detail,
	}
}

func needMatchesElement(n *Need, e *PatternElement) bool {
	switch n.target {
	case needToken:
		return e.Kind == elemToken && e.TokenKind == n.TokenKind
	case needValue:
		return e.Kind == elemToken && e.TokenKind.ValueType == n.ValueType
	case needClass:
		return e.Kind == elemClass && e.Class == n.Class
	case needInterface:
		return e.Kind == elemInterface && e.Iface == n.Iface
	default:
		return false
	}
}
