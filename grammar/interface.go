package grammar

import (
	verr "github.com/gramgen/gramgen/error"
	"github.com/gramgen/gramgen/spec"
)

// resolveInterfaces computes each interface's eligible implementor set, in
// first-declaration order. The order is deterministic across builds and is
// the parser's try-order.
func (b *GrammarBuilder) resolveInterfaces(classes []*RuleClass, ifaces []*Interface) {
	b.computeEligibility(classes)

	for _, i := range ifaces {
		for _, c := range i.declared {
			if !c.eligible {
				continue
			}
			i.Implementors = append(i.Implementors, c)
		}
		if len(i.Implementors) == 0 {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrEmptyInterface,
				Detail: i.Name,
			})
		}
	}
}

// computeEligibility marks which classes may serve as parse targets.
//
// A class flagged explicit-only without an explicit pattern is always
// excluded. By default everything else is eligible. Under the grammar-level
// restriction, eligibility narrows to the root, classes carrying explicit
// patterns, classes individually opted back in, and everything those
// transitively need.
func (b *GrammarBuilder) computeEligibility(classes []*RuleClass) {
	excluded := func(c *RuleClass) bool {
		return c.srcSpec.Eligibility == spec.EligibilityExplicitOnly && !c.explicit
	}

	if !b.Spec.RestrictImplicit {
		for _, c := range classes {
			c.eligible = !excluded(c)
		}
		return
	}

	var queue []*RuleClass
	seed := func(c *RuleClass) {
		if c.eligible || excluded(c) {
			return
		}
		c.eligible = true
		queue = append(queue, c)
	}

	for _, c := range classes {
		if c.Root || c.explicit || c.srcSpec.Eligibility == spec.EligibilityImplicit {
			seed(c)
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range c.Needs {
			switch n.target {
			case needClass:
				seed(n.Class)
			case needInterface:
				for _, impl := range n.Iface.declared {
					seed(impl)
				}
			}
		}
	}
}
