package driver

import (
	"fmt"
	"io"
)

// Instance is one node of the typed instance tree a successful parse
// produces. The tree is strict: every node is exclusively owned by its
// parent, and an interface-typed field holds whichever single concrete
// implementor instance was chosen.
type Instance struct {
	ClassName string

	fields map[string]any
	order  []string
}

func newInstance(className string) *Instance {
	return &Instance{
		ClassName: className,
		fields:    map[string]any{},
	}
}

func (x *Instance) set(field string, v any) {
	if _, exist := x.fields[field]; !exist {
		x.order = append(x.order, field)
	}
	x.fields[field] = v
}

// FieldNames returns the field names in need-declaration order.
func (x *Instance) FieldNames() []string {
	return x.order
}

// Field returns the raw bound value of a field: a carried value, a *Token,
// or a child *Instance.
func (x *Instance) Field(name string) (any, bool) {
	v, ok := x.fields[name]
	return v, ok
}

// Child returns a field's child instance, when the field is
// nonterminal-typed.
func (x *Instance) Child(name string) (*Instance, bool) {
	v, ok := x.fields[name]
	if !ok {
		return nil, false
	}
	c, ok := v.(*Instance)
	return c, ok
}

// Token returns a field's matched token, when the field is token-typed.
func (x *Instance) Token(name string) (*Token, bool) {
	v, ok := x.fields[name]
	if !ok {
		return nil, false
	}
	t, ok := v.(*Token)
	return t, ok
}

// PrintTree writes an instance tree in a ruled-line format.
func PrintTree(w io.Writer, inst *Instance) {
	printTree(w, treeNode(inst, ""), "", "")
}

type node struct {
	label    string
	children []*node
}

func treeNode(inst *Instance, field string) *node {
	label := inst.ClassName
	if field != "" {
		label = fmt.Sprintf("%v: %v", field, inst.ClassName)
	}
	n := &node{
		label: label,
	}
	for _, name := range inst.order {
		switch v := inst.fields[name].(type) {
		case *Instance:
			n.children = append(n.children, treeNode(v, name))
		case *Token:
			n.children = append(n.children, &node{
				label: fmt.Sprintf("%v: %v", name, v),
			})
		default:
			n.children = append(n.children, &node{
				label: fmt.Sprintf("%v: %#v", name, v),
			})
		}
	}
	return n
}

func printTree(w io.Writer, n *node, ruledLine string, childRuledLinePrefix string) {
	if n == nil {
		return
	}

	fmt.Fprintf(w, "%v%v\n", ruledLine, n.label)

	num := len(n.children)
	for i, child := range n.children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
