package layout

import (
	"fmt"
	"strings"
)

// Format renders n as a compact one-line expression, for logs and tests:
//
//	vert(header:leaf(title), horiz(leaf(nav), tabs#1(leaf(a), leaf(b))))
//
// Tags prefix a node as "gravity:" and "@group:". Split ratios are omitted.
func Format(n Node) string {
	var b strings.Builder
	format(&b, n, true)
	return b.String()
}

// Shape is [Format] without leaf ids, tags, or tab indices: two trees with
// the same Shape have the same structure regardless of what they hold.
func Shape(n Node) string {
	var b strings.Builder
	format(&b, n, false)
	return b.String()
}

func format(b *strings.Builder, n Node, detail bool) {
	if isNil(n) {
		b.WriteString("empty")
		return
	}
	if c, ok := n.(Child); ok && detail {
		if g := c.Gravity(); g != GravityNone {
			b.WriteString(g.String())
			b.WriteByte(':')
		}
		if grp := c.GroupName(); grp != "" {
			b.WriteString("@" + grp + ":")
		}
	}

	switch n := n.(type) {
	case *Root:
		b.WriteString("root(")
		if n.child != nil {
			format(b, n.child, detail)
		}
		b.WriteByte(')')
	case *Leaf:
		if detail {
			fmt.Fprintf(b, "leaf(%s)", n.id)
		} else {
			b.WriteString("leaf")
		}
	case *Split:
		b.WriteString(n.axis.String())
		formatChildren(b, n.children, detail)
	case *Tabbed:
		b.WriteString("tabs")
		if detail {
			fmt.Fprintf(b, "#%d", n.current)
		}
		formatChildren(b, n.children, detail)
	case *Group:
		if detail {
			fmt.Fprintf(b, "group[%s](", n.header)
		} else {
			b.WriteString("group(")
		}
		if n.inner != nil {
			format(b, n.inner, detail)
		}
		b.WriteByte(')')
	}
}

func formatChildren(b *strings.Builder, children []Child, detail bool) {
	b.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, c, detail)
	}
	b.WriteByte(')')
}

// describe names a node for error messages.
func describe(n Node) string {
	switch n := n.(type) {
	case *Leaf:
		return fmt.Sprintf("leaf %q", n.id)
	case *Group:
		return fmt.Sprintf("group %q", n.header)
	case nil:
		return "nil"
	}
	if c, ok := n.(Child); ok && c.Gravity() != GravityNone {
		return fmt.Sprintf("%s (%s)", n.Kind(), c.Gravity())
	}
	return n.Kind().String()
}
