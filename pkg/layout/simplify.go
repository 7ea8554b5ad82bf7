package layout

import "fmt"

// SimplifyDeep returns the canonical form of n.
//
// Rules, applied bottom-up in one pass:
//   - A split or tabbed branch with one child is replaced by that child.
//   - A branch with no children is removed from its parent.
//   - An untagged split nested directly in a split of the same axis is
//     flattened into it; the nested ratios are rescaled so every grandchild
//     keeps its share of the slot it came from.
//   - A group whose content is no longer a split is replaced by its content.
//   - A root keeps its single child; it has nothing to collapse into.
//
// Tabbed branches never flatten, and neither do splits carrying a gravity or
// group tag, since those tags make them placement targets. A collapsing
// branch hands its tags down to the child that replaces it wherever the
// child has none of its own.
//
// It returns (nil, false) when n is already canonical, so a second pass over
// a simplified tree always reports no change. A (nil, true) result means n
// simplified away to nothing.
func SimplifyDeep(n Node) (Node, bool) {
	switch n := n.(type) {
	case *Root:
		return n.simplify()
	case *Leaf:
		return nil, false
	case *Split:
		return asNode(n.simplify())
	case *Tabbed:
		return asNode(n.simplify())
	case *Group:
		return asNode(n.simplify())
	case nil:
		return nil, false
	}
	panic(fmt.Sprintf("layout: unknown node type %T", n))
}

// SimplifyDeep is [SimplifyDeep] for a root. It returns (nil, false) when
// the layout is already canonical.
func (r *Root) SimplifyDeep() (*Root, bool) {
	res, changed := r.simplify()
	if !changed {
		return nil, false
	}
	return res.(*Root), true
}

// Simplified returns the canonical form of r, which is r itself when it is
// already canonical.
func (r *Root) Simplified() *Root {
	if out, changed := r.SimplifyDeep(); changed {
		return out
	}
	return r
}

func asNode(c Child, changed bool) (Node, bool) {
	if c == nil {
		return nil, changed
	}
	return c, changed
}

// simplifyChild returns c itself and false when c is canonical, and
// (nil, true) when c must be pruned.
func simplifyChild(c Child) (Child, bool) {
	switch c := c.(type) {
	case *Leaf:
		return c, false
	case *Split:
		out, changed := c.simplify()
		if !changed {
			return c, false
		}
		return out, true
	case *Tabbed:
		out, changed := c.simplify()
		if !changed {
			return c, false
		}
		return out, true
	case *Group:
		out, changed := c.simplify()
		if !changed {
			return c, false
		}
		return out, true
	}
	panic(fmt.Sprintf("layout: unknown child type %T", c))
}

func (r *Root) simplify() (Node, bool) {
	if r.child == nil {
		return nil, false
	}
	c, changed := simplifyChild(r.child)
	if !changed {
		return nil, false
	}
	return NewRoot(c), true
}

func (s *Split) simplify() (Child, bool) {
	changed := false
	kids := make([]Child, 0, len(s.children))
	ratios := make([]float64, 0, len(s.children))

	for i, c := range s.children {
		r := s.ratios[i]
		sc, ch := simplifyChild(c)
		if ch {
			changed = true
		}
		if sc == nil {
			continue
		}

		inner, ok := sc.(*Split)
		if !ok || inner.axis != s.axis || !inner.tags.empty() {
			kids = append(kids, sc)
			ratios = append(ratios, r)
			continue
		}

		changed = true
		for j, gc := range inner.children {
			kids = append(kids, gc)
			if inner.ratioSum == 0 {
				// Degenerate ratios: split the parent slot evenly.
				ratios = append(ratios, r/float64(len(inner.children)))
			} else {
				ratios = append(ratios, inner.ratios[j]/inner.ratioSum*r)
			}
		}
	}

	switch len(kids) {
	case 0:
		return nil, true
	case 1:
		return inheritTags(kids[0], s.tags), true
	}
	if !changed {
		return nil, false
	}
	return newSplit(s.axis, kids, ratios, s.tags), true
}

func (t *Tabbed) simplify() (Child, bool) {
	changed := false
	kids := make([]Child, 0, len(t.children))
	cur, before := -1, 0

	for i, c := range t.children {
		sc, ch := simplifyChild(c)
		if ch {
			changed = true
		}
		if sc == nil {
			continue
		}
		if i < t.current {
			before++
		}
		if i == t.current {
			cur = len(kids)
		}
		kids = append(kids, sc)
	}
	if cur < 0 {
		// The current tab was pruned; select the tab that took its place.
		cur = before
	}

	switch len(kids) {
	case 0:
		return nil, true
	case 1:
		return inheritTags(kids[0], t.tags), true
	}
	if !changed {
		return nil, false
	}
	return newTabbed(kids, cur, t.tags), true
}

func (g *Group) simplify() (Child, bool) {
	if g.inner == nil {
		return nil, true
	}
	c, changed := simplifyChild(g.inner)
	if c == nil {
		return nil, true
	}
	if _, ok := c.(*Split); !ok {
		return inheritTags(c, g.tags), true
	}
	if !changed {
		return nil, false
	}
	return &Group{tags: g.tags, inner: c, header: g.header}, true
}
