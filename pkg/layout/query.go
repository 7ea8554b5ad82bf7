package layout

// ChildID refers to one child slot of a stem. It is a reference, not an
// ownership link: the tree itself has no parent pointers, so every
// "where is this node" question is answered by a search from the root that
// returns a ChildID.
type ChildID struct {
	Stem  Stem
	Index int
}

// Child dereferences the slot, returning nil if it no longer exists.
func (id ChildID) Child() Child {
	if !id.Valid() {
		return nil
	}
	return id.Stem.ChildAt(id.Index)
}

// Valid reports whether the slot exists in its stem.
func (id ChildID) Valid() bool {
	return !isNil(id.Stem) && id.Index >= 0 && id.Index < id.Stem.Len()
}

// Walk visits every child slot below n in depth-first pre-order. Visiting
// stops when fn returns false; Walk then returns false as well.
func Walk(n Node, fn func(ChildID) bool) bool {
	stem, ok := n.(Stem)
	if !ok || isNil(stem) {
		return true
	}
	for i := 0; i < stem.Len(); i++ {
		if !fn(ChildID{Stem: stem, Index: i}) {
			return false
		}
		if !Walk(stem.ChildAt(i), fn) {
			return false
		}
	}
	return true
}

// Walk visits every child slot of the layout in depth-first pre-order.
func (r *Root) Walk(fn func(ChildID) bool) {
	Walk(r, fn)
}

// FindChild returns the first slot, in pre-order, whose child satisfies pred.
func (r *Root) FindChild(pred func(Child) bool) (ChildID, bool) {
	var found ChildID
	ok := false
	r.Walk(func(id ChildID) bool {
		if pred(id.Child()) {
			found, ok = id, true
			return false
		}
		return true
	})
	return found, ok
}

// FindChildByGravity returns the shallowest-first slot tagged with g.
func (r *Root) FindChildByGravity(g Gravity) (ChildID, bool) {
	if g == GravityNone {
		return ChildID{}, false
	}
	return r.FindChild(func(c Child) bool { return c.Gravity() == g })
}

// FindChildByGroup returns the first slot tagged with the group name.
func (r *Root) FindChildByGroup(name string) (ChildID, bool) {
	if name == "" {
		return ChildID{}, false
	}
	return r.FindChild(func(c Child) bool { return c.GroupName() == name })
}

// FindLeaf returns the slot holding the leaf with the given id.
func (r *Root) FindLeaf(id string) (ChildID, bool) {
	return r.FindChild(func(c Child) bool {
		l, ok := c.(*Leaf)
		return ok && l.id == id
	})
}

// Locate returns the slot holding c, matched by identity.
func (r *Root) Locate(c Child) (ChildID, bool) {
	if isNil(c) {
		return ChildID{}, false
	}
	return r.FindChild(func(x Child) bool { return x == c })
}

// Contains reports whether n is r itself or a node in r's tree.
func (r *Root) Contains(n Node) bool {
	if isNil(n) {
		return false
	}
	if n == Node(r) {
		return true
	}
	c, ok := n.(Child)
	if !ok {
		return false
	}
	_, found := r.Locate(c)
	return found
}

// Leaves returns every leaf in pre-order.
func (r *Root) Leaves() []*Leaf {
	var out []*Leaf
	r.Walk(func(id ChildID) bool {
		if l, ok := id.Child().(*Leaf); ok {
			out = append(out, l)
		}
		return true
	})
	return out
}

// Path returns the slots from the root down to c, or false if c is not in
// the tree. The last element is c's own slot.
func (r *Root) Path(c Child) ([]ChildID, bool) {
	var path []ChildID
	var search func(stem Stem) bool
	search = func(stem Stem) bool {
		for i := 0; i < stem.Len(); i++ {
			id := ChildID{Stem: stem, Index: i}
			path = append(path, id)
			child := stem.ChildAt(i)
			if child == c {
				return true
			}
			if sub, ok := child.(Stem); ok && search(sub) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if isNil(c) || !search(r) {
		return nil, false
	}
	return path, true
}
