package layout

import (
	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Place inserts child into the layout by its tags and returns the new,
// simplified root.
//
// A child with a group tag is tabbed alongside the first node carrying the
// same group. Failing that, a child with a gravity is tabbed alongside the
// node occupying that docking slot, or the slot is synthesized when absent.
// A child with neither anchor can only be placed into an empty layout.
//
// Slot synthesis rebuilds the docking skeleton
//
//	vert[header, horiz[left, vert[main, bottom], right], footer]
//
// from the set of slots present, dropping absent ones, so the shape never
// depends on insertion order. Region ratios are reset to uniform. Content
// that is not part of the skeleton is treated as the main region.
func (r *Root) Place(child Child) (*Root, error) {
	if isNil(child) {
		return nil, errs.Wrap(errs.ErrCodePlacement, ErrNilChild, "place")
	}
	if err := r.checkNewLeaves(child); err != nil {
		return nil, err
	}

	if name := child.GroupName(); name != "" {
		if id, ok := r.FindChildByGroup(name); ok {
			return r.tabAt(id, child)
		}
	}
	if g := child.Gravity(); g != GravityNone {
		if id, ok := r.FindChildByGravity(g); ok {
			return r.tabAt(id, child)
		}
		return r.synthesize(g, child), nil
	}
	if r.child == nil {
		return NewRoot(child), nil
	}
	return nil, errs.Wrap(errs.ErrCodePlacement, ErrUnplaceable, "%s has no group or gravity anchor", describe(child))
}

func (r *Root) checkNewLeaves(child Child) error {
	check := func(c Child) error {
		l, ok := c.(*Leaf)
		if !ok {
			return nil
		}
		if _, dup := r.FindLeaf(l.id); dup {
			return errs.Wrap(errs.ErrCodePlacement, ErrDuplicateLeafID, "%q", l.id)
		}
		return nil
	}
	if err := check(child); err != nil {
		return err
	}
	var err error
	Walk(child, func(id ChildID) bool {
		err = check(id.Child())
		return err == nil
	})
	return err
}

// TabAlongside puts child on a new tab next to target, which must be in
// the layout, and returns the new, simplified root. The new tab becomes
// current. A tabbed target gains a tab. Any other target is wrapped in a
// tabbed branch that takes over its tags, leaving the target untagged.
// A target that is the split of a [Group] is tabbed as the whole group so
// the header survives.
func (r *Root) TabAlongside(target, child Child) (*Root, error) {
	if isNil(child) {
		return nil, errs.Wrap(errs.ErrCodePlacement, ErrNilChild, "tab")
	}
	id, ok := r.Locate(target)
	if !ok {
		return nil, errs.Wrap(errs.ErrCodeNotFound, ErrNotFound, "tab target %s", describe(target))
	}
	if err := r.checkNewLeaves(child); err != nil {
		return nil, err
	}
	return r.tabAt(id, child)
}

func (r *Root) tabAt(id ChildID, child Child) (*Root, error) {
	target := id.Child()
	var tabs *Tabbed
	switch t := target.(type) {
	case *Tabbed:
		tabs = newTabbed(append(t.Children(), child), t.Len(), t.tags)
	default:
		wrapped, tt := untag(target), tagsOf(target)
		if g, ok := id.Stem.(*Group); ok {
			target = g
			wrapped = &Group{inner: wrapped, header: g.header}
			tt = tt.fill(g.tags)
		}
		tabs = newTabbed([]Child{wrapped, child}, 1, tt)
	}
	out, err := r.Substitute(target, tabs)
	if err != nil {
		return nil, err
	}
	return out.Simplified(), nil
}

// untag returns c without gravity or group tags.
func untag(c Child) Child {
	if tagsOf(c).empty() {
		return c
	}
	return Retag(c, GravityNone, "")
}

// synthesize adds a slot for gravity g holding child and rebuilds the
// skeleton around the slots already present.
func (r *Root) synthesize(g Gravity, child Child) *Root {
	slots := make(map[Gravity]Child)
	var loose []Child
	if r.child != nil {
		collectSlots(r.child, slots, &loose)
		if len(loose) > 1 || (len(loose) == 1 && slots[GravityMain] != nil) {
			// Not skeleton-shaped: keep the whole tree as the main region.
			clear(slots)
			loose = []Child{r.child}
		}
	}

	var main Child
	switch {
	case len(loose) == 0:
		slots[g] = child
		main = slots[GravityMain]
	case g == GravityMain:
		main = mergeTab(loose[0], child)
	default:
		slots[g] = child
		main = loose[0]
	}

	center := region(Vertical, main, slots[GravityBottom])
	body := region(Horizontal, slots[GravityLeft], center, slots[GravityRight])
	top := region(Vertical, slots[GravityHeader], body, slots[GravityFooter])
	return NewRoot(top).Simplified()
}

// collectSlots gathers gravity-tagged slot nodes from the skeleton splits
// of c. Pieces outside the skeleton go to loose.
func collectSlots(c Child, slots map[Gravity]Child, loose *[]Child) {
	if g := c.Gravity(); g != GravityNone {
		if slots[g] == nil {
			slots[g] = c
			return
		}
		*loose = append(*loose, c)
		return
	}
	if s, ok := c.(*Split); ok && s.tags.empty() && holdsSlot(s) {
		for _, sc := range s.children {
			collectSlots(sc, slots, loose)
		}
		return
	}
	*loose = append(*loose, c)
}

// holdsSlot reports whether c is a slot or an untagged split reaching one
// through untagged splits only.
func holdsSlot(c Child) bool {
	if c.Gravity() != GravityNone {
		return true
	}
	s, ok := c.(*Split)
	if !ok || !s.tags.empty() {
		return false
	}
	for _, sc := range s.children {
		if holdsSlot(sc) {
			return true
		}
	}
	return false
}

// mergeTab joins untagged main content and a main-gravity child into one
// tabbed main slot, with child current.
func mergeTab(content, child Child) Child {
	t := tags{gravity: GravityMain}
	if tb, ok := content.(*Tabbed); ok && tb.tags.empty() {
		return newTabbed(append(tb.Children(), child), tb.Len(), t)
	}
	return newTabbed([]Child{content, child}, 1, t)
}

// region arranges the present items along axis with uniform ratios.
func region(axis Axis, items ...Child) Child {
	present := make([]Child, 0, len(items))
	for _, it := range items {
		if it != nil {
			present = append(present, it)
		}
	}
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	}
	return newSplit(axis, present, uniformRatios(len(present), 1), tags{})
}
