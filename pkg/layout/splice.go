package layout

import (
	"fmt"
	"slices"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Splice returns a copy of stem with remove children starting at start
// replaced by insert. The original stem is not modified.
//
// Per variant:
//   - Root: the result may hold at most one child.
//   - Split: removed ratios are dropped; inserted children receive the mean
//     of the existing ratios (1 for an empty split). Use [SpliceSplit] to
//     supply ratios explicitly.
//   - Tabbed: the current tab follows its child when it survives, and is
//     re-clamped into range when it was removed.
//   - Group: the result may hold at most one child.
//
// The result may be an empty branch; [SimplifyDeep] prunes those.
func Splice(stem Stem, start, remove int, insert ...Child) (Stem, error) {
	if err := checkSplice(stem, start, remove, insert); err != nil {
		return nil, err
	}
	switch s := stem.(type) {
	case *Root:
		kids := spliced(s.Children(), start, remove, insert)
		if len(kids) > 1 {
			return nil, errs.New(errs.ErrCodeStructure, "root can hold one child, splice leaves %d", len(kids))
		}
		if len(kids) == 0 {
			return NewRoot(nil), nil
		}
		return NewRoot(kids[0]), nil
	case *Split:
		return spliceSplit(s, start, remove, insert, nil), nil
	case *Tabbed:
		return spliceTabbed(s, start, remove, insert), nil
	case *Group:
		kids := spliced(s.Children(), start, remove, insert)
		if len(kids) > 1 {
			return nil, errs.New(errs.ErrCodeStructure, "group can hold one child, splice leaves %d", len(kids))
		}
		g := &Group{tags: s.tags, header: s.header}
		if len(kids) == 1 {
			g.inner = kids[0]
		}
		return g, nil
	}
	panic(fmt.Sprintf("layout: unknown stem type %T", stem))
}

// SpliceSplit is [Splice] for splits with explicit ratios for the inserted
// children. A nil ratios slice behaves like [Splice].
func SpliceSplit(s *Split, start, remove int, insert []Child, ratios []float64) (*Split, error) {
	if err := checkSplice(s, start, remove, insert); err != nil {
		return nil, err
	}
	if ratios != nil {
		if len(ratios) != len(insert) {
			return nil, errs.Wrap(errs.ErrCodeConstruction, ErrRatioMismatch,
				"%d inserted children, %d ratios", len(insert), len(ratios))
		}
		if err := checkRatios(ratios); err != nil {
			return nil, err
		}
	}
	return spliceSplit(s, start, remove, insert, ratios), nil
}

func spliceSplit(s *Split, start, remove int, insert []Child, ratios []float64) *Split {
	if ratios == nil {
		fill := 1.0
		if n := len(s.children); n > 0 {
			fill = s.ratioSum / float64(n)
		}
		ratios = uniformRatios(len(insert), fill)
	}
	kids := spliced(s.children, start, remove, insert)
	rs := slices.Concat(s.ratios[:start], ratios, s.ratios[start+remove:])
	return newSplit(s.axis, kids, rs, s.tags)
}

func spliceTabbed(t *Tabbed, start, remove int, insert []Child) *Tabbed {
	kids := spliced(t.children, start, remove, insert)
	cur := t.current
	switch {
	case cur >= start+remove:
		cur += len(insert) - remove
	case cur >= start:
		// The current tab was removed or replaced.
		if len(insert) > 0 {
			cur = start + min(cur-start, len(insert)-1)
		} else {
			cur = start
		}
	}
	return newTabbed(kids, cur, t.tags)
}

// WithChild returns a copy of stem with slot i replaced by c. Split ratios
// and the current tab are carried over unchanged.
func WithChild(stem Stem, i int, c Child) (Stem, error) {
	if i < 0 || i >= stem.Len() {
		return nil, errs.Wrap(errs.ErrCodeStructure, ErrIndexOutOfRange, "slot %d of %s with %d children", i, stem.Kind(), stem.Len())
	}
	switch s := stem.(type) {
	case *Root:
		return NewRoot(c), nil
	case *Group:
		if isNil(c) {
			return nil, errs.Wrap(errs.ErrCodeStructure, ErrNilChild, "group %q", s.header)
		}
		return &Group{tags: s.tags, inner: c, header: s.header}, nil
	}
	if isNil(c) {
		return nil, errs.Wrap(errs.ErrCodeStructure, ErrNilChild, "slot %d of %s", i, stem.Kind())
	}
	switch s := stem.(type) {
	case *Split:
		kids := slices.Clone(s.children)
		kids[i] = c
		return newSplit(s.axis, kids, s.ratios, s.tags), nil
	case *Tabbed:
		kids := slices.Clone(s.children)
		kids[i] = c
		return newTabbed(kids, s.current, s.tags), nil
	}
	panic(fmt.Sprintf("layout: unknown stem type %T", stem))
}

func checkSplice(stem Stem, start, remove int, insert []Child) error {
	n := stem.Len()
	if start < 0 || remove < 0 || start > n || start+remove > n {
		return errs.Wrap(errs.ErrCodeStructure, ErrIndexOutOfRange,
			"splice [%d:%d] of %s with %d children", start, start+remove, stem.Kind(), n)
	}
	for i, c := range insert {
		if isNil(c) {
			return errs.Wrap(errs.ErrCodeStructure, ErrNilChild, "inserted child %d", i)
		}
	}
	return nil
}

func spliced(children []Child, start, remove int, insert []Child) []Child {
	return slices.Concat(children[:start], insert, children[start+remove:])
}
