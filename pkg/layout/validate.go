package layout

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Validate checks every invariant of the tree rooted at n and returns the
// first violation, naming the path of the offending node. Edits that have
// not been simplified yet may leave empty branches, which Validate reports.
func Validate(n Node) error {
	v := validator{ids: make(map[string]string)}
	return v.check(n, "root")
}

type validator struct {
	ids map[string]string // leaf id -> path
}

func (v *validator) check(n Node, path string) error {
	switch n := n.(type) {
	case nil:
		return errs.Wrap(errs.ErrCodeStructure, ErrNilChild, "at %s", path)
	case *Root:
		if path != "root" {
			return errs.Wrap(errs.ErrCodeStructure, ErrRootAsChild, "at %s", path)
		}
		if n.child == nil {
			return nil
		}
		return v.check(n.child, path+".child")
	case *Leaf:
		if err := errs.ValidateLeafID(n.id); err != nil {
			return errs.Wrap(errs.ErrCodeStructure, err, "at %s", path)
		}
		if strings.TrimSpace(n.template) == "" {
			return errs.New(errs.ErrCodeStructure, "leaf %q at %s has no template", n.id, path)
		}
		if prev, dup := v.ids[n.id]; dup {
			return errs.Wrap(errs.ErrCodeStructure, ErrDuplicateLeafID, "%q at %s and %s", n.id, prev, path)
		}
		v.ids[n.id] = path
		return nil
	case *Split:
		if !n.axis.valid() {
			return errs.New(errs.ErrCodeStructure, "invalid axis at %s", path)
		}
		if len(n.ratios) != len(n.children) {
			return errs.Wrap(errs.ErrCodeStructure, ErrRatioMismatch, "at %s", path)
		}
		sum := 0.0
		for i, r := range n.ratios {
			if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
				return errs.Wrap(errs.ErrCodeStructure, ErrInvalidRatio, "ratio %d at %s", i, path)
			}
			sum += r
		}
		if len(n.children) == 0 {
			return errs.Wrap(errs.ErrCodeStructure, ErrEmptyBranch, "split at %s", path)
		}
		if sum < 1-ratioEpsilon {
			return errs.New(errs.ErrCodeStructure, "ratios at %s sum to %v", path, sum)
		}
		return v.children(n.children, path)
	case *Tabbed:
		if len(n.children) == 0 {
			return errs.Wrap(errs.ErrCodeStructure, ErrEmptyBranch, "tabbed at %s", path)
		}
		if !tabInRange(n.current, len(n.children)) {
			return errs.Wrap(errs.ErrCodeStructure, ErrTabOutOfRange, "tab %d at %s", n.current, path)
		}
		return v.children(n.children, path)
	case *Group:
		if _, ok := n.inner.(*Split); !ok {
			return errs.New(errs.ErrCodeStructure, "group %q at %s does not hold a split", n.header, path)
		}
		return v.check(n.inner, path+".split")
	}
	return errs.New(errs.ErrCodeStructure, "unknown node type %T at %s", n, path)
}

func (v *validator) children(children []Child, path string) error {
	for i, c := range children {
		if err := v.check(c, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

const ratioEpsilon = 1e-9

// Equal reports whether a and b are structurally equal: same variants,
// tags, leaf ids, templates, extras, headers, and current tabs, with split
// ratios equal up to uniform scaling.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if ca, ok := a.(Child); ok {
		cb := b.(Child)
		if ca.Gravity() != cb.Gravity() || ca.GroupName() != cb.GroupName() {
			return false
		}
	}

	switch a := a.(type) {
	case *Root:
		return Equal(a.child, b.(*Root).child)
	case *Leaf:
		l := b.(*Leaf)
		return a.id == l.id && a.template == l.template && reflect.DeepEqual(a.extra, l.extra)
	case *Split:
		s := b.(*Split)
		if a.axis != s.axis || !equalChildren(a.children, s.children) {
			return false
		}
		return proportional(a.ratios, a.ratioSum, s.ratios, s.ratioSum)
	case *Tabbed:
		t := b.(*Tabbed)
		return a.current == t.current && equalChildren(a.children, t.children)
	case *Group:
		g := b.(*Group)
		return a.header == g.header && Equal(a.inner, g.inner)
	}
	return false
}

func equalChildren(a, b []Child) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func proportional(a []float64, sumA float64, b []float64, sumB float64) bool {
	if len(a) != len(b) {
		return false
	}
	if sumA == 0 || sumB == 0 {
		return sumA == sumB
	}
	for i := range a {
		if math.Abs(a[i]/sumA-b[i]/sumB) > ratioEpsilon {
			return false
		}
	}
	return true
}
