package layout

import (
	"strings"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Group decorates a single split with a header bar rendered from its own
// template.
//
// Edits may transiently leave a group holding something other than a split;
// simplification replaces such a group with its content.
type Group struct {
	tags
	inner  Child
	header string
}

// NewGroup wraps split with a header template.
func NewGroup(split *Split, header string, opts ...Option) (*Group, error) {
	if split == nil {
		return nil, errs.Wrap(errs.ErrCodeConstruction, ErrNilChild, "group %q", header)
	}
	if strings.TrimSpace(header) == "" {
		return nil, errs.New(errs.ErrCodeConstruction, "group requires a header template")
	}
	return &Group{tags: newTags(opts), inner: split, header: header}, nil
}

func (*Group) Kind() Kind { return KindGroup }
func (*Group) node()      {}

// Header is the template name of the group's header bar.
func (g *Group) Header() string { return g.header }

// Inner returns the decorated child.
func (g *Group) Inner() Child { return g.inner }

// Split returns the decorated split, if the group is well formed.
func (g *Group) Split() (*Split, bool) {
	s, ok := g.inner.(*Split)
	return s, ok
}

func (g *Group) Len() int {
	if g.inner == nil {
		return 0
	}
	return 1
}

func (g *Group) ChildAt(i int) Child {
	if i != 0 {
		return nil
	}
	return g.inner
}

func (g *Group) Children() []Child {
	if g.inner == nil {
		return nil
	}
	return []Child{g.inner}
}
