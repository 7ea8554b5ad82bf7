package layout

import (
	"fmt"
	"strings"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Kind identifies the variant of a [Node].
type Kind int

const (
	KindRoot Kind = iota
	KindLeaf
	KindSplit
	KindTabbed
	KindGroup
)

var kindNames = [...]string{
	KindRoot:   "root",
	KindLeaf:   "leaf",
	KindSplit:  "split",
	KindTabbed: "tabbed",
	KindGroup:  "group",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is any pane-layout node. The set of implementations is closed:
// [*Root], [*Leaf], [*Split], [*Tabbed], and [*Group].
type Node interface {
	Kind() Kind
	node()
}

// Child is a node that may appear below another node: anything but a [Root].
type Child interface {
	Node
	// Gravity is the docking slot the node is tagged with, if any.
	Gravity() Gravity
	// GroupName is the explicit placement group the node is tagged with, if any.
	GroupName() string
	child()
}

// Stem is a node that holds children: [*Root], [*Split], [*Tabbed], [*Group].
type Stem interface {
	Node
	Len() int
	ChildAt(i int) Child
	// Children returns a copy of the child list.
	Children() []Child
}

// tags carries the optional placement tags shared by all child variants.
type tags struct {
	gravity Gravity
	group   string
}

func (t tags) Gravity() Gravity  { return t.gravity }
func (t tags) GroupName() string { return t.group }
func (tags) child()              {}

func (t tags) empty() bool { return t.gravity == GravityNone && t.group == "" }

// Option sets optional placement tags on a child node at construction.
type Option func(*tags)

// WithGravity tags the node with a docking slot.
func WithGravity(g Gravity) Option {
	return func(t *tags) { t.gravity = g }
}

// WithGroup tags the node with an explicit placement group.
func WithGroup(name string) Option {
	return func(t *tags) { t.group = name }
}

func newTags(opts []Option) tags {
	var t tags
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func tagsOf(c Child) tags {
	return tags{gravity: c.Gravity(), group: c.GroupName()}
}

// fill returns t with its unset tags taken from from.
func (t tags) fill(from tags) tags {
	if t.gravity == GravityNone {
		t.gravity = from.gravity
	}
	if t.group == "" {
		t.group = from.group
	}
	return t
}

// =============================================================================
// Root
// =============================================================================

// Root is the unique entry point of a layout. It holds zero or one child and
// never appears below another node.
type Root struct {
	child Child
}

// NewRoot returns a root holding child. A nil child yields an empty layout.
func NewRoot(child Child) *Root {
	if isNil(child) {
		child = nil
	}
	return &Root{child: child}
}

func (*Root) Kind() Kind { return KindRoot }
func (*Root) node()      {}

// Child returns the root's child, or nil for an empty layout.
func (r *Root) Child() Child { return r.child }

// IsEmpty reports whether the layout has no content.
func (r *Root) IsEmpty() bool { return r.child == nil }

func (r *Root) Len() int {
	if r.child == nil {
		return 0
	}
	return 1
}

func (r *Root) ChildAt(i int) Child {
	if i != 0 || r.child == nil {
		return nil
	}
	return r.child
}

func (r *Root) Children() []Child {
	if r.child == nil {
		return nil
	}
	return []Child{r.child}
}

// =============================================================================
// Leaf
// =============================================================================

// Leaf is terminal content. Its id is stable and unique within a tree; it
// identifies persisted UI state such as scroll position. Template is a key
// into an external template registry, and Extra is an opaque payload owned
// by the consumer.
type Leaf struct {
	tags
	id       string
	template string
	extra    any
}

// NewLeaf creates a leaf. Both id and template are required.
func NewLeaf(id, template string, extra any, opts ...Option) (*Leaf, error) {
	if err := errs.ValidateLeafID(id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(template) == "" {
		return nil, errs.New(errs.ErrCodeConstruction, "leaf %q requires a template name", id)
	}
	return &Leaf{tags: newTags(opts), id: id, template: template, extra: extra}, nil
}

func (*Leaf) Kind() Kind { return KindLeaf }
func (*Leaf) node()      {}

func (l *Leaf) ID() string       { return l.id }
func (l *Leaf) Template() string { return l.template }
func (l *Leaf) Extra() any       { return l.extra }

// =============================================================================
// Retagging
// =============================================================================

// Retag returns a copy of c carrying the given tags. The copy shares c's
// children; it is a new node as far as identity is concerned.
func Retag(c Child, gravity Gravity, group string) Child {
	t := tags{gravity: gravity, group: group}
	switch c := c.(type) {
	case *Leaf:
		return &Leaf{tags: t, id: c.id, template: c.template, extra: c.extra}
	case *Split:
		return newSplit(c.axis, c.children, c.ratios, t)
	case *Tabbed:
		return newTabbed(c.children, c.current, t)
	case *Group:
		return &Group{tags: t, inner: c.inner, header: c.header}
	}
	panic(fmt.Sprintf("layout: unknown child type %T", c))
}

// inheritTags fills the tags c lacks from t. It returns c itself when there
// is nothing to fill.
func inheritTags(c Child, t tags) Child {
	gravity, group := c.Gravity(), c.GroupName()
	changed := false
	if gravity == GravityNone && t.gravity != GravityNone {
		gravity = t.gravity
		changed = true
	}
	if group == "" && t.group != "" {
		group = t.group
		changed = true
	}
	if !changed {
		return c
	}
	return Retag(c, gravity, group)
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *Root:
		return n == nil
	case *Leaf:
		return n == nil
	case *Split:
		return n == nil
	case *Tabbed:
		return n == nil
	case *Group:
		return n == nil
	}
	return false
}

func checkChildren(children []Child) error {
	for i, c := range children {
		if isNil(c) {
			return errs.Wrap(errs.ErrCodeConstruction, ErrNilChild, "child %d", i)
		}
	}
	return nil
}
