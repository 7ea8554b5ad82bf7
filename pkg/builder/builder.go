package builder

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/observability"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/template"
)

// Builder applies edits to a working layout. A Builder is not safe for
// concurrent use; callers serialize edits.
type Builder struct {
	root   *layout.Root
	logger *log.Logger
	err    error // first failed construction since the last verb
	edits  int

	inTx   bool  // running inside Build
	failed error // first failed verb of the transaction
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for per-edit debug output.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// From starts a builder at an existing layout. A nil root starts empty.
func From(root *layout.Root, opts ...Option) *Builder {
	if root == nil {
		root = layout.NewRoot(nil)
	}
	b := &Builder{root: root, logger: log.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Empty starts a builder at an empty layout.
func Empty(opts ...Option) *Builder {
	return From(nil, opts...)
}

// Root returns the current layout.
func (b *Builder) Root() *layout.Root { return b.root }

// Edits returns the number of edits committed so far.
func (b *Builder) Edits() int { return b.edits }

// Err returns the pending construction error, if any.
func (b *Builder) Err() error { return b.err }

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of [Builder.Build]. On success Root holds the
// committed layout; on failure Err holds the cause and Root the unchanged
// previous layout.
type Result struct {
	Root *layout.Root
	Err  error
}

// OK reports whether the build committed.
func (r Result) OK() bool { return r.Err == nil }

// Build runs fn against a scratch builder starting at the current root.
// The scratch root is committed only if fn returns nil, no verb failed
// (even one whose error fn ignored) and no construction error is pending.
// Otherwise nothing changes. A panic inside fn is
// recovered and reported as an [errs.ErrCodeInternal] error.
func (b *Builder) Build(fn func(*Builder) error) (res Result) {
	start := time.Now()
	tx := &Builder{root: b.root, logger: b.logger, inTx: true}

	defer func() {
		if p := recover(); p != nil {
			res = Result{Root: b.root, Err: panicError(p)}
		}
		observability.Builder().OnBuild(tx.edits, res.OK(), time.Since(start), res.Err)
		if res.OK() {
			b.logger.Debug("build committed", "edits", tx.edits, "duration", time.Since(start))
		} else {
			b.logger.Debug("build rejected", "edits", tx.edits, "err", res.Err)
		}
	}()

	err := fn(tx)
	if err == nil {
		err = tx.failed
	}
	if err == nil {
		err = tx.err
	}
	if err != nil {
		return Result{Root: b.root, Err: err}
	}
	b.root = tx.root
	b.edits += tx.edits
	return Result{Root: b.root}
}

func panicError(p any) error {
	if err, ok := p.(error); ok {
		return errs.Wrap(errs.ErrCodeInternal, err, "build panicked")
	}
	return errs.New(errs.ErrCodeInternal, "build panicked: %v", p)
}

// =============================================================================
// Edit plumbing
// =============================================================================

// edit runs one verb. fn computes the next root from the current one; the
// result is simplified and validated before it replaces the current root.
func (b *Builder) edit(verb string, fn func(root *layout.Root) (*layout.Root, error)) (err error) {
	start := time.Now()
	defer func() {
		observability.Builder().OnEdit(verb, time.Since(start), err)
		if err != nil {
			b.logger.Debug("edit failed", "verb", verb, "err", err)
			if b.inTx && b.failed == nil {
				b.failed = err
			}
		}
	}()

	if b.err != nil {
		err, b.err = b.err, nil
		return err
	}
	next, err := fn(b.root)
	if err != nil {
		return err
	}
	next = next.Simplified()
	if err := layout.Validate(next); err != nil {
		return fmt.Errorf("%s: %w", verb, err)
	}
	b.root = next
	b.edits++
	b.logger.Debug("edit applied", "verb", verb, "layout", layout.Format(next))
	return nil
}

// fail records a construction error to be returned by the next verb.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// locate finds c in root, failing with a not-found error.
func locate(root *layout.Root, c layout.Child) (layout.ChildID, error) {
	if c == nil {
		return layout.ChildID{}, errs.Wrap(errs.ErrCodeStructure, layout.ErrNilChild, "edit target")
	}
	id, ok := root.Locate(c)
	if !ok {
		return layout.ChildID{}, errs.Wrap(errs.ErrCodeNotFound, layout.ErrNotFound, "%s", layout.Format(c))
	}
	return id, nil
}

// replaceStem swaps stem for next, treating the root itself specially.
func replaceStem(root *layout.Root, stem, next layout.Stem) (*layout.Root, error) {
	if stem == layout.Stem(root) {
		return next.(*layout.Root), nil
	}
	return root.Substitute(stem, next)
}

// =============================================================================
// Verbs
// =============================================================================

// Add places child by its gravity and group tags. See [layout.Root.Place].
func (b *Builder) Add(child layout.Child) error {
	return b.edit("add", func(root *layout.Root) (*layout.Root, error) {
		return root.Place(child)
	})
}

// Sub substitutes replace for find, which must be in the layout. Replacing
// the root itself requires a [*layout.Root].
func (b *Builder) Sub(find, replace layout.Node) error {
	return b.edit("sub", func(root *layout.Root) (*layout.Root, error) {
		return root.Substitute(find, replace)
	})
}

// Set replaces the whole layout.
func (b *Builder) Set(root *layout.Root) error {
	return b.edit("set", func(*layout.Root) (*layout.Root, error) {
		if root == nil {
			return layout.NewRoot(nil), nil
		}
		return root, nil
	})
}

// Load replaces the whole layout with one built from a template.
func (b *Builder) Load(t *template.Template) error {
	return b.edit("load", func(*layout.Root) (*layout.Root, error) {
		return template.Load(t)
	})
}

// Save returns the template of the current layout.
func (b *Builder) Save() *template.Template {
	return template.Save(b.root)
}

// Remove deletes c from the layout. Branches left with a single child
// collapse.
func (b *Builder) Remove(c layout.Child) error {
	return b.edit("remove", func(root *layout.Root) (*layout.Root, error) {
		id, err := locate(root, c)
		if err != nil {
			return nil, err
		}
		next, err := layout.Splice(id.Stem, id.Index, 1)
		if err != nil {
			return nil, err
		}
		return replaceStem(root, id.Stem, next)
	})
}

// Insert puts child into stem at index. Splits give the new child the mean
// ratio of the existing ones.
func (b *Builder) Insert(stem layout.Stem, index int, child layout.Child) error {
	return b.edit("insert", func(root *layout.Root) (*layout.Root, error) {
		if stem != layout.Stem(root) && !root.Contains(stem) {
			return nil, errs.Wrap(errs.ErrCodeNotFound, layout.ErrNotFound, "insert target %s", stem.Kind())
		}
		next, err := layout.Splice(stem, index, 0, child)
		if err != nil {
			return nil, err
		}
		return replaceStem(root, stem, next)
	})
}

// Side is where [Builder.Beside] puts the new child relative to its target.
type Side int

const (
	Left Side = iota
	Right
	Above
	Below
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Above:
		return "above"
	case Below:
		return "below"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide parses a side name.
func ParseSide(s string) (Side, error) {
	for _, side := range []Side{Left, Right, Above, Below} {
		if side.String() == s {
			return side, nil
		}
	}
	return 0, errs.New(errs.ErrCodeInvalidInput, "unknown side %q", s)
}

func (s Side) axis() layout.Axis {
	if s == Left || s == Right {
		return layout.Horizontal
	}
	return layout.Vertical
}

func (s Side) after() bool { return s == Right || s == Below }

// Beside puts child next to target. When target already sits in a split
// along the matching axis, child joins that split; otherwise target is
// wrapped in a new two-way split.
func (b *Builder) Beside(target, child layout.Child, side Side) error {
	return b.edit("beside", func(root *layout.Root) (*layout.Root, error) {
		id, err := locate(root, target)
		if err != nil {
			return nil, err
		}
		at := id.Index
		if side.after() {
			at++
		}
		if parent, ok := id.Stem.(*layout.Split); ok && parent.Axis() == side.axis() {
			next, err := layout.Splice(parent, at, 0, child)
			if err != nil {
				return nil, err
			}
			return root.Substitute(parent, next)
		}

		pair := []layout.Child{child, target}
		if side.after() {
			pair = []layout.Child{target, child}
		}
		wrap, err := layout.NewSplit(side.axis(), pair, nil)
		if err != nil {
			return nil, err
		}
		return root.Substitute(target, wrap)
	})
}

// TabWith puts child on a new tab next to target and makes it current.
// See [layout.Root.TabAlongside].
func (b *Builder) TabWith(target, child layout.Child) error {
	return b.edit("tab", func(root *layout.Root) (*layout.Root, error) {
		return root.TabAlongside(target, child)
	})
}

// Resize replaces the ratios of split, which must be in the layout.
func (b *Builder) Resize(split *layout.Split, ratios []float64) error {
	return b.edit("resize", func(root *layout.Root) (*layout.Root, error) {
		if _, err := locate(root, split); err != nil {
			return nil, err
		}
		next, err := layout.NewSplit(split.Axis(), split.Children(), ratios, tagOptions(split)...)
		if err != nil {
			return nil, err
		}
		return root.Substitute(split, next)
	})
}

// SelectTab switches the current tab of tabs, which must be in the layout.
func (b *Builder) SelectTab(tabs *layout.Tabbed, index int) error {
	return b.edit("select", func(root *layout.Root) (*layout.Root, error) {
		if _, err := locate(root, tabs); err != nil {
			return nil, err
		}
		next, err := layout.NewTabbed(tabs.Children(), index, tagOptions(tabs)...)
		if err != nil {
			return nil, err
		}
		return root.Substitute(tabs, next)
	})
}

// Simplify canonicalizes the current layout. It is a no-op for layouts
// produced by other verbs, which simplify as they go.
func (b *Builder) Simplify() error {
	return b.edit("simplify", func(root *layout.Root) (*layout.Root, error) {
		return root, nil
	})
}

func tagOptions(c layout.Child) []layout.Option {
	var opts []layout.Option
	if g := c.Gravity(); g != layout.GravityNone {
		opts = append(opts, layout.WithGravity(g))
	}
	if name := c.GroupName(); name != "" {
		opts = append(opts, layout.WithGroup(name))
	}
	return opts
}

// =============================================================================
// Node constructors
// =============================================================================

// Leaf creates a leaf. On failure it returns nil and the next verb fails.
func (b *Builder) Leaf(id, tmpl string, extra any, opts ...layout.Option) *layout.Leaf {
	l, err := layout.NewLeaf(id, tmpl, extra, opts...)
	if err != nil {
		b.fail(err)
		return nil
	}
	return l
}

// Split creates a split. A nil ratios slice gives every child a ratio of 1.
func (b *Builder) Split(axis layout.Axis, children []layout.Child, ratios []float64, opts ...layout.Option) *layout.Split {
	s, err := layout.NewSplit(axis, children, ratios, opts...)
	if err != nil {
		b.fail(err)
		return nil
	}
	return s
}

// Tab creates a tabbed branch.
func (b *Builder) Tab(children []layout.Child, current int, opts ...layout.Option) *layout.Tabbed {
	t, err := layout.NewTabbed(children, current, opts...)
	if err != nil {
		b.fail(err)
		return nil
	}
	return t
}

// Group wraps a split with a header.
func (b *Builder) Group(split *layout.Split, header string, opts ...layout.Option) *layout.Group {
	g, err := layout.NewGroup(split, header, opts...)
	if err != nil {
		b.fail(err)
		return nil
	}
	return g
}
