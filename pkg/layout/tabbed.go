package layout

import (
	"slices"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Tabbed shows one of its children at a time. The current tab index is
// always within [0, max(1, len(children))).
type Tabbed struct {
	tags
	children []Child
	current  int
	tabs     emitter[TabEvent]
}

// NewTabbed creates a tabbed branch showing children[current].
func NewTabbed(children []Child, current int, opts ...Option) (*Tabbed, error) {
	if len(children) == 0 {
		return nil, errs.Wrap(errs.ErrCodeConstruction, ErrEmptyBranch, "tabbed")
	}
	if err := checkChildren(children); err != nil {
		return nil, err
	}
	if !tabInRange(current, len(children)) {
		return nil, errs.Wrap(errs.ErrCodeConstruction, ErrTabOutOfRange,
			"tab %d of %d", current, len(children))
	}
	return newTabbed(children, current, newTags(opts)), nil
}

func newTabbed(children []Child, current int, t tags) *Tabbed {
	return &Tabbed{
		tags:     t,
		children: slices.Clone(children),
		current:  clampTab(current, len(children)),
	}
}

func (*Tabbed) Kind() Kind { return KindTabbed }
func (*Tabbed) node()      {}

func (t *Tabbed) Len() int            { return len(t.children) }
func (t *Tabbed) ChildAt(i int) Child { return childAt(t.children, i) }
func (t *Tabbed) Children() []Child   { return slices.Clone(t.children) }
func (t *Tabbed) CurrentTab() int     { return t.current }

// Current returns the child on the current tab, or nil when there are none.
func (t *Tabbed) Current() Child { return childAt(t.children, t.current) }

// OnTabChange registers fn to receive current-tab changes. The returned
// function unsubscribes.
func (t *Tabbed) OnTabChange(fn func(TabEvent)) (unsubscribe func()) {
	return t.tabs.subscribe(fn)
}

// SetCurrentTab switches tabs in place and emits a [TabEvent] when the
// index actually changes.
func (t *Tabbed) SetCurrentTab(i int) error {
	if !tabInRange(i, len(t.children)) {
		return errs.Wrap(errs.ErrCodeConstruction, ErrTabOutOfRange, "tab %d of %d", i, len(t.children))
	}
	if i == t.current {
		return nil
	}
	prev := t.current
	t.current = i
	t.tabs.emit(TabEvent{Previous: prev, Current: i})
	return nil
}

func tabInRange(i, n int) bool { return i >= 0 && i < max(1, n) }

func clampTab(i, n int) int { return min(max(i, 0), max(1, n)-1) }
