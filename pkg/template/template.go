package template

import (
	"fmt"
	"slices"
	"strings"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

// Split discriminator values.
const (
	SplitHorizontal = "horiz"
	SplitVertical   = "vert"
	SplitTab        = "tab"
	SplitGroup      = "group"
)

// Template is the persisted form of one layout node.
type Template struct {
	Split      string      `json:"split,omitempty" toml:"split,omitempty"`
	Ratio      []float64   `json:"ratio,omitempty" toml:"ratio,omitempty"`
	CurrentTab *int        `json:"currentTab,omitempty" toml:"currentTab,omitempty"`
	Header     string      `json:"header,omitempty" toml:"header,omitempty"`
	Children   []*Template `json:"children,omitempty" toml:"children,omitempty"`

	ID       string `json:"id,omitempty" toml:"id,omitempty"`
	Template string `json:"template,omitempty" toml:"template,omitempty"`
	Extra    any    `json:"extra,omitempty" toml:"extra,omitempty"`

	Gravity string `json:"gravity,omitempty" toml:"gravity,omitempty"`
	Group   string `json:"group,omitempty" toml:"group,omitempty"`
}

// IsLeaf reports whether t describes a leaf.
func (t *Template) IsLeaf() bool { return t.Split == "" }

func (t *Template) isZero() bool {
	return t.Split == "" && t.ID == "" && t.Template == "" && t.Header == "" &&
		t.Ratio == nil && t.CurrentTab == nil && len(t.Children) == 0 &&
		t.Extra == nil && t.Gravity == "" && t.Group == ""
}

// Load builds a layout from a template. A nil or zero template loads as an
// empty layout.
func Load(t *Template) (*layout.Root, error) {
	if t == nil || t.isZero() {
		return layout.NewRoot(nil), nil
	}
	child, err := LoadChild(t)
	if err != nil {
		return nil, err
	}
	return layout.NewRoot(child), nil
}

// LoadChild builds a single subtree, for callers that place or substitute
// it into an existing layout.
func LoadChild(t *Template) (layout.Child, error) {
	l := loader{ids: make(map[string]string)}
	return l.child(t, "root")
}

type loader struct {
	ids map[string]string // leaf id -> path
}

func (l *loader) child(t *Template, path string) (layout.Child, error) {
	if t == nil {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: missing node", path)
	}
	opts, err := tagOptions(t, path)
	if err != nil {
		return nil, err
	}

	if err := checkFields(t, path); err != nil {
		return nil, err
	}

	switch t.Split {
	case "":
		return l.leaf(t, path, opts)
	case SplitHorizontal, SplitVertical:
		return l.split(t, path, opts)
	case SplitTab:
		return l.tabbed(t, path, opts)
	case SplitGroup:
		return l.group(t, path, opts)
	}
	return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: unknown split %q", path, t.Split)
}

func (l *loader) leaf(t *Template, path string, opts []layout.Option) (layout.Child, error) {
	if t.ID == "" {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: leaf is missing \"id\"", path)
	}
	if t.Template == "" {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: leaf %q is missing \"template\"", path, t.ID)
	}
	if len(t.Children) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: leaf %q has children but no split", path, t.ID)
	}
	if prev, dup := l.ids[t.ID]; dup {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: leaf id %q already used at %s", path, t.ID, prev)
	}
	leaf, err := layout.NewLeaf(t.ID, t.Template, t.Extra, opts...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "%s", path)
	}
	l.ids[t.ID] = path
	return leaf, nil
}

func (l *loader) split(t *Template, path string, opts []layout.Option) (layout.Child, error) {
	kids, err := l.children(t, path)
	if err != nil {
		return nil, err
	}
	axis, _ := layout.ParseAxis(t.Split)
	s, err := layout.NewSplit(axis, kids, t.Ratio, opts...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "%s", path)
	}
	return s, nil
}

func (l *loader) tabbed(t *Template, path string, opts []layout.Option) (layout.Child, error) {
	kids, err := l.children(t, path)
	if err != nil {
		return nil, err
	}
	cur := 0
	if t.CurrentTab != nil {
		cur = *t.CurrentTab
	}
	tb, err := layout.NewTabbed(kids, cur, opts...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "%s", path)
	}
	return tb, nil
}

func (l *loader) group(t *Template, path string, opts []layout.Option) (layout.Child, error) {
	if strings.TrimSpace(t.Header) == "" {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: group is missing \"header\"", path)
	}
	if len(t.Children) != 1 {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: group needs exactly one child, has %d", path, len(t.Children))
	}
	inner, err := l.child(t.Children[0], path+".children[0]")
	if err != nil {
		return nil, err
	}
	s, ok := inner.(*layout.Split)
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: group child must be a horiz or vert split", path)
	}
	g, err := layout.NewGroup(s, t.Header, opts...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "%s", path)
	}
	return g, nil
}

func (l *loader) children(t *Template, path string) ([]layout.Child, error) {
	if len(t.Children) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "%s: %s split has no children", path, t.Split)
	}
	kids := make([]layout.Child, len(t.Children))
	for i, ct := range t.Children {
		c, err := l.child(ct, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		kids[i] = c
	}
	return kids, nil
}

// nodeFields lists the fields each kind of node accepts besides the tags
// and children.
var nodeFields = map[string][]string{
	"":              {"id", "template", "extra"},
	SplitHorizontal: {"ratio"},
	SplitVertical:   {"ratio"},
	SplitTab:        {"currentTab"},
	SplitGroup:      {"header"},
}

// checkFields rejects fields that do not belong to t's kind of node.
func checkFields(t *Template, path string) error {
	allowed, ok := nodeFields[t.Split]
	if !ok {
		return nil // unknown split, reported by the caller
	}
	set := map[string]bool{
		"id":         t.ID != "",
		"template":   t.Template != "",
		"extra":      t.Extra != nil,
		"ratio":      t.Ratio != nil,
		"currentTab": t.CurrentTab != nil,
		"header":     t.Header != "",
	}
	for _, f := range []string{"id", "template", "extra", "ratio", "currentTab", "header"} {
		if set[f] && !slices.Contains(allowed, f) {
			kind := t.Split
			if kind == "" {
				kind = "leaf"
			}
			return errs.New(errs.ErrCodeInvalidTemplate, "%s: %q is not allowed on a %s node", path, f, kind)
		}
	}
	return nil
}

func tagOptions(t *Template, path string) ([]layout.Option, error) {
	var opts []layout.Option
	if t.Gravity != "" {
		g, err := layout.ParseGravity(t.Gravity)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "%s", path)
		}
		opts = append(opts, layout.WithGravity(g))
	}
	if t.Group != "" {
		opts = append(opts, layout.WithGroup(t.Group))
	}
	return opts, nil
}

// Save converts a layout to its template. An empty layout saves as nil.
func Save(root *layout.Root) *Template {
	if root == nil || root.IsEmpty() {
		return nil
	}
	return SaveChild(root.Child())
}

// SaveChild converts a single subtree.
func SaveChild(c layout.Child) *Template {
	t := &Template{Group: c.GroupName()}
	if g := c.Gravity(); g != layout.GravityNone {
		t.Gravity = g.String()
	}

	switch c := c.(type) {
	case *layout.Leaf:
		t.ID, t.Template, t.Extra = c.ID(), c.Template(), c.Extra()
	case *layout.Split:
		t.Split = c.Axis().String()
		t.Ratio = c.Ratios()
		t.Children = saveChildren(c.Children())
	case *layout.Tabbed:
		cur := c.CurrentTab()
		t.Split = SplitTab
		t.CurrentTab = &cur
		t.Children = saveChildren(c.Children())
	case *layout.Group:
		t.Split = SplitGroup
		t.Header = c.Header()
		t.Children = saveChildren(c.Children())
	default:
		panic(fmt.Sprintf("template: unknown child type %T", c))
	}
	return t
}

func saveChildren(children []layout.Child) []*Template {
	out := make([]*Template, len(children))
	for i, c := range children {
		out[i] = SaveChild(c)
	}
	return out
}
