package template

import (
	"reflect"
	"strings"
	"testing"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

func intp(i int) *int { return &i }

// workspace is a canonical template: every split has ratios and every
// tabbed branch has a current tab.
func workspace() *Template {
	return &Template{
		Split: SplitVertical,
		Ratio: []float64{1, 4, 1},
		Children: []*Template{
			{ID: "title", Template: "titlebar", Gravity: "header"},
			{
				Split: SplitHorizontal,
				Ratio: []float64{1, 3},
				Children: []*Template{
					{ID: "files", Template: "tree", Gravity: "left", Group: "nav"},
					{
						Split:      SplitTab,
						CurrentTab: intp(1),
						Gravity:    "main",
						Children: []*Template{
							{ID: "main.go", Template: "editor", Extra: map[string]any{"line": 12.0}},
							{ID: "go.mod", Template: "editor"},
						},
					},
				},
			},
			{
				Split:  SplitGroup,
				Header: "panel-header",
				Children: []*Template{{
					Split: SplitHorizontal,
					Ratio: []float64{1, 1},
					Children: []*Template{
						{ID: "term", Template: "terminal"},
						{ID: "logs", Template: "log"},
					},
				}},
			},
		},
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	tpl := workspace()
	root, err := Load(tpl)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := layout.Validate(root); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	got := Save(root)
	if !reflect.DeepEqual(got, tpl) {
		t.Errorf("Save(Load(t)) != t\ngot:  %+v\nwant: %+v", got, tpl)
	}

	again, err := Load(got)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !layout.Equal(root, again) {
		t.Errorf("Load(Save(r)) != r\ngot:  %s\nwant: %s", layout.Format(again), layout.Format(root))
	}
}

func TestLoadShape(t *testing.T) {
	root, err := Load(workspace())
	if err != nil {
		t.Fatal(err)
	}
	want := "root(vert(header:leaf(title), horiz(left:@nav:leaf(files), main:tabs#1(leaf(main.go), leaf(go.mod))), group[panel-header](horiz(leaf(term), leaf(logs)))))"
	if got := layout.Format(root); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	root, err := Load(&Template{
		Split: SplitTab,
		Children: []*Template{
			{Split: SplitHorizontal, Children: []*Template{
				{ID: "a", Template: "t"},
				{ID: "b", Template: "t"},
			}},
			{ID: "c", Template: "t"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	tabs := root.Child().(*layout.Tabbed)
	if tabs.CurrentTab() != 0 {
		t.Errorf("current = %d", tabs.CurrentTab())
	}
	if r := tabs.ChildAt(0).(*layout.Split).Ratios(); !reflect.DeepEqual(r, []float64{1, 1}) {
		t.Errorf("ratios = %v", r)
	}
}

func TestLoadEmpty(t *testing.T) {
	for _, tpl := range []*Template{nil, {}} {
		root, err := Load(tpl)
		if err != nil {
			t.Fatal(err)
		}
		if !root.IsEmpty() {
			t.Errorf("Load(%v) is not empty", tpl)
		}
	}
	if Save(layout.NewRoot(nil)) != nil {
		t.Error("empty layout saved as non-nil")
	}
}

func TestLoadErrors(t *testing.T) {
	leaf := func(id string) *Template { return &Template{ID: id, Template: "t"} }

	tests := []struct {
		name     string
		tpl      *Template
		wantPath string
		wantMsg  string
	}{
		{
			name:     "UnknownSplit",
			tpl:      &Template{Split: "diagonal", Children: []*Template{leaf("a")}},
			wantPath: "root",
			wantMsg:  `unknown split "diagonal"`,
		},
		{
			name:     "MissingID",
			tpl:      &Template{Split: SplitVertical, Children: []*Template{leaf("a"), {Template: "t"}}},
			wantPath: "root.children[1]",
			wantMsg:  `missing "id"`,
		},
		{
			name:     "MissingTemplate",
			tpl:      &Template{Split: SplitVertical, Children: []*Template{{ID: "a"}}},
			wantPath: "root.children[0]",
			wantMsg:  `missing "template"`,
		},
		{
			name:     "NoChildren",
			tpl:      &Template{Split: SplitHorizontal},
			wantPath: "root",
			wantMsg:  "no children",
		},
		{
			name:     "NilChild",
			tpl:      &Template{Split: SplitTab, Children: []*Template{leaf("a"), nil}},
			wantPath: "root.children[1]",
			wantMsg:  "missing node",
		},
		{
			name:     "RatioMismatch",
			tpl:      &Template{Split: SplitHorizontal, Ratio: []float64{1}, Children: []*Template{leaf("a"), leaf("b")}},
			wantPath: "root",
			wantMsg:  "ratio count",
		},
		{
			name:     "RatioOnLeaf",
			tpl:      &Template{Split: SplitVertical, Children: []*Template{leaf("a"), {ID: "b", Template: "t", Ratio: []float64{1}}}},
			wantPath: "root.children[1]",
			wantMsg:  `"ratio" is not allowed on a leaf node`,
		},
		{
			name:     "CurrentTabOnLeaf",
			tpl:      &Template{ID: "a", Template: "t", CurrentTab: intp(0)},
			wantPath: "root",
			wantMsg:  `"currentTab" is not allowed on a leaf node`,
		},
		{
			name:     "CurrentTabOnSplit",
			tpl:      &Template{Split: SplitHorizontal, CurrentTab: intp(1), Children: []*Template{leaf("a"), leaf("b")}},
			wantPath: "root",
			wantMsg:  `"currentTab" is not allowed on a horiz node`,
		},
		{
			name:     "RatioOnTabs",
			tpl:      &Template{Split: SplitTab, Ratio: []float64{1, 1}, Children: []*Template{leaf("a"), leaf("b")}},
			wantPath: "root",
			wantMsg:  `"ratio" is not allowed on a tab node`,
		},
		{
			name:     "LeafFieldsOnGroup",
			tpl:      &Template{Split: SplitGroup, Header: "h", Template: "t", Children: []*Template{{Split: SplitVertical, Children: []*Template{leaf("a"), leaf("b")}}}},
			wantPath: "root",
			wantMsg:  `"template" is not allowed on a group node`,
		},
		{
			name:     "HeaderOnSplit",
			tpl:      &Template{Split: SplitVertical, Header: "h", Children: []*Template{leaf("a"), leaf("b")}},
			wantPath: "root",
			wantMsg:  `"header" is not allowed on a vert node`,
		},
		{
			name:     "TabOutOfRange",
			tpl:      &Template{Split: SplitTab, CurrentTab: intp(2), Children: []*Template{leaf("a"), leaf("b")}},
			wantPath: "root",
			wantMsg:  "out of range",
		},
		{
			name:     "UnknownGravity",
			tpl:      &Template{ID: "a", Template: "t", Gravity: "center"},
			wantPath: "root",
			wantMsg:  "unknown gravity",
		},
		{
			name:     "DuplicateID",
			tpl:      &Template{Split: SplitVertical, Children: []*Template{leaf("a"), leaf("a")}},
			wantPath: "root.children[1]",
			wantMsg:  "already used at root.children[0]",
		},
		{
			name:     "GroupWithoutHeader",
			tpl:      &Template{Split: SplitGroup, Children: []*Template{{Split: SplitHorizontal, Children: []*Template{leaf("a")}}}},
			wantPath: "root",
			wantMsg:  `missing "header"`,
		},
		{
			name:     "GroupOfLeaf",
			tpl:      &Template{Split: SplitGroup, Header: "h", Children: []*Template{leaf("a")}},
			wantPath: "root",
			wantMsg:  "must be a horiz or vert split",
		},
		{
			name:     "LeafWithChildren",
			tpl:      &Template{ID: "a", Template: "t", Children: []*Template{leaf("b")}},
			wantPath: "root",
			wantMsg:  "has children but no split",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Load(tt.tpl)
			if err == nil {
				t.Fatalf("expected error, got %s", layout.Format(root))
			}
			if root != nil {
				t.Error("partial tree returned with error")
			}
			if !errs.Is(err, errs.ErrCodeInvalidTemplate) {
				t.Errorf("code = %s", errs.GetCode(err))
			}
			msg := err.Error()
			if !strings.Contains(msg, tt.wantPath) || !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error %q, want path %q and %q", msg, tt.wantPath, tt.wantMsg)
			}
		})
	}
}

func TestSaveChildTags(t *testing.T) {
	s, err := layout.NewSplit(layout.Vertical, []layout.Child{
		mustLeaf(t, "a"), mustLeaf(t, "b"),
	}, []float64{0.2, 0.2}, layout.WithGravity(layout.GravityBottom), layout.WithGroup("out"))
	if err != nil {
		t.Fatal(err)
	}
	got := SaveChild(s)
	if got.Gravity != "bottom" || got.Group != "out" || got.Split != SplitVertical {
		t.Errorf("tags = %+v", got)
	}
	if !reflect.DeepEqual(got.Ratio, []float64{0.5, 0.5}) {
		t.Errorf("ratio = %v", got.Ratio)
	}
}

func mustLeaf(t *testing.T, id string) *layout.Leaf {
	t.Helper()
	l, err := layout.NewLeaf(id, "t", nil)
	if err != nil {
		t.Fatal(err)
	}
	return l
}
