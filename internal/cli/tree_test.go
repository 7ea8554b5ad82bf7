package cli

import (
	"strings"
	"testing"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

func TestRenderTree(t *testing.T) {
	root := loadJSON(t, `{"split": "vert", "ratio": [1, 3], "children": [
	  {"id": "title", "template": "bar", "gravity": "header"},
	  {"split": "tab", "currentTab": 1, "group": "docs", "children": [
	    {"id": "a", "template": "md"},
	    {"id": "b", "template": "md"}
	  ]}
	]}`)

	out := renderTree(root)
	for _, w := range []string{"root", "vert", "title", "[bar]", "header", "25%", "75%", "tabs (2)", "@docs", "○", "●"} {
		if !strings.Contains(out, w) {
			t.Errorf("tree missing %q:\n%s", w, out)
		}
	}
	if strings.Index(out, "○") > strings.Index(out, "●") {
		t.Errorf("first tab should be inactive:\n%s", out)
	}
}

func TestRenderTreeEmpty(t *testing.T) {
	if out := renderTree(layout.NewRoot(nil)); !strings.Contains(out, "(empty)") {
		t.Errorf("empty tree = %q", out)
	}
}

func TestSummary(t *testing.T) {
	root := loadJSON(t, editorJSON)
	want := "2 leaves · 1 splits · 0 tab stacks · 0 groups · depth 2"
	if got := summary(root); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}
