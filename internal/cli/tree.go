package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

// renderTree draws a layout as an indented tree. Split children show their
// share of the split; the current tab is marked with a filled dot.
func renderTree(root *layout.Root) string {
	t := tree.Root(styleBranch.Render("root")).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	if root == nil || root.IsEmpty() {
		return t.Child(StyleDim.Render("(empty)")).String()
	}
	t.Child(subtree(root.Child(), ""))
	return t.String()
}

// subtree returns a plain label for leaves and a *tree.Tree for branches.
func subtree(c layout.Child, prefix string) any {
	label := prefix + nodeLabel(c)
	stem, ok := c.(layout.Stem)
	if !ok {
		return label
	}
	t := tree.Root(label)
	for i, child := range stem.Children() {
		t.Child(subtree(child, childPrefix(stem, i)))
	}
	return t
}

func childPrefix(stem layout.Stem, i int) string {
	switch s := stem.(type) {
	case *layout.Split:
		share := s.Ratio(i) / s.RatioSum() * 100
		return StyleDim.Render(strconv.FormatFloat(share, 'f', 0, 64)+"%") + " "
	case *layout.Tabbed:
		if s.CurrentTab() == i {
			return StyleSuccess.Render("●") + " "
		}
		return StyleDim.Render("○") + " "
	}
	return ""
}

func nodeLabel(c layout.Child) string {
	var b strings.Builder
	switch n := c.(type) {
	case *layout.Leaf:
		b.WriteString(styleLeaf.Render(n.ID()))
		b.WriteString(" " + StyleDim.Render("["+n.Template()+"]"))
	case *layout.Split:
		b.WriteString(styleBranch.Render(n.Axis().String()))
	case *layout.Tabbed:
		b.WriteString(styleBranch.Render(fmt.Sprintf("tabs (%d)", n.Len())))
	case *layout.Group:
		b.WriteString(styleBranch.Render(fmt.Sprintf("group %q", n.Header())))
	}
	if g := c.Gravity(); g != layout.GravityNone {
		b.WriteString(" " + styleTag.Render(g.String()))
	}
	if g := c.GroupName(); g != "" {
		b.WriteString(" " + styleTag.Render("@"+g))
	}
	return b.String()
}

// summary counts the nodes of a layout by kind.
func summary(root *layout.Root) string {
	counts := map[layout.Kind]int{}
	depth := 0
	var walk func(n layout.Node, d int)
	walk = func(n layout.Node, d int) {
		depth = max(depth, d)
		stem, ok := n.(layout.Stem)
		if !ok {
			return
		}
		for _, c := range stem.Children() {
			counts[c.Kind()]++
			walk(c, d+1)
		}
	}
	walk(root, 0)
	return fmt.Sprintf("%d leaves · %d splits · %d tab stacks · %d groups · depth %d",
		counts[layout.KindLeaf], counts[layout.KindSplit], counts[layout.KindTabbed], counts[layout.KindGroup], depth)
}
