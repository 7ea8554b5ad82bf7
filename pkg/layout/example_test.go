package layout_test

import (
	"fmt"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

func ExampleRoot_Place() {
	// Leaves dock into a fixed skeleton by gravity, in any order.
	root := layout.NewRoot(nil)
	for _, p := range []struct {
		id      string
		gravity layout.Gravity
	}{
		{"editor", layout.GravityMain},
		{"files", layout.GravityLeft},
		{"status", layout.GravityFooter},
	} {
		leaf, _ := layout.NewLeaf(p.id, "pane", nil, layout.WithGravity(p.gravity))
		root, _ = root.Place(leaf)
	}
	fmt.Println(layout.Format(root))
	// Output:
	// root(vert(horiz(left:leaf(files), main:leaf(editor)), footer:leaf(status)))
}

func ExampleRoot_TransposeDeep() {
	a, _ := layout.NewLeaf("a", "pane", nil)
	b, _ := layout.NewLeaf("b", "pane", nil)
	c, _ := layout.NewLeaf("c", "pane", nil)
	split, _ := layout.NewSplit(layout.Horizontal, []layout.Child{a, b}, nil)
	root := layout.NewRoot(split)

	next, changed, _ := root.TransposeDeep(b, c)
	fmt.Println(changed, layout.Format(next))

	_, changed, _ = root.TransposeDeep(b, b)
	fmt.Println(changed)
	// Output:
	// true root(horiz(leaf(a), leaf(c)))
	// false
}

func ExampleSimplifyDeep() {
	a, _ := layout.NewLeaf("a", "pane", nil)
	b, _ := layout.NewLeaf("b", "pane", nil)
	c, _ := layout.NewLeaf("c", "pane", nil)
	inner, _ := layout.NewSplit(layout.Horizontal, []layout.Child{b, c}, []float64{1, 3})
	outer, _ := layout.NewSplit(layout.Horizontal, []layout.Child{a, inner}, []float64{2, 2})

	out, changed := layout.SimplifyDeep(outer)
	fmt.Println(changed, layout.Format(out), out.(*layout.Split).Ratios())

	_, changed = layout.SimplifyDeep(out)
	fmt.Println(changed)
	// Output:
	// true horiz(leaf(a), leaf(b), leaf(c)) [2 0.5 1.5]
	// false
}

func ExampleSplit_MoveSplit() {
	a, _ := layout.NewLeaf("a", "pane", nil)
	b, _ := layout.NewLeaf("b", "pane", nil)
	split, _ := layout.NewSplit(layout.Vertical, []layout.Child{a, b}, []float64{1, 1})

	unsubscribe := split.OnResize(func(ev layout.ResizeEvent) {
		fmt.Printf("child %d -> %.2f\n", ev.Index, ev.Ratio)
	})
	defer unsubscribe()

	_ = split.MoveSplit(0, 0.5)
	fmt.Println(split.Ratios())
	// Output:
	// child 0 -> 1.50
	// child 1 -> 0.50
	// [1.5 0.5]
}
