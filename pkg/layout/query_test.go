package layout

import "testing"

func TestQueries(t *testing.T) {
	r, ls := sample(t)

	id, ok := r.FindChildByGravity(GravityHeader)
	if !ok || id.Child() != Child(ls["a"]) || id.Index != 0 {
		t.Errorf("FindChildByGravity(header) = %+v, %v", id, ok)
	}
	if _, ok := r.FindChildByGravity(GravityFooter); ok {
		t.Error("found a footer")
	}
	if _, ok := r.FindChildByGravity(GravityNone); ok {
		t.Error("GravityNone matched an untagged node")
	}

	id, ok = r.FindLeaf("d")
	if !ok || id.Child() != Child(ls["d"]) {
		t.Fatalf("FindLeaf(d) = %+v, %v", id, ok)
	}
	if _, isTabs := id.Stem.(*Tabbed); !isTabs || id.Index != 1 {
		t.Errorf("d found at %s[%d]", id.Stem.Kind(), id.Index)
	}

	if _, ok := r.Locate(&Leaf{id: "d", template: "t"}); ok {
		t.Error("Locate matched by structure")
	}
	if !r.Contains(ls["e"]) || !r.Contains(r) || r.Contains(leaf(t, "zz")) {
		t.Error("Contains is wrong")
	}

	var ids []string
	for _, l := range r.Leaves() {
		ids = append(ids, l.ID())
	}
	if !equalStrings(ids, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Leaves = %v", ids)
	}
}

func TestFindChildByGroup(t *testing.T) {
	a := leaf(t, "a", WithGroup("g1"))
	b := leaf(t, "b", WithGroup("g2"))
	inner, err := NewSplit(Vertical, []Child{leaf(t, "c"), b}, nil, WithGroup("g1"))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRoot(split(t, Horizontal, nil, inner, a))

	id, ok := r.FindChildByGroup("g1")
	if !ok || id.Child() != Child(inner) {
		t.Errorf("g1 resolved to %v", id.Child())
	}
	id, ok = r.FindChildByGroup("g2")
	if !ok || id.Child() != Child(b) {
		t.Errorf("g2 resolved to %v", id.Child())
	}
	if _, ok := r.FindChildByGroup(""); ok {
		t.Error("empty group matched")
	}
}

func TestPath(t *testing.T) {
	r, ls := sample(t)

	path, ok := r.Path(ls["c"])
	if !ok || len(path) != 4 {
		t.Fatalf("Path(c) = %v, %v", path, ok)
	}
	kinds := []Kind{KindRoot, KindSplit, KindSplit, KindTabbed}
	indices := []int{0, 1, 1, 0}
	for i, id := range path {
		if id.Stem.Kind() != kinds[i] || id.Index != indices[i] {
			t.Errorf("path[%d] = %s[%d]", i, id.Stem.Kind(), id.Index)
		}
	}
	if _, ok := r.Path(leaf(t, "zz")); ok {
		t.Error("found a stranger")
	}
}

func TestChildID(t *testing.T) {
	s := split(t, Horizontal, nil, leaf(t, "a"), leaf(t, "b"))
	tests := []struct {
		id    ChildID
		valid bool
	}{
		{ChildID{Stem: s, Index: 1}, true},
		{ChildID{Stem: s, Index: 2}, false},
		{ChildID{Stem: s, Index: -1}, false},
		{ChildID{}, false},
	}
	for _, tt := range tests {
		if got := tt.id.Valid(); got != tt.valid {
			t.Errorf("Valid(%d) = %v", tt.id.Index, got)
		}
		if !tt.valid && tt.id.Child() != nil {
			t.Errorf("Child(%d) dereferenced an invalid slot", tt.id.Index)
		}
	}
}

func TestWalkStops(t *testing.T) {
	r, _ := sample(t)
	visited := 0
	completed := Walk(r, func(ChildID) bool {
		visited++
		return visited < 3
	})
	if completed || visited != 3 {
		t.Errorf("completed = %v, visited = %d", completed, visited)
	}
}
