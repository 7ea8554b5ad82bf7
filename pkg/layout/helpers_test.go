package layout

import (
	"math"
	"testing"
)

func leaf(t *testing.T, id string, opts ...Option) *Leaf {
	t.Helper()
	l, err := NewLeaf(id, "t", nil, opts...)
	if err != nil {
		t.Fatalf("NewLeaf(%q): %v", id, err)
	}
	return l
}

func split(t *testing.T, axis Axis, ratios []float64, children ...Child) *Split {
	t.Helper()
	s, err := NewSplit(axis, children, ratios)
	if err != nil {
		t.Fatalf("NewSplit: %v", err)
	}
	return s
}

func tabbed(t *testing.T, current int, children ...Child) *Tabbed {
	t.Helper()
	tb, err := NewTabbed(children, current)
	if err != nil {
		t.Fatalf("NewTabbed: %v", err)
	}
	return tb
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearAll(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !near(got[i], want[i]) {
			return false
		}
	}
	return true
}
