package layout

import (
	"errors"
	"math"
	"testing"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

func TestNewLeaf(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		template string
		wantErr  bool
	}{
		{"Valid", "editor", "code", false},
		{"EmptyID", "", "code", true},
		{"BlankID", "   ", "code", true},
		{"ControlID", "a\nb", "code", true},
		{"EmptyTemplate", "editor", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLeaf(tt.id, tt.template, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errs.Is(err, errs.ErrCodeConstruction) {
					t.Errorf("code = %s, want %s", errs.GetCode(err), errs.ErrCodeConstruction)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLeaf: %v", err)
			}
			if l.ID() != tt.id || l.Template() != tt.template {
				t.Errorf("leaf = %s/%s", l.ID(), l.Template())
			}
		})
	}
}

func TestLeafTags(t *testing.T) {
	l, err := NewLeaf("a", "t", map[string]any{"k": 1}, WithGravity(GravityLeft), WithGroup("tools"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Gravity() != GravityLeft || l.GroupName() != "tools" {
		t.Errorf("tags = %s/%s", l.Gravity(), l.GroupName())
	}
	if l.Extra().(map[string]any)["k"] != 1 {
		t.Errorf("extra = %v", l.Extra())
	}

	r := Retag(l, GravityNone, "")
	if r == Child(l) {
		t.Error("Retag returned the same node")
	}
	if r.Gravity() != GravityNone || r.GroupName() != "" {
		t.Errorf("retagged = %s/%s", r.Gravity(), r.GroupName())
	}
	if l.Gravity() != GravityLeft {
		t.Error("Retag modified the original")
	}
}

func TestNewSplit(t *testing.T) {
	a := &Leaf{id: "a", template: "t"}
	b := &Leaf{id: "b", template: "t"}

	tests := []struct {
		name       string
		axis       Axis
		children   []Child
		ratios     []float64
		wantRatios []float64
		wantSum    float64
		wantErr    error
	}{
		{"DefaultRatios", Horizontal, []Child{a, b}, nil, []float64{1, 1}, 2, nil},
		{"KeepsLargeRatios", Vertical, []Child{a, b}, []float64{3, 1}, []float64{3, 1}, 4, nil},
		{"SumExactlyOne", Horizontal, []Child{a, b}, []float64{0.5, 0.5}, []float64{0.5, 0.5}, 1, nil},
		{"RescalesSmallSum", Horizontal, []Child{a, b}, []float64{0.1, 0.3}, []float64{0.25, 0.75}, 1, nil},
		{"AllZero", Horizontal, []Child{a, b}, []float64{0, 0}, []float64{0.5, 0.5}, 1, nil},
		{"ZeroAndOne", Horizontal, []Child{a, b}, []float64{0, 1}, []float64{0, 1}, 1, nil},
		{"Mismatch", Horizontal, []Child{a, b}, []float64{1}, nil, 0, ErrRatioMismatch},
		{"Negative", Horizontal, []Child{a, b}, []float64{1, -1}, nil, 0, ErrInvalidRatio},
		{"NaN", Horizontal, []Child{a, b}, []float64{1, math.NaN()}, nil, 0, ErrInvalidRatio},
		{"Inf", Horizontal, []Child{a, b}, []float64{math.Inf(1), 1}, nil, 0, ErrInvalidRatio},
		{"Empty", Horizontal, nil, nil, nil, 0, ErrEmptyBranch},
		{"NilChild", Horizontal, []Child{a, nil}, nil, nil, 0, ErrNilChild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSplit(tt.axis, tt.children, tt.ratios)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if !errs.Is(err, errs.ErrCodeConstruction) {
					t.Errorf("code = %s", errs.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSplit: %v", err)
			}
			if !nearAll(s.Ratios(), tt.wantRatios) {
				t.Errorf("ratios = %v, want %v", s.Ratios(), tt.wantRatios)
			}
			if s.RatioSum() != tt.wantSum {
				t.Errorf("sum = %v, want %v", s.RatioSum(), tt.wantSum)
			}
		})
	}
}

func TestNewSplitInvalidAxis(t *testing.T) {
	a := &Leaf{id: "a", template: "t"}
	if _, err := NewSplit(Axis(7), []Child{a}, nil); err == nil {
		t.Fatal("expected error for invalid axis")
	}
}

func TestNewSplitCopiesInput(t *testing.T) {
	a := &Leaf{id: "a", template: "t"}
	b := &Leaf{id: "b", template: "t"}
	kids := []Child{a, b}
	ratios := []float64{2, 1}
	s := split(t, Horizontal, ratios, kids...)

	kids[0] = b
	ratios[0] = 9
	if s.ChildAt(0) != Child(a) || s.Ratio(0) != 2 {
		t.Error("split shares its input slices")
	}
	got := s.Ratios()
	got[1] = 5
	if s.Ratio(1) != 1 {
		t.Error("Ratios exposes internal state")
	}
}

func TestNewTabbed(t *testing.T) {
	a := &Leaf{id: "a", template: "t"}
	b := &Leaf{id: "b", template: "t"}

	tests := []struct {
		name     string
		children []Child
		current  int
		wantErr  error
	}{
		{"First", []Child{a, b}, 0, nil},
		{"Last", []Child{a, b}, 1, nil},
		{"PastEnd", []Child{a, b}, 2, ErrTabOutOfRange},
		{"Negative", []Child{a, b}, -1, ErrTabOutOfRange},
		{"Empty", nil, 0, ErrEmptyBranch},
		{"NilChild", []Child{nil}, 0, ErrNilChild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, err := NewTabbed(tt.children, tt.current)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTabbed: %v", err)
			}
			if tb.CurrentTab() != tt.current {
				t.Errorf("current = %d, want %d", tb.CurrentTab(), tt.current)
			}
			if tb.Current() != tt.children[tt.current] {
				t.Error("Current returned the wrong child")
			}
		})
	}
}

func TestNewGroup(t *testing.T) {
	s := split(t, Horizontal, nil, leaf(t, "a"), leaf(t, "b"))

	g, err := NewGroup(s, "hdr", WithGroup("g"))
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}
	if inner, ok := g.Split(); !ok || inner != s {
		t.Error("Split did not return the wrapped split")
	}
	if g.Len() != 1 || g.ChildAt(0) != Child(s) || g.ChildAt(1) != nil {
		t.Error("group slots are wrong")
	}

	if _, err := NewGroup(nil, "hdr"); !errors.Is(err, ErrNilChild) {
		t.Errorf("nil split: err = %v", err)
	}
	if _, err := NewGroup(s, " "); err == nil {
		t.Error("blank header accepted")
	}
}

func TestRoot(t *testing.T) {
	empty := NewRoot(nil)
	if !empty.IsEmpty() || empty.Len() != 0 || empty.Children() != nil {
		t.Error("empty root has content")
	}

	var typedNil *Leaf
	if !NewRoot(typedNil).IsEmpty() {
		t.Error("typed nil child not treated as empty")
	}

	a := leaf(t, "a")
	r := NewRoot(a)
	if r.Child() != Child(a) || r.ChildAt(0) != Child(a) || r.ChildAt(1) != nil {
		t.Error("root slot is wrong")
	}
}

func TestParseGravity(t *testing.T) {
	for _, g := range Gravities() {
		got, err := ParseGravity(g.String())
		if err != nil || got != g {
			t.Errorf("ParseGravity(%q) = %v, %v", g.String(), got, err)
		}
	}
	if g, err := ParseGravity(""); err != nil || g != GravityNone {
		t.Errorf("empty gravity = %v, %v", g, err)
	}
	if _, err := ParseGravity("center"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("unknown gravity: err = %v", err)
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{Horizontal, Vertical} {
		got, err := ParseAxis(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAxis(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAxis("tab"); err == nil {
		t.Error("expected error for tab")
	}
}
