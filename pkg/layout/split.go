package layout

import (
	"math"
	"slices"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// Split arranges its children along an axis. Each child has a ratio giving
// its relative size; ratios are parallel to children.
//
// When the ratios sum to less than 1 they are rescaled to sum to exactly 1.
// Renderers feed ratios straight into flex-grow factors, and a sum below 1
// would leave part of the container unfilled.
type Split struct {
	tags
	axis     Axis
	children []Child
	ratios   []float64
	ratioSum float64
	resize   emitter[ResizeEvent]
}

// NewSplit creates a split. A nil ratios slice gives every child a ratio of 1.
// It fails if there are no children, if the ratio count differs from the
// child count, or if any ratio is negative or not finite.
func NewSplit(axis Axis, children []Child, ratios []float64, opts ...Option) (*Split, error) {
	if !axis.valid() {
		return nil, errs.New(errs.ErrCodeConstruction, "invalid split axis %d", int(axis))
	}
	if len(children) == 0 {
		return nil, errs.Wrap(errs.ErrCodeConstruction, ErrEmptyBranch, "%s split", axis)
	}
	if err := checkChildren(children); err != nil {
		return nil, err
	}
	if ratios == nil {
		ratios = uniformRatios(len(children), 1)
	}
	if len(ratios) != len(children) {
		return nil, errs.Wrap(errs.ErrCodeConstruction, ErrRatioMismatch,
			"%d children, %d ratios", len(children), len(ratios))
	}
	if err := checkRatios(ratios); err != nil {
		return nil, err
	}
	return newSplit(axis, children, ratios, newTags(opts)), nil
}

// newSplit builds a split from already validated input. It tolerates an
// empty child list, which edits may produce before simplification prunes it.
func newSplit(axis Axis, children []Child, ratios []float64, t tags) *Split {
	s := &Split{
		tags:     t,
		axis:     axis,
		children: slices.Clone(children),
	}
	s.ratios, s.ratioSum = normalizeRatios(ratios)
	return s
}

func (*Split) Kind() Kind { return KindSplit }
func (*Split) node()      {}

func (s *Split) Axis() Axis          { return s.axis }
func (s *Split) Len() int            { return len(s.children) }
func (s *Split) ChildAt(i int) Child { return childAt(s.children, i) }
func (s *Split) Children() []Child   { return slices.Clone(s.children) }
func (s *Split) Ratios() []float64   { return slices.Clone(s.ratios) }
func (s *Split) RatioSum() float64   { return s.ratioSum }
func (s *Split) Ratio(i int) float64 { return s.ratios[i] }

// OnResize registers fn to receive ratio changes made in place. The returned
// function unsubscribes; calling it more than once is harmless.
func (s *Split) OnResize(fn func(ResizeEvent)) (unsubscribe func()) {
	return s.resize.subscribe(fn)
}

// MoveSplit moves the divider between child first and child first+1 by
// amount, growing the first child and shrinking the second (or the reverse
// for a negative amount). The amount is clamped so neither ratio goes below
// zero; the ratio sum is unchanged.
func (s *Split) MoveSplit(first int, amount float64) error {
	second := first + 1
	if first < 0 || second >= len(s.ratios) {
		return errs.Wrap(errs.ErrCodeConstruction, ErrIndexOutOfRange,
			"divider %d in split of %d", first, len(s.ratios))
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errs.Wrap(errs.ErrCodeConstruction, ErrInvalidRatio, "move amount %v", amount)
	}

	amount = min(max(amount, -s.ratios[first]), s.ratios[second])
	if amount == 0 {
		return nil
	}
	s.ratios[first] += amount
	s.ratios[second] -= amount

	s.resize.emit(ResizeEvent{Index: first, Ratio: s.ratios[first]})
	s.resize.emit(ResizeEvent{Index: second, Ratio: s.ratios[second]})
	return nil
}

// SetRatios replaces all ratios in place, applying the same validation and
// normalization as [NewSplit]. A resize event is emitted for every slot
// whose ratio changed.
func (s *Split) SetRatios(ratios []float64) error {
	if len(ratios) != len(s.children) {
		return errs.Wrap(errs.ErrCodeConstruction, ErrRatioMismatch,
			"%d children, %d ratios", len(s.children), len(ratios))
	}
	if err := checkRatios(ratios); err != nil {
		return err
	}
	next, sum := normalizeRatios(ratios)
	prev := s.ratios
	s.ratios, s.ratioSum = next, sum
	for i := range next {
		if next[i] != prev[i] {
			s.resize.emit(ResizeEvent{Index: i, Ratio: next[i]})
		}
	}
	return nil
}

// SetRatio changes the ratio of child i, leaving the others as they are.
// The ratio sum changes with it unless it would drop below 1, in which case
// the ratios are rescaled as in [NewSplit].
func (s *Split) SetRatio(i int, ratio float64) error {
	if i < 0 || i >= len(s.ratios) {
		return errs.Wrap(errs.ErrCodeConstruction, ErrIndexOutOfRange,
			"ratio %d in split of %d", i, len(s.ratios))
	}
	next := slices.Clone(s.ratios)
	next[i] = ratio
	return s.SetRatios(next)
}

func checkRatios(ratios []float64) error {
	for i, r := range ratios {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return errs.Wrap(errs.ErrCodeConstruction, ErrInvalidRatio, "ratio %d is %v", i, r)
		}
	}
	return nil
}

// normalizeRatios copies ratios and rescales them to sum to exactly 1 when
// they sum to less. An all-zero list becomes uniform.
func normalizeRatios(ratios []float64) ([]float64, float64) {
	out := slices.Clone(ratios)
	if len(out) == 0 {
		return out, 0
	}
	sum := 0.0
	for _, r := range out {
		sum += r
	}
	if sum >= 1 {
		return out, sum
	}
	if sum == 0 {
		return uniformRatios(len(out), 1/float64(len(out))), 1
	}
	for i := range out {
		out[i] /= sum
	}
	return out, 1
}

func uniformRatios(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func childAt(children []Child, i int) Child {
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}
