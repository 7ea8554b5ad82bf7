package layout

import "errors"

var (
	// ErrRatioMismatch is returned when a split's ratio count differs from
	// its child count.
	ErrRatioMismatch = errors.New("ratio count does not match child count")

	// ErrInvalidRatio is returned for ratios that are negative, NaN, or infinite.
	ErrInvalidRatio = errors.New("ratio must be finite and non-negative")

	// ErrTabOutOfRange is returned when a current tab index is outside
	// [0, max(1, len(children))).
	ErrTabOutOfRange = errors.New("current tab out of range")

	// ErrIndexOutOfRange is returned for child slot indices outside a stem.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrEmptyBranch is returned when a constructor receives no children.
	ErrEmptyBranch = errors.New("branch requires at least one child")

	// ErrNilChild is returned when a nil child is supplied where a node is required.
	ErrNilChild = errors.New("child must not be nil")

	// ErrRootAsChild is returned when an edit would place a root layout
	// below another node.
	ErrRootAsChild = errors.New("root layout cannot be a child")

	// ErrNotFound is returned when an edit requires a node that is not in the tree.
	ErrNotFound = errors.New("node not found in tree")

	// ErrUnplaceable is returned by [Root.Place] when neither a group nor a
	// gravity anchor resolves.
	ErrUnplaceable = errors.New("unable to place child")

	// ErrDuplicateLeafID is returned when two leaves in one tree share an id.
	ErrDuplicateLeafID = errors.New("duplicate leaf id")
)
