// Package layout provides the pane-layout tree: an immutable, structurally
// normalized tree describing how rectangular panes are split, tabbed, and
// grouped.
//
// # Overview
//
// A layout is a [Root] holding zero or one child. Children are one of four
// variants:
//
//   - [Leaf]: terminal content, keyed by a stable id and a template name
//   - [Split]: children arranged along an [Axis] with proportional ratios
//   - [Tabbed]: children shown one at a time, selected by a current tab index
//   - [Group]: a split decorated with its own header template
//
// The variants form a closed union. Every operation in this package matches
// them exhaustively with a type switch instead of dispatching through
// methods, so the invariant checks for each variant live in one place.
//
// # Immutability
//
// Nodes are never edited in place. Structural edits return new nodes that
// share every untouched subtree with the original by reference, so the cost
// of an edit is proportional to the depth of the tree, not its size.
//
// The two exceptions are split ratios ([Split.MoveSplit], [Split.SetRatios])
// and the current tab index ([Tabbed.SetCurrentTab]). They change in place so
// that interactive resizing and tab switching do not rebuild the tree on
// every pointer event. They never change node identity.
//
// # Transposition
//
// The tree has no parent pointers. Locating a node is a search from the
// root that returns a [ChildID] (a stem and a slot index), and rewriting a
// node is a transposition: [TransposeDeep] finds a node by identity anywhere
// in the tree and rebuilds only the path from that node to the root.
//
//	next, changed, err := root.TransposeDeep(oldLeaf, newLeaf)
//
// A false changed value means the target was not found (or was replaced by
// itself); callers use it to tell "nothing to do" apart from "did something".
//
// # Simplification
//
// Edits can leave a tree denormalized: a branch with one child, a branch with
// no children, or a split nested directly inside a split of the same axis.
// [SimplifyDeep] restores canonical form in a single bottom-up pass, and
// reports no change for a tree that is already canonical.
//
// # Placement
//
// [Root.Place] inserts a child by group tag or by [Gravity], using a fixed
// docking scaffold (header, left, main, bottom, right, footer). The resulting
// shape depends only on which slots are present, never on insertion order.
//
// # Events
//
// Rendering collaborators subscribe to in-place changes with
// [Split.OnResize] and [Tabbed.OnTabChange]. Delivery is synchronous,
// at most once per mutation, with no replay.
//
// # Concurrency
//
// Tree edits are synchronous and complete before returning. A reader holding
// a root sees either the old tree or the new one, never a partially built
// node. Concurrent edits of the same layout must be serialized by the caller;
// the package provides no merge of divergent edits.
package layout
