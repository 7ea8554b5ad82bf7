// Package builder sequences layout edits against a working root.
//
// A [Builder] holds the current [layout.Root] and exposes edit verbs. Every
// verb produces a new, simplified, validated root or returns an error and
// leaves the current root untouched:
//
//	b := builder.Empty()
//	err := b.Add(b.Leaf("editor", "code", nil, layout.WithGravity(layout.GravityMain)))
//
// # Transactions
//
// [Builder.Build] runs a sequence of verbs on a scratch copy and commits
// them together. Errors returned by the callback, and panics raised inside
// it, become a failed [Result]; the builder then keeps its previous root:
//
//	res := b.Build(func(tx *builder.Builder) error {
//	    if err := tx.Add(left); err != nil {
//	        return err
//	    }
//	    return tx.Add(right)
//	})
//	if !res.OK() {
//	    log.Warn("edit rejected", "err", res.Err)
//	}
//
// # Node Constructors
//
// [Builder.Leaf], [Builder.Split], [Builder.Tab], and [Builder.Group] wrap
// the layout constructors. A failed construction is remembered and returned
// by the next verb, so constructor calls can be nested inside verb calls.
//
// # In-place Scalars
//
// [Builder.Resize] and [Builder.SelectTab] replace the affected node, so
// they take part in transactions. Live drag interactions that need resize
// or tab events should call [layout.Split.MoveSplit] and
// [layout.Tabbed.SetCurrentTab] on the node directly.
package builder
