// Package pkg provides the libraries behind panelayout, a dockable pane
// layout engine.
//
// # Overview
//
// A layout is a persistent tree: a [layout.Root] holding splits, tab stacks,
// header groups and leaf panes. Every edit returns a new tree and shares the
// untouched subtrees with the old one. The packages are:
//
//  1. [layout] - the tree model, simplification, transposition and
//     gravity/group placement
//  2. [builder] - transactional edits over a layout
//  3. [template] - JSON and TOML templates for saving and loading layouts
//  4. [store] - named layouts in memory, on disk, in Redis or in MongoDB
//  5. [render/dot] - Graphviz diagrams of a layout
//  6. [errors] - coded errors shared by all packages
//  7. [observability] - hooks for builder, store and HTTP metrics
//
// # Quick Start
//
//	import (
//	    "github.com/openopus/ng-pane-manager2-sub000/pkg/builder"
//	    "github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
//	    "github.com/openopus/ng-pane-manager2-sub000/pkg/template"
//	)
//
//	res := builder.Empty().Build(func(b *builder.Builder) error {
//	    if err := b.Add(b.Leaf("editor", "code", nil, layout.WithGravity(layout.GravityMain))); err != nil {
//	        return err
//	    }
//	    return b.Add(b.Leaf("files", "tree", nil, layout.WithGravity(layout.GravityLeft)))
//	})
//	if !res.OK() {
//	    return res.Err
//	}
//	data, _ := template.Marshal(res.Root)
//
// Placement keeps the docking skeleton
//
//	vert[header, horiz[left, vert[main, bottom], right], footer]
//
// and drops the slots that are absent, so the result above is
// horiz(left:files, main:editor).
//
// # Commands
//
// The panelayout binary in cmd/panelayout wraps these packages in a CLI
// with an HTTP server (serve) and an interactive browser (browse).
package pkg
