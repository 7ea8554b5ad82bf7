// Package dot renders layout trees as Graphviz diagrams.
//
// Every node of the tree becomes a box; edges run from a branch to its
// children in order. Split edges are labelled with the child's share of
// the split, and the current tab of a tabbed node is drawn bold.
//
//	src := dot.ToDOT(root, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. SVG rendering runs in-process via [github.com/goccy/go-graphviz].
package dot
