// Package render holds output conversions shared by the layout renderers.
//
// [ToPDF] and [ToPNG] convert an SVG document using the external
// rsvg-convert tool from librsvg. The Graphviz view of a layout tree lives
// in the [dot] subpackage:
//
//	src := dot.ToDOT(root, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [dot]: github.com/openopus/ng-pane-manager2-sub000/pkg/render/dot
package render
