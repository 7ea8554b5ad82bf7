package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds templates, tags and raw ratios to node labels.
	Detailed bool
}

// ToDOT converts a layout tree to Graphviz DOT source.
// Node ids follow the child path from the root: n, n_0, n_0_1, ...
func ToDOT(root *layout.Root, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	if root == nil {
		root = layout.NewRoot(nil)
	}
	w := &writer{buf: &buf, opts: opts}
	w.node("n", root)

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf  *bytes.Buffer
	opts Options
}

func (w *writer) node(id string, n layout.Node) {
	fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(attrs(n, w.opts.Detailed), ", "))

	stem, ok := n.(layout.Stem)
	if !ok {
		return
	}
	for i, c := range stem.Children() {
		cid := id + "_" + strconv.Itoa(i)
		w.node(cid, c)
		fmt.Fprintf(w.buf, "  %q -> %q%s;\n", id, cid, edgeAttrs(stem, i))
	}
}

func attrs(n layout.Node, detailed bool) []string {
	out := []string{fmt.Sprintf("label=%q", label(n, detailed))}
	switch n := n.(type) {
	case *layout.Root:
		out = append(out, "shape=ellipse", "fillcolor=lightgrey")
	case *layout.Leaf:
		out = append(out, "fillcolor=\"#e8f0fe\"")
	case *layout.Tabbed:
		out = append(out, "shape=folder")
	case *layout.Group:
		out = append(out, "style=\"rounded,filled,dashed\"")
	case *layout.Split:
		if n.Axis() == layout.Vertical {
			out = append(out, "shape=box3d")
		}
	}
	return out
}

func label(n layout.Node, detailed bool) string {
	var lines []string
	switch n := n.(type) {
	case *layout.Root:
		lines = append(lines, "root")
	case *layout.Leaf:
		lines = append(lines, n.ID())
		if detailed {
			lines = append(lines, "template: "+n.Template())
		}
	case *layout.Split:
		lines = append(lines, n.Axis().String())
		if detailed {
			lines = append(lines, "ratios: "+formatRatios(n.Ratios()))
		}
	case *layout.Tabbed:
		lines = append(lines, fmt.Sprintf("tabs (%d)", n.Len()))
	case *layout.Group:
		lines = append(lines, "group: "+n.Header())
	}
	if c, ok := n.(layout.Child); ok && detailed {
		if g := c.Gravity(); g != layout.GravityNone {
			lines = append(lines, "gravity: "+g.String())
		}
		if g := c.GroupName(); g != "" {
			lines = append(lines, "group: "+g)
		}
	}
	return strings.Join(lines, "\n")
}

func edgeAttrs(stem layout.Stem, i int) string {
	switch s := stem.(type) {
	case *layout.Split:
		share := s.Ratio(i) / s.RatioSum()
		return fmt.Sprintf(" [label=%q]", strconv.FormatFloat(share*100, 'f', 0, 64)+"%")
	case *layout.Tabbed:
		if s.CurrentTab() == i {
			return " [style=bold, penwidth=2]"
		}
		return " [style=dashed]"
	}
	return ""
}

func formatRatios(ratios []float64) string {
	parts := make([]string, len(ratios))
	for i, r := range ratios {
		parts[i] = strconv.FormatFloat(r, 'g', 4, 64)
	}
	return strings.Join(parts, ":")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales from
// its viewBox origin instead of Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
