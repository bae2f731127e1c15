// Package conflict renders the blocking relations of a resolved layout
// as a graph: an edge points from an element to the element whose box
// rejected at least one of its candidates. Forced and suppressed nodes
// stand out, so crowded neighborhoods are visible at a glance.
package conflict

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/placemat/pkg/scene"
)

// Options configures conflict graph rendering.
type Options struct {
	// All includes elements without blocking relations as isolated
	// nodes. When false, only contested elements appear.
	All bool
}

// ToDOT converts a layout's blocking relations to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or
// [RenderPNG].
func ToDOT(l scene.Layout, opts Options) string {
	contested := make(map[string]bool)
	for _, p := range l.Placements {
		if len(p.BlockedBy) > 0 {
			contested[p.ID] = true
			for _, b := range p.BlockedBy {
				contested[b] = true
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph conflicts {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, p := range l.Placements {
		if !opts.All && !contested[p.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(nodeAttrs(p), ", "))
	}

	buf.WriteString("\n")
	for _, p := range l.Placements {
		for _, blocker := range p.BlockedBy {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.ID, blocker)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(p scene.Placement) []string {
	label := p.ID
	if p.Text != "" && p.Text != p.ID {
		label = fmt.Sprintf("%s\n%s", p.Text, p.ID)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch p.Status {
	case scene.StatusForced:
		attrs = append(attrs, "fillcolor=orange")
	case scene.StatusSuppressed:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	data, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
