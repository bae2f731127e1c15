// Package overlay renders a resolved layout as a debug SVG.
//
// The overlay is a diagnostic view, not map artwork: committed boxes are
// drawn color-coded by placement status, campaign routes as polylines,
// and optionally the scene's anchor points. Cartographers eyeball it to
// see why a label landed where it did.
package overlay

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/placemat/pkg/scene"
)

// Status colors.
const (
	colorPlaced = "#2e7d32"
	colorForced = "#ef6c00"
	colorRoute  = "#1565c0"
	colorAnchor = "#424242"
)

type Option func(*renderer)

type renderer struct {
	scn        *scene.Scene
	showLabels bool
}

// WithScene draws the scene's anchor points under the boxes.
func WithScene(s *scene.Scene) Option { return func(r *renderer) { r.scn = s } }

// WithLabels draws each placement's text at its accepted center.
func WithLabels() Option { return func(r *renderer) { r.showLabels = true } }

// RenderSVG renders the layout overlay.
func RenderSVG(l scene.Layout, opts ...Option) []byte {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	ext := l.Extent
	flipY := func(y float64) float64 { return ext.MaxY - y + ext.MinY }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		ext.MinX, ext.MinY, ext.Width(), ext.Height(), ext.Width(), ext.Height())
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white"/>`+"\n",
		ext.MinX, ext.MinY, ext.Width(), ext.Height())

	if r.scn != nil {
		renderAnchors(&buf, r.scn, flipY)
	}

	for _, route := range l.Routes {
		renderRoute(&buf, route, flipY)
	}

	for _, p := range l.Placements {
		if p.Status == scene.StatusSuppressed {
			continue
		}
		renderBox(&buf, p, flipY)
	}

	if r.showLabels {
		for _, p := range l.Placements {
			if p.Status == scene.StatusSuppressed || p.Text == "" {
				continue
			}
			renderText(&buf, p, flipY)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderAnchors(buf *bytes.Buffer, s *scene.Scene, flipY func(float64) float64) {
	for _, c := range s.Cities {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"/>`+"\n",
			c.X, flipY(c.Y), colorAnchor)
	}
	for _, ev := range s.Events {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="2" fill="%s" opacity="0.6"/>`+"\n",
			ev.X, flipY(ev.Y), colorAnchor)
	}
}

func renderRoute(buf *bytes.Buffer, route scene.Route, flipY func(float64) float64) {
	if len(route.Points) < 2 {
		return
	}
	var pts bytes.Buffer
	for i, p := range route.Points {
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "%.1f,%.1f", p.X, flipY(p.Y))
	}
	dash := ""
	if route.Style == "dashed" {
		dash = ` stroke-dasharray="6,3"`
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		pts.String(), colorRoute, dash)
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n",
		route.Tip.X, flipY(route.Tip.Y), colorRoute)
}

func renderBox(buf *bytes.Buffer, p scene.Placement, flipY func(float64) float64) {
	color := colorPlaced
	if p.Status == scene.StatusForced {
		color = colorForced
	}
	b := p.Box
	// Box corners flip with the axis; the top edge in map space becomes
	// the smaller SVG y.
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.15" stroke="%s" stroke-width="1"/>`+"\n",
		b.MinX, flipY(b.MaxY), b.MaxX-b.MinX, b.MaxY-b.MinY, color, color)
}

func renderText(buf *bytes.Buffer, p scene.Placement, flipY func(float64) float64) {
	transform := ""
	if p.Rotation != 0 {
		// SVG rotates clockwise in screen space, which matches a
		// counterclockwise map-space rotation after the y flip.
		transform = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`, -p.Rotation, p.X, flipY(p.Y))
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="10" text-anchor="middle" dominant-baseline="middle"%s>%s</text>`+"\n",
		p.X, flipY(p.Y), transform, escapeText(p.Text))
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
