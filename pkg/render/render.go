// Package render stamps layout geometry into a character grid and
// serializes it. It is kind-agnostic: every diagram variant arrives as
// the same boxes, paths and text runs.
package render

import (
	"github.com/dnl-fm/ascii/pkg/grid"
	"github.com/dnl-fm/ascii/pkg/layout"
)

// Draw stamps the geometry into a fresh grid. Stamp order is fixed:
// boxes first, then edge paths merging into borders where they meet,
// then text last so labels always win the cell.
func Draw(geo *layout.Geometry) *grid.Grid {
	g := grid.New(geo.Width, geo.Height)

	for _, b := range geo.Boxes {
		g.Box(b.X, b.Y, b.W, b.H, b.Style)
		for _, row := range b.Separators {
			g.Separator(b.X, row, b.W)
		}
	}
	for _, p := range geo.Paths {
		drawPath(g, p)
	}
	for _, t := range geo.Texts {
		g.WriteString(t.X, t.Y, t.S)
	}
	return g
}

// Text serializes the geometry, optionally wrapped in an outer frame.
func Text(geo *layout.Geometry, framed bool) (string, error) {
	g := Draw(geo)
	if framed {
		g = g.Framed()
	}
	return g.String()
}

// drawPath connects consecutive points with straight segments. A pair of
// points differing in both axes is drawn as an L, horizontal leg first.
// The arrowhead lands on the final point after the lines, replacing
// whatever line glyph is there.
func drawPath(g *grid.Grid, p layout.Path) {
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		switch {
		case a.Y == b.Y:
			g.HLine(a.X, b.X, a.Y, p.Dashed)
		case a.X == b.X:
			g.VLine(a.X, a.Y, b.Y, p.Dashed)
		default:
			g.HLine(a.X, b.X, a.Y, p.Dashed)
			g.VLine(b.X, a.Y, b.Y, p.Dashed)
		}
	}
	if p.Arrow != 0 && len(p.Points) > 0 {
		last := p.Points[len(p.Points)-1]
		g.Set(last.X, last.Y, p.Arrow)
	}
}
