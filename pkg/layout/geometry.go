// Package layout computes fixed-width geometry from a diagram model.
//
// Dispatch is by diagram kind. Every kind-specific algorithm produces the
// same output type, a [Geometry] holding boxes, text runs and orthogonal
// edge paths in absolute grid coordinates. The renderer stamps a Geometry
// without knowing which kind produced it.
//
// All text placed into a Geometry has already been through the glyph
// sanitizer, so its rune count equals its visible width. Layout functions
// measure nothing before sanitizing.
package layout

import (
	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
	"github.com/dnl-fm/ascii/pkg/grid"
)

// Point is one vertex of an orthogonal edge path.
type Point struct {
	X, Y int
}

// Box is a bordered rectangle. Separators lists absolute rows at which a
// full-width divider splits the box interior.
type Box struct {
	X, Y, W, H int
	Style      grid.Style
	Separators []int
}

// Text is a sanitized string stamped at an absolute position.
type Text struct {
	X, Y int
	S    string
}

// Path is an orthogonal polyline. Consecutive points share a row or a
// column. Arrow, when non-zero, is stamped at the final point.
type Path struct {
	Points []Point
	Dashed bool
	Arrow  rune
}

// Geometry is the layout result for one diagram: absolute positions for
// every box, text run and edge path, plus the overall grid size.
type Geometry struct {
	Width  int
	Height int
	Boxes  []Box
	Texts  []Text
	Paths  []Path
}

// Layout validates the model and computes geometry for its kind.
func Layout(d *diagram.Diagram) (*Geometry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	switch d.Kind {
	case diagram.KindFlowchart:
		return layoutFlowchart(d.Flowchart)
	case diagram.KindSequence:
		return layoutSequence(d.Sequence)
	case diagram.KindEntityRelationship:
		return layoutER(d.ER)
	case diagram.KindState:
		return layoutState(d.State)
	case diagram.KindClass:
		return layoutClass(d.Class)
	case diagram.KindTimeline:
		return layoutTimeline(d.Timeline)
	case diagram.KindTable:
		return layoutTable(d.Table)
	}
	return nil, errors.NewLayout(errors.CodeInternal, "no layout for kind %v", d.Kind)
}

// finish computes the bounding size of everything placed so far and
// records it on the geometry. Every layout calls it exactly once.
func (g *Geometry) finish() {
	w, h := 1, 1
	grow := func(x, y int) {
		if x+1 > w {
			w = x + 1
		}
		if y+1 > h {
			h = y + 1
		}
	}
	for _, b := range g.Boxes {
		grow(b.X+b.W-1, b.Y+b.H-1)
	}
	for _, t := range g.Texts {
		grow(t.X+len([]rune(t.S))-1, t.Y)
	}
	for _, p := range g.Paths {
		for _, pt := range p.Points {
			grow(pt.X, pt.Y)
		}
	}
	g.Width, g.Height = w, h
}

// box appends a box and returns it for position arithmetic.
func (g *Geometry) box(b Box) Box {
	g.Boxes = append(g.Boxes, b)
	return b
}

// text appends a pre-sanitized text run.
func (g *Geometry) text(x, y int, s string) {
	if s == "" {
		return
	}
	g.Texts = append(g.Texts, Text{X: x, Y: y, S: s})
}

// path appends an edge path.
func (g *Geometry) path(p Path) {
	g.Paths = append(g.Paths, p)
}

// centeredText stamps s centered within [x, x+w).
func (g *Geometry) centeredText(x, y, w int, s string) {
	g.text(x+(w-len([]rune(s)))/2, y, s)
}
