package layout

import (
	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
	"github.com/dnl-fm/ascii/pkg/grid"
)

const classGap = 6

// memberText renders a member as its visibility glyph plus the member
// text, sanitized as a unit.
func memberText(m diagram.Member) string {
	return grid.Sanitize(string(m.Visibility) + " " + m.Text)
}

// layoutClass places class boxes side by side in declaration order and
// routes relations through rows beneath the boxes, one row per relation.
func layoutClass(c *diagram.ClassDiagram) (*Geometry, error) {
	g := &Geometry{}

	boxes := make([]Box, len(c.Classes))
	maxH := 0
	x := 0
	for i, cl := range c.Classes {
		name := grid.Sanitize(cl.Name)
		w := len([]rune(name))
		var fields, methods []string
		for _, m := range cl.Fields {
			s := memberText(m)
			fields = append(fields, s)
			if len([]rune(s)) > w {
				w = len([]rune(s))
			}
		}
		for _, m := range cl.Methods {
			s := memberText(m)
			methods = append(methods, s)
			if len([]rune(s)) > w {
				w = len([]rune(s))
			}
		}
		w += 4

		// Name, fields and methods sections, always three, divided by
		// two separators even when a section is empty.
		h := 2 + 1 + 2 + len(fields) + len(methods)
		b := Box{
			X: x, Y: 0, W: w, H: h,
			Style:      grid.StyleSharp,
			Separators: []int{2, 3 + len(fields)},
		}
		boxes[i] = g.box(b)

		g.centeredText(x+1, 1, w-2, name)
		for j, s := range fields {
			g.text(x+2, 3+j, s)
		}
		for j, s := range methods {
			g.text(x+2, 4+len(fields)+j, s)
		}

		if h > maxH {
			maxH = h
		}
		x += w + classGap
	}

	if len(c.Relations) > maxSideLanes {
		return nil, errors.NewLayout(errors.CodeNotConverged,
			"relation routing exceeded %d lanes", maxSideLanes)
	}
	for k, r := range c.Relations {
		from, to := boxes[r.From], boxes[r.To]
		fx := from.X + from.W/2
		tx := to.X + to.W/2
		rowY := maxH + 1 + k*2
		g.path(Path{
			Points: []Point{
				{fx, from.Y + from.H},
				{fx, rowY},
				{tx, rowY},
				{tx, to.Y + to.H},
			},
			Arrow: grid.ArrowUp,
		})
		if r.Label != "" {
			lo := fx
			if tx < lo {
				lo = tx
			}
			g.text(lo+2, rowY-1, grid.Sanitize(r.Label))
		}
	}

	g.finish()
	return g, nil
}
