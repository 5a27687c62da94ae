package layout

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
	"github.com/dnl-fm/ascii/pkg/grid"
)

const entityGap = 2

// layoutER stacks entity boxes vertically and routes relationship
// connectors through side lanes on the right, one lane per relationship,
// so connector labels never shift the column alignment of a box.
func layoutER(er *diagram.EntityRelationship) (*Geometry, error) {
	g := &Geometry{}

	type entRows struct {
		name string
		rows []string
	}
	ents := make([]entRows, len(er.Entities))
	maxW := 0
	for i, e := range er.Entities {
		ents[i].name = grid.Sanitize(e.Name)
		w := len([]rune(ents[i].name))

		typeW := 0
		for _, a := range e.Attributes {
			if tw := len([]rune(grid.Sanitize(a.Type))); tw > typeW {
				typeW = tw
			}
		}
		for _, a := range e.Attributes {
			t := grid.Sanitize(a.Type)
			row := t + strings.Repeat(" ", typeW-len([]rune(t))+1) + grid.Sanitize(a.Name)
			ents[i].rows = append(ents[i].rows, row)
			if rw := len([]rune(row)); rw > w {
				w = rw
			}
		}
		if w+4 > maxW {
			maxW = w + 4
		}
	}

	boxes := make([]Box, len(er.Entities))
	y := 0
	for i, e := range ents {
		h := 2 + 1 // borders plus header row
		if len(e.rows) > 0 {
			h += 1 + len(e.rows) // separator plus one row per attribute
		}
		b := Box{X: 0, Y: y, W: maxW, H: h, Style: grid.StyleSharp}
		if len(e.rows) > 0 {
			b.Separators = []int{y + 2}
		}
		boxes[i] = g.box(b)

		g.centeredText(1, y+1, maxW-2, e.name)
		for j, row := range e.rows {
			g.text(2, y+3+j, row)
			// Odd rows carry a marker dot in the left padding cell so
			// long attribute lists stay scannable.
			if j%2 == 1 {
				g.text(1, y+3+j, "·")
			}
		}
		y += h + entityGap
	}

	if len(er.Relationships) > maxSideLanes {
		return nil, errors.NewLayout(errors.CodeNotConverged,
			"relationship routing exceeded %d side lanes", maxSideLanes)
	}
	// Lanes start past the widest cardinality glyph pair.
	for k, r := range er.Relationships {
		laneX := maxW + 4 + k*laneGap
		from, to := boxes[r.From], boxes[r.To]
		fy := from.Y + from.H/2
		ty := to.Y + to.H/2
		g.path(Path{Points: []Point{
			{from.X + from.W, fy},
			{laneX, fy},
			{laneX, ty},
			{to.X + to.W, ty},
		}})
		// Cardinality glyphs overlay the connector next to each box.
		g.text(from.X+from.W+1, fy, grid.Sanitize(r.FromCard))
		g.text(to.X+to.W+1, ty, grid.Sanitize(r.ToCard))
		if r.Label != "" {
			g.text(laneX+2, (fy+ty)/2, grid.Sanitize(r.Label))
		}
	}

	g.finish()
	return g, nil
}
