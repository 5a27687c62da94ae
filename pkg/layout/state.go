package layout

import (
	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/grid"
)

// embed appends every element of child shifted by (dx, dy).
func (g *Geometry) embed(child *Geometry, dx, dy int) {
	for _, b := range child.Boxes {
		b.X += dx
		b.Y += dy
		if b.Separators != nil {
			seps := make([]int, len(b.Separators))
			for i, s := range b.Separators {
				seps[i] = s + dy
			}
			b.Separators = seps
		}
		g.Boxes = append(g.Boxes, b)
	}
	for _, t := range child.Texts {
		t.X += dx
		t.Y += dy
		g.Texts = append(g.Texts, t)
	}
	for _, p := range child.Paths {
		pts := make([]Point, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
		}
		p.Points = pts
		g.Paths = append(g.Paths, p)
	}
}

func layoutState(sc *diagram.StateChart) (*Geometry, error) {
	return layoutStateChart(sc)
}

// layoutStateChart is the recursive core: composite states lay out their
// children with the same algorithm and embed the result inside a framed
// box with a title row.
func layoutStateChart(sc *diagram.StateChart) (*Geometry, error) {
	labels := make([]string, len(sc.States))
	children := make([]*Geometry, len(sc.States))
	l := &rankedLayout{
		widths:  make([]int, len(sc.States)),
		heights: make([]int, len(sc.States)),
	}

	for i, s := range sc.States {
		labels[i] = grid.Sanitize(s.Label)
		switch s.Kind {
		case diagram.StateStart, diagram.StateEnd:
			// Markers are a single filled cell with a cell of slack on
			// each side so corridor arrows line up with their center.
			l.widths[i], l.heights[i] = 3, 1
		case diagram.StateComposite:
			child, err := layoutStateChart(s.Children)
			if err != nil {
				return nil, err
			}
			children[i] = child
			w := child.Width + 4
			if tw := len([]rune(labels[i])) + 4; tw > w {
				w = tw
			}
			l.widths[i] = w
			l.heights[i] = child.Height + 4
		default:
			l.widths[i] = len([]rune(labels[i])) + 4
			l.heights[i] = nodeHeight
		}
	}
	for _, t := range sc.Transitions {
		l.edges = append(l.edges, graphEdge{from: t.From, to: t.To, label: t.Label})
	}

	l.assignRanks()
	l.place()

	g := &Geometry{}
	for i, s := range sc.States {
		b := l.boxes[i]
		switch s.Kind {
		case diagram.StateStart, diagram.StateEnd:
			g.text(b.X+1, b.Y, string(grid.StateMarker))
		case diagram.StateComposite:
			b.Style = grid.StyleRounded
			b.Separators = []int{b.Y + 2}
			g.box(b)
			g.centeredText(b.X+1, b.Y+1, b.W-2, labels[i])
			g.embed(children[i], b.X+2, b.Y+3)
		default:
			b.Style = grid.StyleRounded
			g.box(b)
			g.centeredText(b.X+1, b.Y+1, b.W-2, labels[i])
		}
	}
	if err := l.route(g); err != nil {
		return nil, err
	}
	g.finish()
	return g, nil
}
