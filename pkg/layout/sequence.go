package layout

import (
	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/grid"
)

const (
	participantGap = 6
	messageStep    = 2 // rows per message: one for the label, one for the arrow
)

// layoutSequence places one lifeline per participant in declaration
// order and advances a monotonic row cursor per message.
func layoutSequence(s *diagram.Sequence) (*Geometry, error) {
	g := &Geometry{}

	labels := make([]string, len(s.Participants))
	laneX := make([]int, len(s.Participants))
	x := 0
	for i, p := range s.Participants {
		labels[i] = grid.Sanitize(p)
		w := len([]rune(labels[i])) + 4
		b := g.box(Box{X: x, Y: 0, W: w, H: nodeHeight, Style: grid.StyleSharp})
		g.centeredText(b.X+1, 1, w-2, labels[i])
		laneX[i] = x + w/2
		x += w + participantGap
	}

	bottom := nodeHeight + len(s.Messages)*messageStep + 1
	for _, lx := range laneX {
		g.path(Path{Points: []Point{{lx, nodeHeight}, {lx, bottom}}})
	}

	for i, m := range s.Messages {
		y := nodeHeight + (i+1)*messageStep
		fx, tx := laneX[m.From], laneX[m.To]

		arrow := grid.ArrowRight
		if tx < fx {
			arrow = grid.ArrowLeft
		}
		g.path(Path{
			Points: []Point{{fx, y}, {tx, y}},
			Dashed: m.Return,
			Arrow:  arrow,
		})
		if m.Label != "" {
			lo := fx
			if tx < lo {
				lo = tx
			}
			g.text(lo+2, y-1, grid.Sanitize(m.Label))
		}
	}

	g.finish()
	return g, nil
}
