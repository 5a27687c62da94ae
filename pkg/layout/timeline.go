package layout

import (
	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/grid"
)

const eventGap = 4

// layoutTimeline draws a single horizontal axis with one marker per
// event in declaration order. Entries stack beneath their marker.
func layoutTimeline(t *diagram.Timeline) (*Geometry, error) {
	g := &Geometry{}

	top := 0
	if t.Title != "" {
		top = 2
	}
	labelY := top
	axisY := top + 1

	type col struct {
		x       int
		label   string
		entries []string
	}
	cols := make([]col, len(t.Events))
	x := 2
	for i, ev := range t.Events {
		c := col{x: x, label: grid.Sanitize(ev.Label)}
		w := len([]rune(c.label))
		for _, e := range ev.Entries {
			s := grid.Sanitize(e)
			c.entries = append(c.entries, s)
			if len([]rune(s)) > w {
				w = len([]rune(s))
			}
		}
		cols[i] = c
		x += w + eventGap
	}
	axisW := x - eventGap + 2

	if t.Title != "" {
		g.centeredText(0, 0, axisW, grid.Sanitize(t.Title))
	}

	// The axis is one path; markers overlay it per event column.
	g.path(Path{Points: []Point{{0, axisY}, {axisW - 1, axisY}}})
	for _, c := range cols {
		g.text(c.x, labelY, c.label)
		g.text(c.x, axisY, "┬")
		for j, e := range c.entries {
			g.text(c.x, axisY+1+j, e)
		}
	}

	g.finish()
	return g, nil
}
