package layout

import (
	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
	"github.com/dnl-fm/ascii/pkg/grid"
)

const (
	nodeHeight = 3
	rankGap    = 3 // rows between rank bands, used as the edge corridor
	siblingGap = 4 // columns between boxes sharing a rank
	laneGap    = 2 // columns between adjacent side lanes

	// maxSideLanes bounds the routing work for edges that leave the rank
	// corridor. A diagram needing more lanes than this fails with a
	// layout error instead of growing without limit.
	maxSideLanes = 16
)

// graphEdge is the kind-neutral edge consumed by the ranked placer, so
// flowcharts and state charts share one layout algorithm.
type graphEdge struct {
	from, to int
	label    string
	dashed   bool
}

// rankedLayout is the shared vertical layered layout: rank assignment,
// per-rank placement and edge routing over boxes of caller-chosen sizes.
type rankedLayout struct {
	widths  []int
	heights []int
	edges   []graphEdge

	rank   []int
	ranks  [][]int
	boxes  []Box // position per node, styles filled in by the caller
	rowY   []int
	sideX  int // first column available for side lanes
	lanes  int
}

// assignRanks computes longest-path ranks with Kahn's algorithm. Edges
// that a depth-first search classifies as cyclic are ignored during
// ranking; they are routed later as loop-back edges.
func (l *rankedLayout) assignRanks() {
	n := len(l.widths)
	adj := make([][]int, n)
	for _, e := range l.edges {
		adj[e.from] = append(adj[e.from], e.to)
	}

	const (
		white = iota
		gray
		black
	)
	color := make([]int, n)
	cyclic := make(map[[2]int]bool)

	var dfs func(node int)
	dfs = func(node int) {
		color[node] = gray
		for _, child := range adj[node] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				cyclic[[2]int{node, child}] = true
			}
		}
		color[node] = black
	}
	for i := 0; i < n; i++ {
		if color[i] == white {
			dfs(i)
		}
	}

	inDegree := make([]int, n)
	for _, e := range l.edges {
		if !cyclic[[2]int{e.from, e.to}] {
			inDegree[e.to]++
		}
	}

	l.rank = make([]int, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, e := range l.edges {
			if e.from != curr || cyclic[[2]int{e.from, e.to}] {
				continue
			}
			if r := l.rank[curr] + 1; r > l.rank[e.to] {
				l.rank[e.to] = r
			}
			inDegree[e.to]--
			if inDegree[e.to] == 0 {
				queue = append(queue, e.to)
			}
		}
	}

	maxRank := 0
	for _, r := range l.rank {
		if r > maxRank {
			maxRank = r
		}
	}
	l.ranks = make([][]int, maxRank+1)
	// Node index order is first textual appearance, which doubles as the
	// stable tie-break within a rank.
	for i := 0; i < n; i++ {
		l.ranks[l.rank[i]] = append(l.ranks[l.rank[i]], i)
	}
}

// place assigns a box to every node: ranks become horizontal bands from
// top to bottom, nodes within a band are centered as a group.
func (l *rankedLayout) place() {
	maxRankW := 0
	rankW := make([]int, len(l.ranks))
	for r, nodes := range l.ranks {
		w := 0
		for i, node := range nodes {
			if i > 0 {
				w += siblingGap
			}
			w += l.widths[node]
		}
		rankW[r] = w
		if w > maxRankW {
			maxRankW = w
		}
	}

	l.boxes = make([]Box, len(l.widths))
	l.rowY = make([]int, len(l.ranks))
	y := 0
	for r, nodes := range l.ranks {
		l.rowY[r] = y
		x := (maxRankW - rankW[r]) / 2
		bandH := 0
		for _, node := range nodes {
			l.boxes[node] = Box{X: x, Y: y, W: l.widths[node], H: l.heights[node]}
			x += l.widths[node] + siblingGap
			if l.heights[node] > bandH {
				bandH = l.heights[node]
			}
		}
		y += bandH + rankGap
	}
	l.sideX = maxRankW + laneGap
}

// lane allocates the next side lane column, failing once the bound is
// exceeded so pathological diagrams terminate instead of spreading
// rightward forever.
func (l *rankedLayout) lane() (int, error) {
	if l.lanes >= maxSideLanes {
		return 0, errors.NewLayout(errors.CodeNotConverged,
			"edge routing exceeded %d side lanes", maxSideLanes)
	}
	x := l.sideX + l.lanes*laneGap
	l.lanes++
	return x, nil
}

// route emits one path per edge. Edges dropping exactly one rank run in
// the corridor between the bands. Everything else, loop-backs included,
// leaves through the right side of its source into a dedicated lane, so
// cyclic edges never collide with the forward corridor.
func (l *rankedLayout) route(g *Geometry) error {
	for _, e := range l.edges {
		src, tgt := l.boxes[e.from], l.boxes[e.to]
		if l.rank[e.to] == l.rank[e.from]+1 {
			l.routeForward(g, e, src, tgt)
			continue
		}
		if err := l.routeSide(g, e, src, tgt); err != nil {
			return err
		}
	}
	return nil
}

func (l *rankedLayout) routeForward(g *Geometry, e graphEdge, src, tgt Box) {
	sx := src.X + src.W/2
	tx := tgt.X + tgt.W/2
	exitY := src.Y + src.H
	jogY := l.rowY[l.rank[e.to]] - rankGap + 1
	entryY := tgt.Y - 1

	pts := []Point{{sx, exitY}, {sx, jogY}, {tx, jogY}, {tx, entryY}}
	if sx == tx {
		pts = []Point{{sx, exitY}, {sx, entryY}}
	}
	g.path(Path{Points: pts, Dashed: e.dashed, Arrow: grid.ArrowDown})
	if e.label != "" {
		// Branch labels sit at the split point, beside the exit segment.
		g.text(sx+2, jogY, grid.Sanitize(e.label))
	}
}

func (l *rankedLayout) routeSide(g *Geometry, e graphEdge, src, tgt Box) error {
	laneX, err := l.lane()
	if err != nil {
		return err
	}
	sy := src.Y + src.H/2
	ty := tgt.Y + tgt.H/2
	g.path(Path{
		Points: []Point{
			{src.X + src.W, sy},
			{laneX, sy},
			{laneX, ty},
			{tgt.X + tgt.W, ty},
		},
		Dashed: e.dashed,
		Arrow:  grid.ArrowLeft,
	})
	if e.label != "" {
		g.text(src.X+src.W+1, sy-1, grid.Sanitize(e.label))
	}
	return nil
}

// shapeStyle maps a node shape to its border glyph set. Stadium shares
// the rounded corner arcs; at three rows tall the two are drawn alike.
func shapeStyle(s diagram.Shape) grid.Style {
	switch s {
	case diagram.ShapeDiamond:
		return grid.StyleDiamond
	case diagram.ShapeRounded, diagram.ShapeStadium:
		return grid.StyleRounded
	}
	return grid.StyleSharp
}

func layoutFlowchart(f *diagram.Flowchart) (*Geometry, error) {
	labels := make([]string, len(f.Nodes))
	l := &rankedLayout{
		widths:  make([]int, len(f.Nodes)),
		heights: make([]int, len(f.Nodes)),
	}
	for i, n := range f.Nodes {
		labels[i] = grid.Sanitize(n.Label)
		l.widths[i] = len([]rune(labels[i])) + 4
		if n.Shape == diagram.ShapeDiamond {
			// Diamonds get extra slack so the slanted corners read.
			l.widths[i] += 2
		}
		l.heights[i] = nodeHeight
	}
	for _, e := range f.Edges {
		l.edges = append(l.edges, graphEdge{from: e.From, to: e.To, label: e.Label, dashed: e.Dashed})
	}

	l.assignRanks()
	l.place()

	g := &Geometry{}
	for i, n := range f.Nodes {
		b := l.boxes[i]
		b.Style = shapeStyle(n.Shape)
		g.box(b)
		g.centeredText(b.X+1, b.Y+1, b.W-2, labels[i])
	}
	if err := l.route(g); err != nil {
		return nil, err
	}
	g.finish()
	return g, nil
}
