package layout

import (
	"strings"
	"testing"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
	"github.com/dnl-fm/ascii/pkg/parser"
)

func mustParse(t *testing.T, src string) *diagram.Diagram {
	t.Helper()
	d, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return d
}

func TestFlowchartRanks(t *testing.T) {
	d := mustParse(t, "flowchart TD\nA --> B\nA --> C\nB --> D\nC --> D")
	l := &rankedLayout{
		widths:  []int{5, 5, 5, 5},
		heights: []int{3, 3, 3, 3},
	}
	for _, e := range d.Flowchart.Edges {
		l.edges = append(l.edges, graphEdge{from: e.From, to: e.To})
	}
	l.assignRanks()

	want := []int{0, 1, 1, 2}
	for i, r := range want {
		if l.rank[i] != r {
			t.Errorf("rank[%d] = %d, want %d", i, l.rank[i], r)
		}
	}
	// B before C within rank 1: first appearance order.
	if len(l.ranks[1]) != 2 || l.ranks[1][0] != 1 || l.ranks[1][1] != 2 {
		t.Errorf("rank 1 order = %v, want [1 2]", l.ranks[1])
	}
}

func TestFlowchartLongestPathRank(t *testing.T) {
	// D is reachable directly from A and through B and C; the longest
	// path wins, so D sits at rank 3.
	d := mustParse(t, "flowchart TD\nA --> D\nA --> B\nB --> C\nC --> D")
	l := &rankedLayout{widths: make([]int, 4), heights: make([]int, 4)}
	for _, e := range d.Flowchart.Edges {
		l.edges = append(l.edges, graphEdge{from: e.From, to: e.To})
	}
	l.assignRanks()
	if got := l.rank[1]; got != 3 {
		t.Fatalf("rank of D = %d, want 3", got)
	}
}

func TestFlowchartCycleRanks(t *testing.T) {
	d := mustParse(t, "flowchart TD\nA --> B\nB --> C\nC --> A")
	geo, err := Layout(d)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	// Three node boxes stacked vertically plus one loop-back lane path.
	if len(geo.Boxes) != 3 {
		t.Fatalf("got %d boxes, want 3", len(geo.Boxes))
	}
	if geo.Boxes[0].Y >= geo.Boxes[1].Y || geo.Boxes[1].Y >= geo.Boxes[2].Y {
		t.Fatalf("boxes not stacked by rank: %v", geo.Boxes)
	}
	if len(geo.Paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(geo.Paths))
	}
}

func TestFlowchartRoutingBound(t *testing.T) {
	// Build one node more back edges than there are side lanes.
	var b strings.Builder
	b.WriteString("flowchart TD\nA --> B\n")
	for i := 0; i <= maxSideLanes; i++ {
		b.WriteString("B --> A\n")
	}
	_, err := Layout(mustParse(t, b.String()))
	if !errors.Is(err, errors.CodeNotConverged) {
		t.Fatalf("error = %v, want %s", err, errors.CodeNotConverged)
	}
	if !errors.IsLayout(err) {
		t.Fatalf("error %v is not a layout error", err)
	}
}

func TestSequenceMonotonicRows(t *testing.T) {
	d := mustParse(t, "sequenceDiagram\nA ->> B: one\nB -->> A: two\nA ->> B: three")
	geo, err := Layout(d)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	// Two lifelines plus three message paths, rows strictly increasing.
	msgs := geo.Paths[2:]
	if len(msgs) != 3 {
		t.Fatalf("got %d message paths, want 3", len(msgs))
	}
	prev := -1
	for i, p := range msgs {
		y := p.Points[0].Y
		if y <= prev {
			t.Fatalf("message %d at row %d, not after %d", i, y, prev)
		}
		prev = y
	}
	if !msgs[1].Dashed {
		t.Fatal("return message is not dashed")
	}
}

func TestSequenceSelfMessageRejected(t *testing.T) {
	d := &diagram.Diagram{
		Kind: diagram.KindSequence,
		Sequence: &diagram.Sequence{
			Participants: []string{"A"},
			Messages:     []diagram.Message{{From: 0, To: 0, Label: "loop"}},
		},
	}
	if _, err := Layout(d); !errors.Is(err, errors.CodeSelfMessage) {
		t.Fatalf("error = %v, want %s", err, errors.CodeSelfMessage)
	}
}

func TestERUniformEntityWidth(t *testing.T) {
	d := mustParse(t, "erDiagram\nCUSTOMER {\nstring name\n}\nORDER {\nint id\n}\nCUSTOMER ||--o{ ORDER : places")
	geo, err := Layout(d)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(geo.Boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(geo.Boxes))
	}
	if geo.Boxes[0].W != geo.Boxes[1].W {
		t.Fatalf("entity widths differ: %d vs %d", geo.Boxes[0].W, geo.Boxes[1].W)
	}
}

func TestStateCompositeEmbeds(t *testing.T) {
	d := mustParse(t, "stateDiagram-v2\n[*] --> Active\nstate Active {\n[*] --> Working\n}")
	geo, err := Layout(d)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	// The composite frame must contain its child's box.
	var frame *Box
	for i := range geo.Boxes {
		if geo.Boxes[i].Separators != nil {
			frame = &geo.Boxes[i]
		}
	}
	if frame == nil {
		t.Fatal("no composite frame box")
	}
	inner := false
	for _, b := range geo.Boxes {
		if b.X > frame.X && b.Y > frame.Y &&
			b.X+b.W < frame.X+frame.W && b.Y+b.H <= frame.Y+frame.H {
			inner = true
		}
	}
	if !inner {
		t.Fatal("no box embedded inside the composite frame")
	}
}

func TestStateNestingDepthRejected(t *testing.T) {
	src := `stateDiagram-v2
state A {
state B {
state C {
state D {
X --> Y
}
}
}
}`
	_, err := Layout(mustParse(t, src))
	if !errors.Is(err, errors.CodeNestingDepth) {
		t.Fatalf("error = %v, want %s", err, errors.CodeNestingDepth)
	}
}

func TestClassThreeSections(t *testing.T) {
	d := mustParse(t, "classDiagram\nclass A {\n+int x\n+f() int\n}")
	geo, err := Layout(d)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	b := geo.Boxes[0]
	if len(b.Separators) != 2 {
		t.Fatalf("got %d separators, want 2", len(b.Separators))
	}
	if b.H != 7 {
		t.Fatalf("box height = %d, want 7", b.H)
	}
}

func TestTimelineOrderPreserved(t *testing.T) {
	d := mustParse(t, "timeline\nfirst : a\nsecond : b\nthird : c")
	geo, err := Layout(d)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	var xs []int
	for _, tx := range geo.Texts {
		switch tx.S {
		case "first", "second", "third":
			xs = append(xs, tx.X)
		}
	}
	if len(xs) != 3 || !(xs[0] < xs[1] && xs[1] < xs[2]) {
		t.Fatalf("event columns not in declaration order: %v", xs)
	}
}

func TestTableColumnWidths(t *testing.T) {
	d := mustParse(t, "table\ncolumns: Feature | Mermaid | ASCII\n---\nRich SVG graphics | Yes | No")
	geo, err := Layout(d)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	// Widest first column cell is "Rich SVG graphics" (17) plus one pad
	// cell each side; borders add the rest.
	top := geo.Texts[0].S
	firstRule := strings.Split(top, "┬")[0]
	if w := len([]rune(firstRule)) - 1; w != 19 {
		t.Fatalf("first column width = %d, want 19", w)
	}
	for _, tx := range geo.Texts {
		if len([]rune(tx.S)) != geo.Width {
			t.Fatalf("table row %q narrower than grid width %d", tx.S, geo.Width)
		}
	}
}
