package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

// flowchart arrow operators, longest first so -.-> wins over -->.
var flowArrows = []struct {
	op     string
	dashed bool
}{
	{"-.->", true},
	{"-->", false},
	{"---", false},
}

// flowchartBuilder accumulates nodes and edges during a parse. Node order
// is first textual appearance, which the layout engine uses as its stable
// tie-break inside a rank.
type flowchartBuilder struct {
	nodes    []diagram.Node
	index    map[string]int
	declared map[string]bool // ids declared with an explicit bracket label
	edges    []diagram.Edge
}

// node returns the arena index for a node reference, creating the node on
// first mention. A second explicit declaration of the same id is an error.
func (b *flowchartBuilder) node(ref nodeRef, line srcLine) (int, error) {
	i, ok := b.index[ref.id]
	if !ok {
		i = len(b.nodes)
		b.nodes = append(b.nodes, diagram.Node{ID: ref.id, Label: ref.label, Shape: ref.shape})
		b.index[ref.id] = i
		b.declared[ref.id] = ref.explicit
		return i, nil
	}
	if ref.explicit {
		if b.declared[ref.id] {
			return 0, errors.NewParse(errors.CodeDuplicateID, line.text, line.num,
				"node %q declared twice", ref.id)
		}
		b.nodes[i].Label = ref.label
		b.nodes[i].Shape = ref.shape
		b.declared[ref.id] = true
	}
	return i, nil
}

// nodeRef is a parsed node reference such as A, A[Label] or B{Decision}.
type nodeRef struct {
	id       string
	label    string
	shape    diagram.Shape
	explicit bool
}

// shapeDelims maps an opening delimiter to its closer and shape tag.
var shapeDelims = []struct {
	open, close string
	shape       diagram.Shape
}{
	{"([", "])", diagram.ShapeStadium},
	{"[", "]", diagram.ShapeRectangle},
	{"{", "}", diagram.ShapeDiamond},
	{"(", ")", diagram.ShapeRounded},
}

// parseNodeRef parses a single node reference. Bare identifiers get their
// id as label and a rectangle shape.
func parseNodeRef(s string, line srcLine) (nodeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nodeRef{}, errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
			"arrow is missing an operand")
	}
	for _, d := range shapeDelims {
		i := strings.Index(s, d.open)
		if i <= 0 {
			continue
		}
		id := strings.TrimSpace(s[:i])
		rest := s[i+len(d.open):]
		if !strings.HasSuffix(rest, d.close) {
			return nodeRef{}, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
				"node %q has an unbalanced %q delimiter", id, d.open)
		}
		label := strings.TrimSpace(strings.TrimSuffix(rest, d.close))
		if label == "" {
			label = id
		}
		return nodeRef{id: id, label: label, shape: d.shape, explicit: true}, nil
	}
	if strings.ContainsAny(s, "[]{}()") {
		return nodeRef{}, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
			"malformed node reference %q", s)
	}
	if len(strings.Fields(s)) != 1 {
		return nodeRef{}, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
			"malformed node reference %q", s)
	}
	return nodeRef{id: s, label: s, shape: diagram.ShapeRectangle}, nil
}

func parseFlowchart(lines []srcLine) (*diagram.Diagram, error) {
	b := &flowchartBuilder{
		index:    make(map[string]int),
		declared: make(map[string]bool),
	}

	for _, line := range lines {
		if err := b.parseLine(line); err != nil {
			return nil, err
		}
	}
	if len(b.nodes) == 0 {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "flowchart has no nodes")
	}

	return &diagram.Diagram{
		Kind:      diagram.KindFlowchart,
		Flowchart: &diagram.Flowchart{Nodes: b.nodes, Edges: b.edges},
	}, nil
}

// parseLine handles one statement: either a chain of arrow expressions
// (A --> B --> C) or a standalone node declaration.
func (b *flowchartBuilder) parseLine(line srcLine) error {
	segments, dashes := splitArrows(line.text)
	if len(segments) == 1 {
		ref, err := parseNodeRef(segments[0], line)
		if err != nil {
			return err
		}
		_, err = b.node(ref, line)
		return err
	}

	prev := -1
	for i, seg := range segments {
		label := ""
		if i > 0 {
			// Branch labels appear after the arrow: -->|Yes| target.
			seg, label = stripEdgeLabel(seg)
		}
		ref, err := parseNodeRef(seg, line)
		if err != nil {
			return err
		}
		idx, err := b.node(ref, line)
		if err != nil {
			return err
		}
		if i > 0 {
			b.edges = append(b.edges, diagram.Edge{
				From:   prev,
				To:     idx,
				Label:  label,
				Dashed: dashes[i-1],
			})
		}
		prev = idx
	}
	return nil
}

// splitArrows splits a statement on arrow operators, returning the node
// segments and the dash style of each arrow between them.
func splitArrows(s string) (segments []string, dashed []bool) {
	rest := s
	for {
		best := -1
		var bestOp string
		var bestDash bool
		for _, a := range flowArrows {
			if i := strings.Index(rest, a.op); i >= 0 && (best < 0 || i < best) {
				best, bestOp, bestDash = i, a.op, a.dashed
			}
		}
		if best < 0 {
			segments = append(segments, strings.TrimSpace(rest))
			return segments, dashed
		}
		segments = append(segments, strings.TrimSpace(rest[:best]))
		dashed = append(dashed, bestDash)
		rest = rest[best+len(bestOp):]
	}
}

// stripEdgeLabel extracts a |label| prefix from an arrow target segment.
func stripEdgeLabel(seg string) (rest, label string) {
	seg = strings.TrimSpace(seg)
	if !strings.HasPrefix(seg, "|") {
		return seg, ""
	}
	end := strings.Index(seg[1:], "|")
	if end < 0 {
		return seg, ""
	}
	label = strings.TrimSpace(seg[1 : end+1])
	return strings.TrimSpace(seg[end+2:]), label
}
