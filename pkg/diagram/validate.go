package diagram

import (
	"github.com/dnl-fm/ascii/pkg/errors"
)

// MaxNestingDepth bounds composite state nesting. Deeper charts are
// rejected during validation rather than risking unbounded recursion in
// the layout engine.
const MaxNestingDepth = 3

// Validate checks model-level invariants before layout runs: every edge
// index must resolve to a node in the same diagram, sequence diagrams may
// not contain self-messages, and composite states may not nest beyond
// MaxNestingDepth. Validation failures are layout-stage errors.
func (d *Diagram) Validate() error {
	switch d.Kind {
	case KindFlowchart:
		return d.Flowchart.validate()
	case KindSequence:
		return d.Sequence.validate()
	case KindEntityRelationship:
		return d.ER.validate()
	case KindState:
		return d.State.validate(0)
	case KindClass:
		return d.Class.validate()
	case KindTimeline:
		if len(d.Timeline.Events) == 0 {
			return errors.NewLayout(errors.CodeEmptyDiagram, "timeline has no events")
		}
		return nil
	case KindTable:
		if len(d.Table.Columns) == 0 {
			return errors.NewLayout(errors.CodeEmptyDiagram, "table has no columns")
		}
		return nil
	}
	return errors.NewLayout(errors.CodeEmptyDiagram, "diagram has no content")
}

func checkIndex(i, n int, what string) error {
	if i < 0 || i >= n {
		return errors.NewLayout(errors.CodeUnresolvedRef, "%s references node %d outside arena of %d", what, i, n)
	}
	return nil
}

func (f *Flowchart) validate() error {
	if len(f.Nodes) == 0 {
		return errors.NewLayout(errors.CodeEmptyDiagram, "flowchart has no nodes")
	}
	for _, e := range f.Edges {
		if err := checkIndex(e.From, len(f.Nodes), "edge"); err != nil {
			return err
		}
		if err := checkIndex(e.To, len(f.Nodes), "edge"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequence) validate() error {
	if len(s.Participants) == 0 {
		return errors.NewLayout(errors.CodeEmptyDiagram, "sequence diagram has no participants")
	}
	for _, m := range s.Messages {
		if err := checkIndex(m.From, len(s.Participants), "message"); err != nil {
			return err
		}
		if err := checkIndex(m.To, len(s.Participants), "message"); err != nil {
			return err
		}
		if m.From == m.To {
			return errors.NewLayout(errors.CodeSelfMessage,
				"participant %q sends a message to itself", s.Participants[m.From])
		}
	}
	return nil
}

func (er *EntityRelationship) validate() error {
	if len(er.Entities) == 0 {
		return errors.NewLayout(errors.CodeEmptyDiagram, "ER diagram has no entities")
	}
	for _, r := range er.Relationships {
		if err := checkIndex(r.From, len(er.Entities), "relationship"); err != nil {
			return err
		}
		if err := checkIndex(r.To, len(er.Entities), "relationship"); err != nil {
			return err
		}
	}
	return nil
}

func (sc *StateChart) validate(depth int) error {
	if depth > MaxNestingDepth {
		return errors.NewLayout(errors.CodeNestingDepth,
			"composite states nested deeper than %d levels", MaxNestingDepth)
	}
	if len(sc.States) == 0 {
		return errors.NewLayout(errors.CodeEmptyDiagram, "state chart has no states")
	}
	for _, t := range sc.Transitions {
		if err := checkIndex(t.From, len(sc.States), "transition"); err != nil {
			return err
		}
		if err := checkIndex(t.To, len(sc.States), "transition"); err != nil {
			return err
		}
	}
	for _, s := range sc.States {
		if s.Kind == StateComposite {
			if s.Children == nil {
				return errors.NewLayout(errors.CodeUnresolvedRef,
					"composite state %q has no children", s.ID)
			}
			if err := s.Children.validate(depth + 1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *ClassDiagram) validate() error {
	if len(c.Classes) == 0 {
		return errors.NewLayout(errors.CodeEmptyDiagram, "class diagram has no classes")
	}
	for _, r := range c.Relations {
		if err := checkIndex(r.From, len(c.Classes), "relation"); err != nil {
			return err
		}
		if err := checkIndex(r.To, len(c.Classes), "relation"); err != nil {
			return err
		}
	}
	return nil
}
