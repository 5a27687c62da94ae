package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

type erBuilder struct {
	entities      []diagram.Entity
	index         map[string]int
	relationships []diagram.Relationship
}

func (b *erBuilder) entity(name string) int {
	if i, ok := b.index[name]; ok {
		return i
	}
	i := len(b.entities)
	b.entities = append(b.entities, diagram.Entity{Name: name})
	b.index[name] = i
	return i
}

func parseER(lines []srcLine) (*diagram.Diagram, error) {
	b := &erBuilder{index: make(map[string]int)}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if name, ok := strings.CutSuffix(line.text, "{"); ok {
			consumed, err := b.parseEntityBlock(strings.TrimSpace(name), lines[i+1:], line)
			if err != nil {
				return nil, err
			}
			i += consumed
			continue
		}
		if err := b.parseRelationship(line); err != nil {
			return nil, err
		}
	}
	if len(b.entities) == 0 {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "ER diagram has no entities")
	}

	return &diagram.Diagram{
		Kind: diagram.KindEntityRelationship,
		ER:   &diagram.EntityRelationship{Entities: b.entities, Relationships: b.relationships},
	}, nil
}

// parseEntityBlock consumes typed attribute lines until the closing brace
// and returns how many lines it consumed.
func (b *erBuilder) parseEntityBlock(name string, body []srcLine, open srcLine) (int, error) {
	if name == "" || len(strings.Fields(name)) != 1 {
		return 0, errors.NewParse(errors.CodeMalformedNode, open.text, open.num,
			"malformed entity declaration")
	}
	idx := b.entity(name)

	for i, line := range body {
		if line.text == "}" {
			return i + 1, nil
		}
		fields := strings.Fields(line.text)
		if len(fields) < 2 {
			return 0, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
				"attribute needs a type and a name")
		}
		b.entities[idx].Attributes = append(b.entities[idx].Attributes, diagram.Attribute{
			Type: fields[0],
			Name: strings.Join(fields[1:], " "),
		})
	}
	return 0, errors.NewParse(errors.CodeMalformedNode, open.text, open.num,
		"entity %q block is never closed", name)
}

// parseRelationship handles lines like: CUSTOMER ||--o{ ORDER : places
func (b *erBuilder) parseRelationship(line srcLine) error {
	text := line.text
	label := ""
	if t, l, ok := splitOnce(text, ":"); ok {
		text, label = t, l
	}

	fields := strings.Fields(text)
	if len(fields) != 3 || !strings.Contains(fields[1], "--") {
		return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
			"expected: ENTITY <cardinality>--<cardinality> ENTITY : label")
	}

	fromCard, toCard, _ := splitOnce(fields[1], "--")
	if fromCard == "" || toCard == "" {
		return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
			"relationship is missing a cardinality marker")
	}

	b.relationships = append(b.relationships, diagram.Relationship{
		From:     b.entity(fields[0]),
		To:       b.entity(fields[2]),
		FromCard: fromCard,
		ToCard:   toCard,
		Label:    label,
	})
	return nil
}
