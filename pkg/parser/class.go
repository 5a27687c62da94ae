package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

// class relation operators, longest first. All of them connect two
// classes; the head styles collapse to a single line in fixed-width
// output, so only the endpoints and the label survive into the model.
var classRelOps = []string{"<|--", "--|>", "*--", "o--", "-->", "--"}

type classBuilder struct {
	classes   []diagram.Class
	index     map[string]int
	relations []diagram.ClassRelation
}

func (b *classBuilder) class(name string) int {
	if i, ok := b.index[name]; ok {
		return i
	}
	i := len(b.classes)
	b.classes = append(b.classes, diagram.Class{Name: name})
	b.index[name] = i
	return i
}

func parseClass(lines []srcLine) (*diagram.Diagram, error) {
	b := &classBuilder{index: make(map[string]int)}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if rest, ok := strings.CutPrefix(line.text, "class "); ok {
			name, isBlock := strings.CutSuffix(strings.TrimSpace(rest), "{")
			name = strings.TrimSpace(name)
			if name == "" || len(strings.Fields(name)) != 1 {
				return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
					"malformed class declaration")
			}
			idx := b.class(name)
			if !isBlock {
				continue
			}
			consumed, err := b.parseMemberBlock(idx, lines[i+1:], line)
			if err != nil {
				return nil, err
			}
			i += consumed
			continue
		}
		if err := b.parseRelationOrMember(line); err != nil {
			return nil, err
		}
	}
	if len(b.classes) == 0 {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "class diagram has no classes")
	}

	return &diagram.Diagram{
		Kind:  diagram.KindClass,
		Class: &diagram.ClassDiagram{Classes: b.classes, Relations: b.relations},
	}, nil
}

// parseMemberBlock consumes visibility-prefixed member lines until the
// closing brace and returns how many lines it consumed.
func (b *classBuilder) parseMemberBlock(idx int, body []srcLine, open srcLine) (int, error) {
	for i, line := range body {
		if line.text == "}" {
			return i + 1, nil
		}
		m, err := parseMember(line.text, line)
		if err != nil {
			return 0, err
		}
		b.addMember(idx, m)
	}
	return 0, errors.NewParse(errors.CodeMalformedNode, open.text, open.num,
		"class %q block is never closed", b.classes[idx].Name)
}

// parseRelationOrMember handles the two non-block statement forms:
// Animal <|-- Dog : label, and the dotted member form Animal : +int age.
func (b *classBuilder) parseRelationOrMember(line srcLine) error {
	text := line.text
	label := ""
	for _, op := range classRelOps {
		left, right, ok := splitOnce(text, op)
		if !ok {
			continue
		}
		if r, l, ok := splitOnce(right, ":"); ok {
			right, label = r, l
		}
		if left == "" || right == "" ||
			len(strings.Fields(left)) != 1 || len(strings.Fields(right)) != 1 {
			return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
				"relation is missing a class")
		}
		b.relations = append(b.relations, diagram.ClassRelation{
			From:  b.class(left),
			To:    b.class(right),
			Label: label,
		})
		return nil
	}

	name, member, ok := splitOnce(text, ":")
	if ok && len(strings.Fields(name)) == 1 {
		m, err := parseMember(member, line)
		if err != nil {
			return err
		}
		b.addMember(b.class(name), m)
		return nil
	}
	return errors.NewParse(errors.CodeUnmatchedArrow, line.text, line.num,
		"expected a class relation or member declaration")
}

// parseMember splits a member line into its visibility glyph and text.
// A missing glyph defaults to public.
func parseMember(s string, line srcLine) (diagram.Member, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return diagram.Member{}, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
			"empty class member")
	}
	vis := '+'
	if strings.ContainsRune("+-#~", rune(s[0])) {
		vis = rune(s[0])
		s = strings.TrimSpace(s[1:])
		if s == "" {
			return diagram.Member{}, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
				"class member has a visibility glyph but no text")
		}
	}
	return diagram.Member{Visibility: vis, Text: s}, nil
}

// addMember files a member under fields or methods: anything with a
// parameter list is a method.
func (b *classBuilder) addMember(idx int, m diagram.Member) {
	if strings.Contains(m.Text, "(") {
		b.classes[idx].Methods = append(b.classes[idx].Methods, m)
		return
	}
	b.classes[idx].Fields = append(b.classes[idx].Fields, m)
}
