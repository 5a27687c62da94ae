package parser

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/errors"
)

// parseTable reads a columns: header, an optional --- separator, and
// pipe-delimited body rows. Short rows are padded with empty cells; long
// rows are an error.
func parseTable(lines []srcLine) (*diagram.Diagram, error) {
	t := &diagram.Table{}

	for _, line := range lines {
		if header, ok := strings.CutPrefix(line.text, "columns:"); ok {
			if t.Columns != nil {
				return nil, errors.NewParse(errors.CodeDuplicateID, line.text, line.num,
					"table has a second columns: header")
			}
			t.Columns = splitCells(header)
			if len(t.Columns) == 0 {
				return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
					"columns: header names no columns")
			}
			continue
		}
		if strings.Trim(line.text, "-") == "" {
			continue
		}
		if t.Columns == nil {
			return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
				"table rows before the columns: header")
		}
		row := splitCells(line.text)
		if len(row) > len(t.Columns) {
			return nil, errors.NewParse(errors.CodeMalformedNode, line.text, line.num,
				"row has %d cells but the table has %d columns", len(row), len(t.Columns))
		}
		for len(row) < len(t.Columns) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	if t.Columns == nil {
		return nil, errors.NewParse(errors.CodeEmptyInput, "", 0, "table has no columns: header")
	}

	return &diagram.Diagram{Kind: diagram.KindTable, Table: t}, nil
}

func splitCells(s string) []string {
	parts := strings.Split(s, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	// Drop a single trailing empty cell from a line ending in |.
	if n := len(cells); n > 1 && cells[n-1] == "" {
		cells = cells[:n-1]
	}
	return cells
}
