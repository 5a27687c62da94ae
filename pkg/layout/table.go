package layout

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/diagram"
	"github.com/dnl-fm/ascii/pkg/grid"
)

// layoutTable builds every output row as a complete text run: borders,
// column rules and cells in one string per row. Column width is the max
// visible width over the header and all body cells, plus one pad cell on
// each side. Headers center, body cells left-align; the policy is fixed.
func layoutTable(t *diagram.Table) (*Geometry, error) {
	g := &Geometry{}

	cols := make([]string, len(t.Columns))
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = grid.Sanitize(c)
		widths[i] = len([]rune(cols[i]))
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = grid.Sanitize(cell)
			if w := len([]rune(rows[i][j])); w > widths[j] {
				widths[j] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	rule := func(left, mid, right rune) string {
		var b strings.Builder
		b.WriteRune(left)
		for i, w := range widths {
			if i > 0 {
				b.WriteRune(mid)
			}
			b.WriteString(strings.Repeat("─", w))
		}
		b.WriteRune(right)
		return b.String()
	}
	line := func(cells []string, center bool) string {
		var b strings.Builder
		b.WriteRune('│')
		for i, w := range widths {
			if i > 0 {
				b.WriteRune('│')
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := w - 2 - len([]rune(cell))
			if center {
				left := pad / 2
				b.WriteString(" " + strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left) + " ")
			} else {
				b.WriteString(" " + cell + strings.Repeat(" ", pad) + " ")
			}
		}
		b.WriteRune('│')
		return b.String()
	}

	y := 0
	put := func(s string) {
		g.text(0, y, s)
		y++
	}
	put(rule('┌', '┬', '┐'))
	put(line(cols, true))
	put(rule('├', '┼', '┤'))
	for _, row := range rows {
		put(line(row, false))
	}
	put(rule('└', '┴', '┘'))

	g.finish()
	return g, nil
}
