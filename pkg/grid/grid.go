// Package grid implements the character grid the renderer stamps into,
// along with the box-drawing glyph table and the glyph sanitizer.
//
// A Grid is the sole mutable structure in the pipeline. It is created by
// the renderer for the duration of one call, serialized, and discarded.
// Every cell holds exactly one single-width rune, so a rectangular grid
// serializes to lines of identical visible width.
package grid

import (
	"strings"

	"github.com/dnl-fm/ascii/pkg/errors"
)

// Grid is a fixed-size 2-D array of single-width display cells.
// Coordinates are zero-based with the origin at the top left.
type Grid struct {
	cells  [][]rune
	width  int
	height int
}

// New creates a grid of the given size filled with spaces.
func New(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &Grid{cells: cells, width: width, height: height}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Get returns the rune at (x, y), or space when out of bounds.
func (g *Grid) Get(x, y int) rune {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return ' '
	}
	return g.cells[y][x]
}

// Set places a rune at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, r rune) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y][x] = r
}

// SetMerge places a box-drawing rune, merging with any line rune already
// in the cell so crossing edges form proper junctions.
func (g *Grid) SetMerge(x, y int, r rune) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y][x] = mergeRunes(g.cells[y][x], r)
}

// WriteString stamps s starting at (x, y). The caller must sanitize s
// first; WriteString assumes every rune occupies one cell.
func (g *Grid) WriteString(x, y int, s string) {
	for i, r := range []rune(s) {
		g.Set(x+i, y, r)
	}
}

// HLine draws a horizontal line from x1 to x2 inclusive at row y.
func (g *Grid) HLine(x1, x2, y int, dashed bool) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if dashed {
			g.Set(x, y, dashH)
		} else {
			g.SetMerge(x, y, '─')
		}
	}
}

// VLine draws a vertical line from y1 to y2 inclusive at column x.
func (g *Grid) VLine(x, y1, y2 int, dashed bool) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if dashed {
			g.Set(x, y, dashV)
		} else {
			g.SetMerge(x, y, '│')
		}
	}
}

// Box stamps a rectangular border in the given style. Interior cells are
// left untouched. Degenerate boxes (w or h < 2) are ignored.
func (g *Grid) Box(x, y, w, h int, style Style) {
	if w < 2 || h < 2 {
		return
	}
	gs, ok := glyphSets[style]
	if !ok {
		gs = glyphSets[StyleSharp]
	}
	for cx := x + 1; cx < x+w-1; cx++ {
		g.SetMerge(cx, y, gs.h)
		g.SetMerge(cx, y+h-1, gs.h)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		g.SetMerge(x, cy, gs.v)
		g.SetMerge(x+w-1, cy, gs.v)
	}
	// Corners are set last so diagonal styles are not merged away.
	g.Set(x, y, gs.tl)
	g.Set(x+w-1, y, gs.tr)
	g.Set(x, y+h-1, gs.bl)
	g.Set(x+w-1, y+h-1, gs.br)
}

// Separator stamps a ├───┤ divider row inside a box of width w whose left
// border is at column x.
func (g *Grid) Separator(x, y, w int) {
	if w < 2 {
		return
	}
	g.Set(x, y, '├')
	for cx := x + 1; cx < x+w-1; cx++ {
		g.Set(cx, y, '─')
	}
	g.Set(x+w-1, y, '┤')
}

// Framed returns a new grid wrapping this one in one more border layer
// with a single cell of padding on each side.
func (g *Grid) Framed() *Grid {
	f := New(g.width+4, g.height+2)
	f.Box(0, 0, g.width+4, g.height+2, StyleSharp)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			f.Set(x+2, y+1, g.cells[y][x])
		}
	}
	return f
}

// String serializes the grid, joining rows with single newlines. Before
// joining it re-verifies that every row has the declared cell count; a
// violation means layout produced a non-rectangular grid and surfaces as
// a render-stage error rather than silently misaligned output.
func (g *Grid) String() (string, error) {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y, row := range g.cells {
		if len(row) != g.width {
			return "", errors.NewRender(errors.CodeGridNotRectangular,
				"row %d has %d cells, want %d", y, len(row), g.width)
		}
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String(), nil
}
