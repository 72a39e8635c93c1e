package engine

// ShapeTemplate is a named, normalized set of cell offsets.
type ShapeTemplate struct {
	Name  string
	Cells []Pos
}

// Size returns the number of cells in the template.
func (t ShapeTemplate) Size() int {
	return len(t.Cells)
}

// Bounds returns the bounding width and height of the template.
func (t ShapeTemplate) Bounds() (w, h int) {
	return offsetBounds(t.Cells)
}

// Fits reports whether the template respects the given maximums.
func (t ShapeTemplate) Fits(maxW, maxH, maxDice int) bool {
	w, h := t.Bounds()
	return w <= maxW && h <= maxH && t.Size() <= maxDice
}

// rect builds a w×h block template.
func rect(name string, w, h int) ShapeTemplate {
	cells := make([]Pos, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, P(x, y))
		}
	}
	return ShapeTemplate{Name: name, Cells: cells}
}

// ShapeCatalog lists every template the generator may pick from, from a
// single cell up to a 4×4 block. Offsets use the board convention: Y up.
var ShapeCatalog = []ShapeTemplate{
	{Name: "single", Cells: []Pos{{0, 0}}},
	rect("domino", 2, 1),
	rect("domino-v", 1, 2),
	rect("line3", 3, 1),
	rect("line3-v", 1, 3),
	{Name: "corner", Cells: []Pos{{0, 0}, {1, 0}, {0, 1}}},
	rect("square", 2, 2),
	rect("line4", 4, 1),
	rect("line4-v", 1, 4),
	{Name: "t", Cells: []Pos{{0, 1}, {1, 1}, {2, 1}, {1, 0}}},
	{Name: "l", Cells: []Pos{{0, 0}, {0, 1}, {0, 2}, {1, 0}}},
	{Name: "j", Cells: []Pos{{1, 0}, {1, 1}, {1, 2}, {0, 0}}},
	{Name: "s", Cells: []Pos{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},
	{Name: "z", Cells: []Pos{{0, 1}, {1, 1}, {1, 0}, {2, 0}}},
	{Name: "plus", Cells: []Pos{{1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}}},
	{Name: "u", Cells: []Pos{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {2, 1}}},
	rect("line5", 5, 1),
	rect("line5-v", 1, 5),
	{Name: "big-t", Cells: []Pos{{0, 2}, {1, 2}, {2, 2}, {1, 1}, {1, 0}}},
	{Name: "big-l", Cells: []Pos{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}}},
	rect("rect2x3", 2, 3),
	rect("rect3x2", 3, 2),
	{Name: "h", Cells: []Pos{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {2, 0}, {2, 1}, {2, 2}}},
	rect("rect2x4", 2, 4),
	rect("rect4x2", 4, 2),
	rect("block3", 3, 3),
	{Name: "big-plus", Cells: []Pos{
		{2, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}, {3, 2}, {4, 2}, {2, 3}, {2, 4},
	}},
	{Name: "ring", Cells: []Pos{
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
		{0, 1}, {3, 1},
		{0, 2}, {3, 2},
		{0, 3}, {1, 3}, {2, 3}, {3, 3},
	}},
	rect("rect3x4", 3, 4),
	rect("rect4x3", 4, 3),
	rect("block4", 4, 4),
}

// FittingShapes returns the catalog entries within the given maximums.
func FittingShapes(maxW, maxH, maxDice int) []ShapeTemplate {
	out := make([]ShapeTemplate, 0, len(ShapeCatalog))
	for _, t := range ShapeCatalog {
		if t.Fits(maxW, maxH, maxDice) {
			out = append(out, t)
		}
	}
	return out
}

// IsConnected reports whether every offset is reachable from the first
// through 4-adjacency. An empty set is not connected.
func IsConnected(offsets []Pos) bool {
	if len(offsets) == 0 {
		return false
	}
	cells := make(map[Pos]bool, len(offsets))
	for _, o := range offsets {
		cells[o] = true
	}

	seen := map[Pos]bool{offsets[0]: true}
	stack := []Pos{offsets[0]}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbors4 {
			n := cur.AddPos(d)
			if cells[n] && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(seen) == len(cells)
}
