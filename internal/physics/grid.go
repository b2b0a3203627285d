package physics

import "math"

// grid is a cell-based broadphase. Cell size is at least the largest
// collision distance so a 3x3 neighbourhood of cells covers every possible
// partner. Rebuilt every step; accessed only from the game loop.
type grid struct {
	size  float64
	cells map[cellKey][]int // cellKey -> indices into the step's body slice
}

type cellKey struct {
	cx, cy int32
}

func newGrid() *grid {
	return &grid{cells: make(map[cellKey][]int, 64)}
}

func (g *grid) toCell(v float64) int32 {
	return int32(math.Floor(v / g.size))
}

// reset empties the grid and sets a new cell size, keeping allocated cells.
func (g *grid) reset(size float64) {
	g.size = size
	for k, c := range g.cells {
		if len(c) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = c[:0]
	}
}

func (g *grid) add(i int, x, y float64) {
	k := cellKey{cx: g.toCell(x), cy: g.toCell(y)}
	g.cells[k] = append(g.cells[k], i)
}

// nearby calls fn with every index in the 3x3 neighbourhood around (x, y).
// Caller does fine-grained distance filtering.
func (g *grid) nearby(x, y float64, fn func(int)) {
	cx, cy := g.toCell(x), g.toCell(y)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for _, i := range g.cells[cellKey{cx: cx + dx, cy: cy + dy}] {
				fn(i)
			}
		}
	}
}
