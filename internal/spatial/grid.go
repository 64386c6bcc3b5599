package spatial

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CellKey addresses one horizontal grid cell.
type CellKey struct {
	X, Z int
}

// Cell is an occupied grid cell and the bound of every obstacle vertex that
// fell into it.
type Cell struct {
	Key    CellKey
	Bounds AABB
}

// Grid partitions obstacle vertices into fixed-size XZ cells. Only cells
// that received a vertex exist, so memory grows with occupied cells rather
// than with world area. Cells keep insertion order.
type Grid struct {
	cellSize float32
	index    map[CellKey]int
	cells    []Cell
}

// NewGrid creates an empty grid with the given cell size in model-local units.
func NewGrid(cellSize float32) (*Grid, error) {
	if !(cellSize > 0) || math32.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	return &Grid{
		cellSize: cellSize,
		index:    make(map[CellKey]int),
	}, nil
}

// CellSize returns the cell edge length.
func (g *Grid) CellSize() float32 {
	return g.cellSize
}

// KeyFor returns the cell that p falls into.
func (g *Grid) KeyFor(p mgl32.Vec3) CellKey {
	return CellKey{
		X: int(math32.Floor(p[0] / g.cellSize)),
		Z: int(math32.Floor(p[2] / g.cellSize)),
	}
}

// AddVertex grows the bound of p's cell to include p, creating the cell on
// first use.
func (g *Grid) AddVertex(p mgl32.Vec3) {
	key := g.KeyFor(p)
	if i, ok := g.index[key]; ok {
		g.cells[i].Bounds = g.cells[i].Bounds.Extend(p)
		return
	}
	g.index[key] = len(g.cells)
	g.cells = append(g.cells, Cell{Key: key, Bounds: PointAABB(p)})
}

// Lookup returns the bound of the cell at key.
func (g *Grid) Lookup(key CellKey) (AABB, bool) {
	i, ok := g.index[key]
	if !ok {
		return AABB{}, false
	}
	return g.cells[i].Bounds, true
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells returns the occupied cells in insertion order. The slice is shared;
// callers must not modify it.
func (g *Grid) Cells() []Cell {
	return g.cells
}
