// Package celllist bins the atoms of a periodic box into a regular grid of
// cells stored as structure-of-arrays, the layout the pair kernels expect.
package celllist

import (
	"fmt"
	"math"

	"github.com/san-kum/ljcell/internal/dynamo"
)

// Cell holds the atoms of one grid cell as parallel slices.
type Cell struct {
	X, Y, Z    []float64
	FX, FY, FZ []float64
	// IDs maps each slot back to the caller's atom index.
	IDs []int
}

func (c *Cell) NumAtoms() int { return len(c.X) }

func (c *Cell) reset() {
	c.X, c.Y, c.Z = c.X[:0], c.Y[:0], c.Z[:0]
	c.FX, c.FY, c.FZ = c.FX[:0], c.FY[:0], c.FZ[:0]
	c.IDs = c.IDs[:0]
}

func (c *Cell) add(id int, p dynamo.Vec3) {
	c.X = append(c.X, p[0])
	c.Y = append(c.Y, p[1])
	c.Z = append(c.Z, p[2])
	c.FX = append(c.FX, 0)
	c.FY = append(c.FY, 0)
	c.FZ = append(c.FZ, 0)
	c.IDs = append(c.IDs, id)
}

// Grid partitions a periodic box into nx*ny*nz cells whose edges are at least
// the size requested at construction.
type Grid struct {
	box      dynamo.Box
	dims     [3]int
	cellSize dynamo.Vec3
	cells    []Cell
	numAtoms int
}

// NewGrid creates a grid over box with as many cells per axis as fit while
// keeping every cell edge >= minCellSize. Axes shorter than minCellSize get a
// single cell.
func NewGrid(box dynamo.Box, minCellSize float64) (*Grid, error) {
	if !(minCellSize > 0) || math.IsInf(minCellSize, 0) {
		return nil, fmt.Errorf("%w: cell size must be positive and finite, got %g", dynamo.ErrInvalidParameter, minCellSize)
	}

	g := &Grid{box: box}
	for axis, l := range box.L {
		if !(l > 0) {
			return nil, fmt.Errorf("%w: box edge %d must be positive, got %g", dynamo.ErrInvalidParameter, axis, l)
		}
		n := int(math.Floor(l / minCellSize))
		// l/n can round one ulp below minCellSize when l is an exact multiple.
		for n > 1 && l/float64(n) < minCellSize {
			n--
		}
		if n < 1 {
			n = 1
		}
		g.dims[axis] = n
		g.cellSize[axis] = l / float64(n)
	}
	g.cells = make([]Cell, g.dims[0]*g.dims[1]*g.dims[2])
	return g, nil
}

func (g *Grid) Box() dynamo.Box          { return g.box }
func (g *Grid) Dims() [3]int             { return g.dims }
func (g *Grid) CellSize() dynamo.Vec3    { return g.cellSize }
func (g *Grid) Cells() []Cell            { return g.cells }
func (g *Grid) NumCells() int            { return len(g.cells) }
func (g *Grid) NumAtoms() int            { return g.numAtoms }
func (g *Grid) Index(cx, cy, cz int) int { return (cx*g.dims[1]+cy)*g.dims[2] + cz }

// IndexPeriodic is Index for coordinates that may lie outside the grid; they
// are wrapped back in periodically.
func (g *Grid) IndexPeriodic(cx, cy, cz int) int {
	return g.Index(wrap(cx, g.dims[0]), wrap(cy, g.dims[1]), wrap(cz, g.dims[2]))
}

func (g *Grid) Cell(cx, cy, cz int) *Cell { return &g.cells[g.Index(cx, cy, cz)] }

func (g *Grid) CellPeriodic(cx, cy, cz int) *Cell { return &g.cells[g.IndexPeriodic(cx, cy, cz)] }

// CellOf returns the cell coordinates containing p after wrapping into the box.
func (g *Grid) CellOf(p dynamo.Vec3) [3]int {
	p = g.box.Wrap(p)
	var c [3]int
	for axis := range c {
		c[axis] = int(p[axis] / g.cellSize[axis])
		if c[axis] >= g.dims[axis] {
			c[axis] = g.dims[axis] - 1
		}
	}
	return c
}

// Build bins positions into cells. Positions are wrapped into the box and
// every force accumulator is zeroed. Slot i of a cell refers to
// positions[cell.IDs[i]].
func (g *Grid) Build(positions []dynamo.Vec3) {
	g.Reset()
	for id, p := range positions {
		g.Insert(id, p)
	}
}

// Reset empties every cell, keeping the allocated capacity.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].reset()
	}
	g.numAtoms = 0
}

// Insert appends atom id at p (wrapped into the box) to the cell containing
// it, with a zero force accumulator.
func (g *Grid) Insert(id int, p dynamo.Vec3) {
	p = g.box.Wrap(p)
	c := g.CellOf(p)
	g.cells[g.Index(c[0], c[1], c[2])].add(id, p)
	g.numAtoms = max(g.numAtoms, id+1)
}

// ZeroForces clears every force accumulator.
func (g *Grid) ZeroForces() {
	for i := range g.cells {
		c := &g.cells[i]
		clear(c.FX)
		clear(c.FY)
		clear(c.FZ)
	}
}

// Forces gathers the per-cell force accumulators back into atom order.
// dst is reused when it is large enough.
func (g *Grid) Forces(dst []dynamo.Vec3) []dynamo.Vec3 {
	if cap(dst) < g.numAtoms {
		dst = make([]dynamo.Vec3, g.numAtoms)
	}
	dst = dst[:g.numAtoms]
	clear(dst)
	for i := range g.cells {
		c := &g.cells[i]
		for j, id := range c.IDs {
			dst[id] = dynamo.Vec3{c.FX[j], c.FY[j], c.FZ[j]}
		}
	}
	return dst
}

// Occupancy returns the smallest and largest atom count over all cells.
func (g *Grid) Occupancy() (lo, hi int) {
	lo = math.MaxInt
	for i := range g.cells {
		n := g.cells[i].NumAtoms()
		lo = min(lo, n)
		hi = max(hi, n)
	}
	if len(g.cells) == 0 {
		lo = 0
	}
	return lo, hi
}

func wrap(c, n int) int {
	c %= n
	if c < 0 {
		c += n
	}
	return c
}
