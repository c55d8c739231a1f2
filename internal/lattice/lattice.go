// Package lattice builds initial particle configurations.
package lattice

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/ljcell/internal/celllist"
	"github.com/san-kum/ljcell/internal/dynamo"
)

// fccBasis are the four atoms of a face-centred cubic unit cell in units of
// the lattice constant.
var fccBasis = [4]dynamo.Vec3{
	{0, 0, 0},
	{0.5, 0.5, 0},
	{0.5, 0, 0.5},
	{0, 0.5, 0.5},
}

// FCC fills a cubic box with unitCells^3 face-centred cubic unit cells at the
// given number density. The lattice is shifted by a quarter cell so no atom
// sits on a box face.
func FCC(unitCells int, density float64) ([]dynamo.Vec3, dynamo.Box, error) {
	if unitCells < 1 {
		return nil, dynamo.Box{}, fmt.Errorf("%w: unit cells must be >= 1, got %d", dynamo.ErrInvalidParameter, unitCells)
	}
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, dynamo.Box{}, fmt.Errorf("%w: density must be positive, got %g", dynamo.ErrInvalidParameter, density)
	}

	a := math.Cbrt(4 / density)
	box, err := dynamo.CubicBox(a * float64(unitCells))
	if err != nil {
		return nil, dynamo.Box{}, err
	}

	positions := make([]dynamo.Vec3, 0, 4*unitCells*unitCells*unitCells)
	for i := 0; i < unitCells; i++ {
		for j := 0; j < unitCells; j++ {
			for k := 0; k < unitCells; k++ {
				origin := dynamo.Vec3{float64(i) + 0.25, float64(j) + 0.25, float64(k) + 0.25}
				for _, b := range fccBasis {
					positions = append(positions, origin.Add(b).Scale(a))
				}
			}
		}
	}
	return positions, box, nil
}

// Random places n atoms uniformly in box, rejecting any candidate closer than
// minDistance (minimum image) to an atom already placed.
func Random(n int, box dynamo.Box, minDistance float64, rng *rand.Rand) ([]dynamo.Vec3, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: atom count must be >= 0, got %d", dynamo.ErrInvalidParameter, n)
	}
	positions := make([]dynamo.Vec3, 0, n)
	if minDistance <= 0 {
		for i := 0; i < n; i++ {
			positions = append(positions, uniform(box, rng))
		}
		return positions, nil
	}

	grid, err := celllist.NewGrid(box, minDistance)
	if err != nil {
		return nil, err
	}
	grid.Reset()

	maxAttempts := 1000 * (n + 1)
	attempts := 0
	for len(positions) < n {
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("%w: placed %d of %d atoms with min distance %g", dynamo.ErrInvalidParameter, len(positions), n, minDistance)
		}
		attempts++

		p := uniform(box, rng)
		if tooClose(grid, box, p, minDistance) {
			continue
		}
		grid.Insert(len(positions), p)
		positions = append(positions, p)
	}
	return positions, nil
}

// Jitter displaces every position by a uniform offset in [-amplitude, amplitude)
// per axis and wraps the result back into box.
func Jitter(positions []dynamo.Vec3, box dynamo.Box, amplitude float64, rng *rand.Rand) {
	for i := range positions {
		for axis := range positions[i] {
			positions[i][axis] += amplitude * (2*rng.Float64() - 1)
		}
		positions[i] = box.Wrap(positions[i])
	}
}

func uniform(box dynamo.Box, rng *rand.Rand) dynamo.Vec3 {
	return dynamo.Vec3{rng.Float64() * box.L[0], rng.Float64() * box.L[1], rng.Float64() * box.L[2]}
}

func tooClose(grid *celllist.Grid, box dynamo.Box, p dynamo.Vec3, minDistance float64) bool {
	c := grid.CellOf(p)
	min2 := minDistance * minDistance
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				cell := grid.CellPeriodic(c[0]+dx, c[1]+dy, c[2]+dz)
				for j := range cell.X {
					d := box.MinimumImage(p.Sub(dynamo.Vec3{cell.X[j], cell.Y[j], cell.Z[j]}))
					if d.Dot(d) < min2 {
						return true
					}
				}
			}
		}
	}
	return false
}
